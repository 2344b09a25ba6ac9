// Package status provides a thread-safe view of the timer cube for the host
// daemon. The loop goroutine writes it after every tick; the status log lines
// read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/timer-cube/internal/cube"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	NumLEDs     int
	Threshold   int16
	Serial      string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Cube        cube.Snapshot
	Updated     bool
	StripAcked  uint64
	StripOnline bool
	StartTime   time.Time
	Now         time.Time
	Config      Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update records the device state after a tick.
func (t *Tracker) Update(c cube.Snapshot) {
	t.mu.Lock()
	t.snap.Cube = c
	t.snap.Updated = true
	t.mu.Unlock()
}

// SetStrip records whether the strip controller is reachable and how many
// frames it has acknowledged.
func (t *Tracker) SetStrip(online bool, acked uint64) {
	t.mu.Lock()
	t.snap.StripOnline = online
	t.snap.StripAcked = acked
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
