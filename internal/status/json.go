package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/timer-cube/internal/cube"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Mode          string      `json:"mode"`
	Orientation   string      `json:"orientation"`
	RemainingMs   int32       `json:"remaining_ms"`
	TotalMs       int32       `json:"total_ms"`
	Setting       SettingJSON `json:"setting"`
	Ticks         uint64      `json:"ticks"`
	Flips         []string    `json:"recent_flips"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	Strip         StripStatus `json:"strip"`
	Counts        CountsJSON  `json:"mode_entries"`
	Config        ConfigJSON  `json:"config"`
}

// SettingJSON is the duration chosen in Setting mode.
type SettingJSON struct {
	Minutes  int32 `json:"minutes"`
	Quarters int32 `json:"quarters"`
}

// StripStatus reports the LED strip controller.
type StripStatus struct {
	Online bool   `json:"online"`
	Acked  uint64 `json:"acked"`
	Device string `json:"device"`
}

// CountsJSON is how many times each mode has been entered.
type CountsJSON struct {
	Setting uint64 `json:"setting"`
	Timing  uint64 `json:"timing"`
	Paused  uint64 `json:"paused"`
	Finale  uint64 `json:"finale"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs      int64  `json:"tick_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	NumLEDs     int    `json:"num_leds"`
	Threshold   int16  `json:"threshold"`
	Serial      string `json:"serial,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	c := snap.Cube

	mode := c.Mode.String()
	if !snap.Updated {
		mode = "UNKNOWN"
	}
	orientation := "NONE"
	if o, ok := c.Orientation.Value(); ok {
		orientation = o.String()
	}
	flips := make([]string, 0, len(c.Flips))
	for _, f := range c.Flips {
		flips = append(flips, f.String())
	}

	return StatusInner{
		Mode:          mode,
		Orientation:   orientation,
		RemainingMs:   c.TimeRemaining,
		TotalMs:       c.TotalTime,
		Setting:       SettingJSON{Minutes: c.Count.Minutes, Quarters: c.Count.Quarters},
		Ticks:         c.Ticks,
		Flips:         flips,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Strip: StripStatus{
			Online: snap.StripOnline,
			Acked:  snap.StripAcked,
			Device: snap.Config.Serial,
		},
		Counts: CountsJSON{
			Setting: c.Entered(cube.Setting),
			Timing:  c.Entered(cube.Timing),
			Paused:  c.Entered(cube.Paused),
			Finale:  c.Entered(cube.Finale),
		},
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			NumLEDs:     snap.Config.NumLEDs,
			Threshold:   snap.Config.Threshold,
			Serial:      snap.Config.Serial,
		},
	}
}

// FormatJSON returns the indented JSON status logged at verbose shutdown.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the single-line JSON status logged for daemon
// events such as STARTUP, HEARTBEAT and SHUTDOWN.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
