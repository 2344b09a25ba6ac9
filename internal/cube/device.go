// Package cube runs the timer cube: it folds orientation flips and the
// countdown into the current mode and dispatches to that mode's handler once
// per tick.
//
// A Device is not safe for concurrent use. The host owns it from a single
// loop goroutine.
package cube

import (
	"github.com/sweeney/timer-cube/internal/accel"
	"github.com/sweeney/timer-cube/internal/board"
	"github.com/sweeney/timer-cube/internal/button"
	"github.com/sweeney/timer-cube/internal/fixed"
	"github.com/sweeney/timer-cube/internal/led"
	"github.com/sweeney/timer-cube/internal/modes"
	"github.com/sweeney/timer-cube/internal/signal"
)

// FlipHistory is how many recent flips a Device remembers.
const FlipHistory = 8

// Options configures a Device.
type Options struct {
	NumLEDs        int
	ButtonPin      board.Pin
	DebounceMs     uint32
	Threshold      int16
	AccelPins      accel.Pins
	Calibration    accel.Calibration
	StartupDelayMs uint32
	// ModeIndicator reserves the last pixel for the color of the current
	// mode. The handlers draw on the pixels below it.
	ModeIndicator bool
}

// DefaultOptions returns the wiring of the reference hardware.
func DefaultOptions() Options {
	return Options{
		NumLEDs:        33,
		ButtonPin:      board.DefaultButtonPin,
		DebounceMs:     button.DefaultDelayMs,
		Threshold:      accel.DefaultThreshold,
		AccelPins:      accel.DefaultPins(),
		Calibration:    accel.DefaultCalibration(),
		StartupDelayMs: 500,
	}
}

// Device holds all state that lives for the whole process.
type Device struct {
	board board.Board
	opts  Options
	acc   *accel.Accelerometer

	// state cells, one writer each
	orientation signal.Maybe[accel.Orientation]
	mode        Mode
	flips       *fixed.List[Flip]
	heartbeat   signal.TimerState

	// TimeRemaining is the countdown in milliseconds. It may go briefly
	// negative before Finale takes over.
	TimeRemaining int32
	// TotalTime is TimeRemaining as it was when Timing last started.
	TotalTime int32

	setting *modes.Setting
	timing  *modes.Timing
	paused  *modes.Paused
	finale  modes.Finale

	frame       led.LEDs
	ticks       uint64
	transitions [numModes]uint64
}

// NewDevice creates a Device in Setting mode.
func NewDevice(b board.Board, opts Options) *Device {
	timing := modes.NewTiming()
	return &Device{
		board:       b,
		opts:        opts,
		acc:         accel.New(b, opts.AccelPins, opts.Calibration, opts.Threshold),
		orientation: signal.Nothing[accel.Orientation](),
		mode:        Setting,
		flips:       fixed.New[Flip](FlipHistory),
		setting:     modes.NewSetting(opts.ButtonPin, opts.DebounceMs),
		timing:      timing,
		paused:      &modes.Paused{Timing: timing},
		frame:       led.NewLEDs(opts.NumLEDs),
	}
}

// Setup configures the button pin and waits for the sensors to settle.
// Accelerometer pins are ADC channels and are left alone.
func (d *Device) Setup() {
	d.board.SetPinMode(d.opts.ButtonPin, board.Input)
	d.board.DelayMillis(d.opts.StartupDelayMs)
}

// Mode returns the current mode.
func (d *Device) Mode() Mode { return d.mode }

// Frame returns the frame rendered by the last tick.
func (d *Device) Frame() led.LEDs { return d.frame }

// Transition returns the mode that follows prev given this tick's flip.
// Entering Timing from Setting captures TotalTime and restarts the clock;
// flipping down out of Timing, Paused or Finale resets the chosen duration.
func (d *Device) Transition(flip signal.Maybe[Flip], prev Mode, now uint32) Mode {
	if prev == Timing && d.TimeRemaining <= 0 {
		return Finale
	}

	f, ok := flip.Value()
	if !ok {
		return prev
	}

	switch {
	case prev == Setting && f == FlipUp:
		d.TotalTime = d.TimeRemaining
		d.timing.Reset(now)
		return Timing
	case prev == Paused && f == FlipUp:
		return Timing
	case f == FlipDown && (prev == Timing || prev == Paused || prev == Finale):
		d.setting.Reset(&d.TimeRemaining)
		return Setting
	case prev == Timing && f == FlipFlat:
		return Paused
	default:
		return prev
	}
}

// Tick samples the sensors, advances the mode machine, runs the active
// handler and shows the resulting frame on strip.
func (d *Device) Tick(strip led.Strip) error {
	now := d.board.NowMillis()
	d.frame.Clear()

	orientation := signal.DropRepeats(d.acc.Signal(), &d.orientation)
	flips := signal.Map(FlipOf, orientation)
	signal.Record(flips, d.flips)

	mode := signal.FoldP(func(flip signal.Maybe[Flip], prev Mode) Mode {
		next := d.Transition(flip, prev, now)
		if next != prev {
			d.transitions[next]++
		}
		return next
	}, &d.mode, signal.Meta(flips))

	signal.Sink(func(m Mode) {
		body := d.frame
		if d.opts.ModeIndicator {
			last := len(d.frame) - 1
			body = d.frame[:last]
			d.frame[last] = m.Color()
		}
		d.dispatch(m, now, body)
	}, mode)

	d.ticks++
	return led.Commit(d.frame, strip)
}

func (d *Device) dispatch(m Mode, now uint32, frame led.LEDs) {
	switch m {
	case Setting:
		d.setting.Execute(d.board, now, &d.TimeRemaining, frame)
	case Timing:
		d.timing.Execute(now, &d.TimeRemaining, d.TotalTime, frame)
	case Paused:
		d.paused.Execute(now, &d.TimeRemaining, d.TotalTime, frame)
	case Finale:
		d.finale.Execute(now, frame)
	}
}

// Heartbeat reports whether interval milliseconds have passed since the
// last heartbeat window.
func (d *Device) Heartbeat(interval uint32) bool {
	return signal.Every(interval, &d.heartbeat, d.board.NowMillis()).HasValue()
}

// Snapshot is a copy of the device state for reporting.
type Snapshot struct {
	Mode          Mode
	TimeRemaining int32
	TotalTime     int32
	Orientation   signal.Maybe[accel.Orientation]
	Count         modes.Count
	Ticks         uint64
	Transitions   [numModes]uint64
	Flips         []Flip
}

// Snapshot returns the current state. Flips are oldest first.
func (d *Device) Snapshot() Snapshot {
	return Snapshot{
		Mode:          d.mode,
		TimeRemaining: d.TimeRemaining,
		TotalTime:     d.TotalTime,
		Orientation:   d.orientation,
		Count:         d.setting.Count(),
		Ticks:         d.ticks,
		Transitions:   d.transitions,
		Flips:         d.flips.Values(nil),
	}
}

// Entered returns how many times m has been entered.
func (s Snapshot) Entered(m Mode) uint64 {
	if int(m) >= len(s.Transitions) {
		return 0
	}
	return s.Transitions[m]
}
