// Package modes implements the per-mode handlers of the cube: choosing a
// duration, counting it down, pausing and the end-of-timer display.
//
// Handlers never read the clock themselves. The caller samples it once per
// tick and passes it in, together with the shared countdown state.
package modes

import (
	"github.com/sweeney/timer-cube/internal/board"
	"github.com/sweeney/timer-cube/internal/button"
	"github.com/sweeney/timer-cube/internal/led"
	"github.com/sweeney/timer-cube/internal/signal"
)

const (
	// BlinkPeriodMs is the on (and off) time of the setting cursor.
	BlinkPeriodMs = 500

	MinuteMs  = 60000
	QuarterMs = 15000
)

var (
	MinuteColor  = led.Blue
	QuarterColor = led.Green
	CursorColor  = led.White
)

// Count is a duration chosen in Setting mode.
type Count struct {
	Minutes  int32
	Quarters int32 // 0..3
}

// Millis returns the duration in milliseconds.
func (c Count) Millis() int32 {
	return c.Minutes*MinuteMs + c.Quarters*QuarterMs
}

// Lit returns how many pixels the count occupies, cursor excluded.
func (c Count) Lit() int {
	n := int(c.Minutes)
	if c.Quarters > 0 {
		n++
	}
	return n
}

// Advance adds one quarter minute. The result is returned unchanged if the
// count and its cursor would no longer fit on n pixels.
func (c Count) Advance(n int) Count {
	next := Count{Minutes: c.Minutes, Quarters: c.Quarters + 1}
	if next.Quarters == 4 {
		next.Minutes++
		next.Quarters = 0
	}
	if next.Lit() >= n {
		return c
	}
	return next
}

// Setting lets the user pick a duration with the button.
type Setting struct {
	pin     board.Pin
	delayMs uint32

	button  button.State
	edge    board.PinState
	count   Count
	latched Count
}

// NewSetting creates a Setting handler reading the button on pin.
func NewSetting(pin board.Pin, delayMs uint32) *Setting {
	return &Setting{
		pin:     pin,
		delayMs: delayMs,
		button:  button.NewState(),
		edge:    board.Low,
	}
}

// Count returns the currently selected duration.
func (s *Setting) Count() Count { return s.latched }

// Reset zeroes the chosen duration and timeRemaining.
func (s *Setting) Reset(timeRemaining *int32) {
	s.count = Count{}
	s.latched = Count{}
	*timeRemaining = 0
}

// Execute samples the button, advances the count on each debounced press,
// writes the chosen duration to timeRemaining and renders it into frame.
func (s *Setting) Execute(b board.Board, now uint32, timeRemaining *int32, frame led.LEDs) {
	n := len(frame)

	pressed := board.RisingEdge(
		button.DebounceDelay(board.DigIn(b, s.pin), s.delayMs, &s.button, now),
		&s.edge,
	)
	counted := signal.FoldP(func(_ signal.Unit, c Count) Count {
		return c.Advance(n)
	}, &s.count, pressed)

	signal.Sink(func(c Count) {
		*timeRemaining = c.Millis()
		renderCount(c, now, frame)
	}, signal.Latch(counted, &s.latched))
}

func renderCount(c Count, now uint32, frame led.LEDs) {
	frame.SetRange(0, int(c.Minutes), MinuteColor)

	cursor := int(c.Minutes)
	if c.Quarters > 0 {
		frame.Set(cursor, QuarterColor.Scale(float64(c.Quarters)/4))
		cursor++
	}
	if cursor < len(frame) && (now/BlinkPeriodMs)%2 == 0 {
		frame.Set(cursor, CursorColor)
	}
}
