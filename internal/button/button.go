// Package button debounces a mechanical push-button sampled once per tick.
// This package has no hardware dependencies; time is passed in as the
// board's millisecond counter.
package button

import (
	"github.com/sweeney/timer-cube/internal/board"
	"github.com/sweeney/timer-cube/internal/signal"
)

// DefaultDelayMs is how long a level must hold before it is committed.
const DefaultDelayMs = 50

// State tracks debounce state for a single button.
type State struct {
	// Actual is the committed (debounced) level.
	Actual board.PinState
	// Last is the raw level seen on the previous sample.
	Last board.PinState
	// LastDebounceTime is when the raw level last changed.
	LastDebounceTime uint32
}

// NewState returns the startup state: both levels low, no change seen.
func NewState() State {
	return State{Actual: board.Low, Last: board.Low}
}

// Step processes one raw sample taken at now and returns the debounced level.
//
// The branch order matters: any change in the raw level restarts the timer,
// including a bounce back to the committed level.
func (st *State) Step(current board.PinState, delayMs uint32, now uint32) board.PinState {
	switch {
	case current != st.Last:
		st.Last = current
		st.LastDebounceTime = now
		return st.Actual
	case current != st.Actual && now-st.LastDebounceTime > delayMs:
		st.Actual = current
		return current
	default:
		return st.Actual
	}
}

// DebounceDelay debounces the raw levels carried by s.
func DebounceDelay(s signal.Signal[board.PinState], delayMs uint32, st *State, now uint32) signal.Signal[board.PinState] {
	return signal.Map(func(current board.PinState) board.PinState {
		return st.Step(current, delayMs, now)
	}, s)
}

// Debounce debounces s with DefaultDelayMs.
func Debounce(s signal.Signal[board.PinState], st *State, now uint32) signal.Signal[board.PinState] {
	return DebounceDelay(s, DefaultDelayMs, st, now)
}
