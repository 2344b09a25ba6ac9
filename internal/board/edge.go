package board

import "github.com/sweeney/timer-cube/internal/signal"

// DigIn samples a digital pin as a signal.
func DigIn(b Board, pin Pin) signal.Signal[PinState] {
	return signal.Of(b.ReadDigital(pin))
}

// DigOut drives pin with the value carried by s, if any.
func DigOut(b Board, pin Pin, s signal.Signal[PinState]) {
	signal.Sink(func(v PinState) { b.WriteDigital(pin, v) }, s)
}

// AnaIn samples an analog pin as a signal.
func AnaIn(b Board, pin Pin) signal.Signal[uint16] {
	return signal.Of(b.ReadAnalog(pin))
}

// RisingEdge fires when s goes from Low to High. prev holds the level seen on
// the last tick that carried a value.
func RisingEdge(s signal.Signal[PinState], prev *PinState) signal.Signal[signal.Unit] {
	return signal.ToUnit(signal.Filter(func(cur PinState) bool {
		keep := *prev == Low && cur == High
		*prev = cur
		return !keep
	}, s))
}

// FallingEdge fires when s goes from High to Low.
func FallingEdge(s signal.Signal[PinState], prev *PinState) signal.Signal[signal.Unit] {
	return signal.ToUnit(signal.Filter(func(cur PinState) bool {
		keep := *prev == High && cur == Low
		*prev = cur
		return !keep
	}, s))
}

// Edge fires with the new level whenever s changes level.
func Edge(s signal.Signal[PinState], prev *PinState) signal.Signal[PinState] {
	return signal.Filter(func(cur PinState) bool {
		same := *prev == cur
		*prev = cur
		return same
	}, s)
}
