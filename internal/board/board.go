// Package board provides the microcontroller I/O the cube runs on, with
// hardware abstraction. The real implementation uses the Linux GPIO character
// device and IIO ADC channels; the fake implementation allows testing without
// hardware.
package board

import "fmt"

// Pin is a board pin number.
type Pin uint16

// PinState is the logic level of a digital pin.
type PinState uint8

const (
	Low PinState = iota
	High
)

func (s PinState) String() string {
	switch s {
	case Low:
		return "LOW"
	case High:
		return "HIGH"
	default:
		return fmt.Sprintf("PinState(%d)", s)
	}
}

// Toggle returns the opposite level.
func (s PinState) Toggle() PinState {
	if s == High {
		return Low
	}
	return High
}

// StateOf converts a raw line value to a PinState. Any non-zero value is High.
func StateOf[T ~int | ~uint8 | ~uint16](v T) PinState {
	if v != 0 {
		return High
	}
	return Low
}

// PinMode is the direction and bias of a pin.
type PinMode uint8

const (
	Input PinMode = iota
	Output
	InputPullup
)

func (m PinMode) String() string {
	switch m {
	case Input:
		return "input"
	case Output:
		return "output"
	case InputPullup:
		return "input-pullup"
	default:
		return fmt.Sprintf("PinMode(%d)", m)
	}
}

// Board is the I/O the control core consumes. Calls never fail from the
// caller's point of view; implementations that can fail latch the error and
// report it out of band.
type Board interface {
	// ReadDigital returns the level of a digital pin.
	ReadDigital(pin Pin) PinState

	// WriteDigital drives a digital pin.
	WriteDigital(pin Pin, s PinState)

	// SetPinMode configures a pin.
	SetPinMode(pin Pin, m PinMode)

	// ReadAnalog returns a raw ADC sample.
	ReadAnalog(pin Pin) uint16

	// NowMillis returns a monotonic millisecond counter. It wraps at 2^32.
	NowMillis() uint32

	// DelayMillis blocks for ms milliseconds. Only used at startup.
	DelayMillis(ms uint32)
}

// Default pin assignments.
const (
	DefaultButtonPin Pin = 4
	DefaultLEDPin    Pin = 6
	DefaultAccelX    Pin = 0
	DefaultAccelY    Pin = 1
	DefaultAccelZ    Pin = 2
)
