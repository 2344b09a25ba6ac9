package cube

import (
	"fmt"

	"github.com/sweeney/timer-cube/internal/accel"
	"github.com/sweeney/timer-cube/internal/led"
)

// Mode is the application mode.
type Mode uint8

const (
	Setting Mode = iota
	Timing
	Paused
	Finale

	numModes = 4
)

func (m Mode) String() string {
	switch m {
	case Setting:
		return "SETTING"
	case Timing:
		return "TIMING"
	case Paused:
		return "PAUSED"
	case Finale:
		return "FINALE"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

var modeColors = [numModes]led.Color{
	Setting: led.Red,
	Timing:  led.Green,
	Paused:  led.Blue,
	Finale:  led.White,
}

// Color is the indicator color of m.
func (m Mode) Color() led.Color {
	if int(m) >= len(modeColors) {
		return led.Black
	}
	return modeColors[m]
}

// Flip classifies a change of orientation.
type Flip uint8

const (
	FlipUp Flip = iota
	FlipDown
	FlipFlat
)

func (f Flip) String() string {
	switch f {
	case FlipUp:
		return "UP"
	case FlipDown:
		return "DOWN"
	case FlipFlat:
		return "FLAT"
	default:
		return fmt.Sprintf("Flip(%d)", f)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Flip) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// FlipOf maps a newly reached orientation to a flip. Only the x axis
// distinguishes up from down.
func FlipOf(o accel.Orientation) Flip {
	switch o {
	case accel.XUp:
		return FlipUp
	case accel.XDown:
		return FlipDown
	default:
		return FlipFlat
	}
}
