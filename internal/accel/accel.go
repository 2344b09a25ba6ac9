// Package accel reads a three-axis analog accelerometer and classifies which
// face of the cube is pointing up.
package accel

import (
	"fmt"

	"github.com/sweeney/timer-cube/internal/board"
	"github.com/sweeney/timer-cube/internal/fixed"
	"github.com/sweeney/timer-cube/internal/signal"
)

// Axis is one accelerometer axis.
type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", a)
	}
}

// Orientation is the face-up state of the cube.
type Orientation uint8

const (
	XUp Orientation = iota
	XDown
	YUp
	YDown
	ZUp
	ZDown
)

func (o Orientation) String() string {
	switch o {
	case XUp:
		return "X_UP"
	case XDown:
		return "X_DOWN"
	case YUp:
		return "Y_UP"
	case YDown:
		return "Y_DOWN"
	case ZUp:
		return "Z_UP"
	case ZDown:
		return "Z_DOWN"
	default:
		return fmt.Sprintf("Orientation(%d)", o)
	}
}

const (
	// Scale is the magnitude of a scaled reading at 1 g.
	Scale = 1000
	// DefaultThreshold is how far past zero an axis must read to count as
	// pointing up or down.
	DefaultThreshold = 800
	// samples is how many ADC reads are averaged per axis.
	samples = 4
)

// Range is the raw ADC reading at -1 g and +1 g for one axis.
type Range struct {
	Min int32
	Max int32
}

// Calibration holds the raw ranges of all three axes.
type Calibration struct {
	X Range
	Y Range
	Z Range
}

// DefaultCalibration returns the factory ranges measured on the prototype.
func DefaultCalibration() Calibration {
	return Calibration{
		X: Range{Min: 404, Max: 612},
		Y: Range{Min: 409, Max: 622},
		Z: Range{Min: 418, Max: 622},
	}
}

// Range returns the range for axis a.
func (c Calibration) Range(a Axis) Range {
	switch a {
	case X:
		return c.X
	case Y:
		return c.Y
	case Z:
		return c.Z
	default:
		panic(fmt.Sprintf("accel: invalid axis %d", a))
	}
}

// Pins maps each axis to an analog pin.
type Pins struct {
	X board.Pin
	Y board.Pin
	Z board.Pin
}

// DefaultPins returns the default analog pin wiring.
func DefaultPins() Pins {
	return Pins{X: board.DefaultAccelX, Y: board.DefaultAccelY, Z: board.DefaultAccelZ}
}

// Pin returns the pin for axis a.
func (p Pins) Pin(a Axis) board.Pin {
	switch a {
	case X:
		return p.X
	case Y:
		return p.Y
	case Z:
		return p.Z
	default:
		panic(fmt.Sprintf("accel: invalid axis %d", a))
	}
}

// Accelerometer samples the three axes through a board.
type Accelerometer struct {
	board     board.Board
	pins      Pins
	cal       Calibration
	threshold int16
}

// New creates an Accelerometer.
func New(b board.Board, pins Pins, cal Calibration, threshold int16) *Accelerometer {
	return &Accelerometer{board: b, pins: pins, cal: cal, threshold: threshold}
}

// ReadRaw returns the average of several ADC reads of axis a. The first read
// after switching channels is discarded because the ADC mux has not settled.
func (acc *Accelerometer) ReadRaw(a Axis) uint16 {
	pin := acc.pins.Pin(a)
	acc.board.ReadAnalog(pin)

	var total uint32
	for i := 0; i < samples; i++ {
		total += uint32(acc.board.ReadAnalog(pin))
	}
	return uint16(total / samples)
}

// Read returns axis a scaled onto [-Scale, Scale] using its calibration.
// Samples outside the calibrated range saturate at the ends.
func (acc *Accelerometer) Read(a Axis) int16 {
	r := acc.cal.Range(a)
	v := fixed.MapRange(float64(acc.ReadRaw(a)), float64(r.Min), float64(r.Max), -Scale, Scale)
	return int16(fixed.Clamp(v, -Scale, Scale))
}

// Orientation samples all three axes and classifies them.
func (acc *Accelerometer) Orientation() signal.Maybe[Orientation] {
	x := acc.Read(X)
	y := acc.Read(Y)
	z := acc.Read(Z)
	return Classify(x, y, z, acc.threshold)
}

// Signal returns the current orientation as a signal that is empty when no
// face is clearly up.
func (acc *Accelerometer) Signal() signal.Signal[Orientation] {
	return signal.FromMaybe(acc.Orientation())
}

// Classify maps scaled readings to an orientation. Axes are checked in the
// order z, y, x; a reading must be strictly beyond the threshold.
func Classify(x, y, z, threshold int16) signal.Maybe[Orientation] {
	switch {
	case z < -threshold:
		return signal.Just(ZDown)
	case z > threshold:
		return signal.Just(ZUp)
	case y < -threshold:
		return signal.Just(YDown)
	case y > threshold:
		return signal.Just(YUp)
	case x < -threshold:
		return signal.Just(XDown)
	case x > threshold:
		return signal.Just(XUp)
	default:
		return signal.Nothing[Orientation]()
	}
}
