package led

import (
	"fmt"
	"math"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
	White = Color{255, 255, 255}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale multiplies every channel by f, clamped to [0, 1].
func (c Color) Scale(f float64) Color {
	f = math.Max(0, math.Min(1, f))
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}

// Lerp interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}
