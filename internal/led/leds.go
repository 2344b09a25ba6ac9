// Package led holds the frame buffer the cube renders into and the strip
// drivers that display it.
package led

// LEDs describes a strip of LEDs. It is a preallocated slice of Color.
type LEDs []Color

// NewLEDs creates a new strip of LEDs. Colors are initialized to black (off).
func NewLEDs(numLEDs int) LEDs {
	return make(LEDs, numLEDs)
}

// Set sets the color of the LED at the given index.
func (l LEDs) Set(i int, c Color) {
	l[i] = c
}

// SetRange sets the color of the LEDs in [start, end).
func (l LEDs) SetRange(start, end int, c Color) {
	for i := start; i < end; i++ {
		l[i] = c
	}
}

// Fill sets every LED to c.
func (l LEDs) Fill(c Color) {
	l.SetRange(0, len(l), c)
}

// Clear turns every LED off.
func (l LEDs) Clear() {
	l.Fill(Black)
}

// Scale multiplies the brightness of every LED by f.
func (l LEDs) Scale(f float64) {
	for i, c := range l {
		l[i] = c.Scale(f)
	}
}

// AsPixels appends the strip to dst as three bytes per LED in R, G, B order.
func (l LEDs) AsPixels(dst []uint8) []uint8 {
	for _, c := range l {
		dst = append(dst, c.R, c.G, c.B)
	}
	return dst
}
