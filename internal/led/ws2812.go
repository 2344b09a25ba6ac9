//go:build tinygo

package led

import (
	"image/color"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/ws2812"
)

// WS2812Strip drives a WS2812 strip directly from a data pin.
type WS2812Strip struct {
	dev    ws2812.Device
	colors []color.RGBA
}

var _ Strip = (*WS2812Strip)(nil)

// NewWS2812Strip configures pin as an output and returns a strip of n pixels.
func NewWS2812Strip(pin machine.Pin, n int) *WS2812Strip {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &WS2812Strip{
		dev:    ws2812.New(pin),
		colors: make([]color.RGBA, n),
	}
}

func (s *WS2812Strip) Len() int { return len(s.colors) }

func (s *WS2812Strip) SetPixelColor(i int, c Color) {
	s.colors[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Show bit-bangs the frame. Interrupts are off while it runs because the
// protocol timing is too tight to survive one.
func (s *WS2812Strip) Show() error {
	state := interrupt.Disable()
	err := s.dev.WriteColors(s.colors)
	interrupt.Restore(state)
	return err
}
