package modes

import (
	"math"

	"github.com/sweeney/timer-cube/internal/led"
)

// Finale plays a free-running color wave until the cube is flipped down.
type Finale struct{}

// Execute renders the wave for time now.
func (Finale) Execute(now uint32, frame led.LEDs) {
	t := 2 * math.Pi * float64(now%60000) / 1000
	for i := range frame {
		p := 2 * math.Pi * float64(i) / float64(len(frame))
		frame[i] = led.Color{
			R: wave(math.Sin(t + p)),
			G: wave(math.Cos(0.7*t + p)),
			B: wave(math.Sin(1.3*t - p)),
		}
	}
}

// wave maps [-1, 1] onto a channel value.
func wave(x float64) uint8 {
	return uint8(math.Round(127.5 * (1 + x)))
}
