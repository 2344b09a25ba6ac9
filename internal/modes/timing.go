package modes

import (
	"math"

	"github.com/sweeney/timer-cube/internal/fixed"
	"github.com/sweeney/timer-cube/internal/led"
)

// BreathPeriodMs is the period of the paused brightness wave.
const BreathPeriodMs = 1000

// Timing counts timeRemaining down and draws it as a shrinking bar.
type Timing struct {
	// Start and End are the bar colors at the first and last pixel.
	Start, End led.Color

	lastTick uint32
}

// NewTiming creates a Timing handler with the default bar colors.
func NewTiming() *Timing {
	return &Timing{Start: led.Green, End: led.Red}
}

// Reset restarts the countdown clock at now.
func (t *Timing) Reset(now uint32) {
	t.lastTick = now
}

// Execute subtracts the time elapsed since the previous call and renders the
// bar for the remaining fraction.
func (t *Timing) Execute(now uint32, timeRemaining *int32, totalTime int32, frame led.LEDs) {
	*timeRemaining -= int32(now - t.lastTick)
	t.lastTick = now

	var frac float64
	if totalTime > 0 {
		frac = float64(*timeRemaining) / float64(totalTime)
	}
	t.render(frac, frame)
}

func (t *Timing) render(frac float64, frame led.LEDs) {
	n := float64(len(frame))
	for i := range frame {
		fill := fixed.Clamp(float64(i+1)*n-(1-frac)*n*n, 0, n) / n
		if fill == 0 {
			continue
		}
		var pos float64
		if len(frame) > 1 {
			pos = float64(i) / (n - 1)
		}
		frame[i] = led.Lerp(t.Start, t.End, pos).Scale(fill)
	}
}

// Paused shows the Timing bar without consuming time and makes it breathe.
type Paused struct {
	Timing *Timing
}

// Execute renders the bar with timeRemaining left as it was on entry.
func (p *Paused) Execute(now uint32, timeRemaining *int32, totalTime int32, frame led.LEDs) {
	saved := *timeRemaining
	p.Timing.Execute(now, timeRemaining, totalTime, frame)
	*timeRemaining = saved

	phase := 2 * math.Pi * float64(now%BreathPeriodMs) / BreathPeriodMs
	frame.Scale((1 + math.Sin(phase)) / 2)
}
