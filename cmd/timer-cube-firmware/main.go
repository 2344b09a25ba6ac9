//go:build tinygo

// Command timer-cube-firmware runs the timer cube directly on the
// microcontroller, driving the strip from a data pin.
package main

import (
	"machine"

	"github.com/sweeney/timer-cube/internal/board"
	"github.com/sweeney/timer-cube/internal/cube"
	"github.com/sweeney/timer-cube/internal/led"
)

func main() {
	opts := cube.DefaultOptions()

	hw := board.NewMachineBoard()
	strip := led.NewWS2812Strip(machine.Pin(board.DefaultLEDPin), opts.NumLEDs)

	device := cube.NewDevice(hw, opts)
	device.Setup()

	for {
		if err := device.Tick(strip); err != nil {
			println("show frame:", err.Error())
			halt(strip)
		}
	}
}

// halt blanks the strip so a stuck frame is not mistaken for a running timer.
func halt(strip led.Strip) {
	led.Commit(led.NewLEDs(strip.Len()), strip)
	select {}
}
