//go:build tinygo

package board

import (
	"machine"
	"time"
)

// MachineBoard drives the microcontroller's own pins and ADC.
type MachineBoard struct {
	start time.Time
	adcs  map[Pin]machine.ADC
}

var _ Board = (*MachineBoard)(nil)

// NewMachineBoard initialises the ADC peripheral.
func NewMachineBoard() *MachineBoard {
	machine.InitADC()
	return &MachineBoard{
		start: time.Now(),
		adcs:  make(map[Pin]machine.ADC),
	}
}

func (b *MachineBoard) SetPinMode(pin Pin, m PinMode) {
	mode := machine.PinInput
	switch m {
	case Output:
		mode = machine.PinOutput
	case InputPullup:
		mode = machine.PinInputPullup
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: mode})
}

func (b *MachineBoard) ReadDigital(pin Pin) PinState {
	if machine.Pin(pin).Get() {
		return High
	}
	return Low
}

func (b *MachineBoard) WriteDigital(pin Pin, s PinState) {
	machine.Pin(pin).Set(s == High)
}

// ReadAnalog returns a 10-bit sample, the resolution the calibration ranges
// were measured at.
func (b *MachineBoard) ReadAnalog(pin Pin) uint16 {
	adc, ok := b.adcs[pin]
	if !ok {
		adc = machine.ADC{Pin: machine.Pin(pin)}
		adc.Configure(machine.ADCConfig{})
		b.adcs[pin] = adc
	}
	return adc.Get() >> 6
}

func (b *MachineBoard) NowMillis() uint32 {
	return uint32(time.Since(b.start).Milliseconds())
}

func (b *MachineBoard) DelayMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
