package board

// FakeBoard is a test double that returns scripted pin values and a manually
// driven clock.
type FakeBoard struct {
	// Digital contains scripted levels per pin. Each ReadDigital consumes the
	// next sample; once exhausted the last sample repeats. Unscripted pins
	// read Low.
	Digital map[Pin][]PinState

	// Analog contains scripted ADC samples per pin, consumed the same way.
	// Unscripted pins read 0.
	Analog map[Pin][]uint16

	// Now is the value returned by NowMillis.
	Now uint32

	// Modes records the last mode set for each pin.
	Modes map[Pin]PinMode

	// Writes records every WriteDigital call in order.
	Writes []DigitalWrite

	// Delays records every DelayMillis call. Delays also advance Now.
	Delays []uint32

	digitalIndex map[Pin]int
	analogIndex  map[Pin]int
}

// DigitalWrite is a recorded WriteDigital call.
type DigitalWrite struct {
	Pin   Pin
	State PinState
}

var _ Board = (*FakeBoard)(nil)

// NewFakeBoard creates an empty FakeBoard.
func NewFakeBoard() *FakeBoard {
	return &FakeBoard{
		Digital:      make(map[Pin][]PinState),
		Analog:       make(map[Pin][]uint16),
		Modes:        make(map[Pin]PinMode),
		digitalIndex: make(map[Pin]int),
		analogIndex:  make(map[Pin]int),
	}
}

// ScriptDigital replaces the scripted levels for pin and rewinds it.
func (f *FakeBoard) ScriptDigital(pin Pin, samples ...PinState) {
	f.Digital[pin] = samples
	f.digitalIndex[pin] = 0
}

// SetAnalog makes pin read v until changed.
func (f *FakeBoard) SetAnalog(pin Pin, v uint16) {
	f.Analog[pin] = []uint16{v}
	f.analogIndex[pin] = 0
}

// ReadDigital returns the next scripted level for pin.
func (f *FakeBoard) ReadDigital(pin Pin) PinState {
	samples := f.Digital[pin]
	if len(samples) == 0 {
		return Low
	}
	i := f.digitalIndex[pin]
	if i < len(samples)-1 {
		f.digitalIndex[pin] = i + 1
	}
	return samples[i]
}

// WriteDigital records the write.
func (f *FakeBoard) WriteDigital(pin Pin, s PinState) {
	f.Writes = append(f.Writes, DigitalWrite{Pin: pin, State: s})
}

// SetPinMode records the mode.
func (f *FakeBoard) SetPinMode(pin Pin, m PinMode) {
	f.Modes[pin] = m
}

// ReadAnalog returns the next scripted sample for pin.
func (f *FakeBoard) ReadAnalog(pin Pin) uint16 {
	samples := f.Analog[pin]
	if len(samples) == 0 {
		return 0
	}
	i := f.analogIndex[pin]
	if i < len(samples)-1 {
		f.analogIndex[pin] = i + 1
	}
	return samples[i]
}

// NowMillis returns Now.
func (f *FakeBoard) NowMillis() uint32 {
	return f.Now
}

// DelayMillis records the delay and advances the clock.
func (f *FakeBoard) DelayMillis(ms uint32) {
	f.Delays = append(f.Delays, ms)
	f.Now += ms
}

// Advance moves the clock forward.
func (f *FakeBoard) Advance(ms uint32) {
	f.Now += ms
}

// Reset rewinds all scripted samples.
func (f *FakeBoard) Reset() {
	for pin := range f.digitalIndex {
		f.digitalIndex[pin] = 0
	}
	for pin := range f.analogIndex {
		f.analogIndex[pin] = 0
	}
	f.Writes = nil
	f.Delays = nil
}
