package led

// Strip is an addressable LED strip of fixed length.
type Strip interface {
	// Len returns the number of pixels.
	Len() int

	// SetPixelColor sets one pixel in the pending frame.
	SetPixelColor(i int, c Color)

	// Show latches the pending frame onto the LEDs.
	Show() error
}

// Commit copies frame onto s and shows it.
func Commit(frame LEDs, s Strip) error {
	for i, c := range frame {
		s.SetPixelColor(i, c)
	}
	return s.Show()
}

// FakeStrip records shown frames for test assertions.
type FakeStrip struct {
	// Pending is the frame being built by SetPixelColor.
	Pending LEDs

	// Frames contains a copy of every frame that was shown.
	Frames []LEDs

	// ShowError, if set, will be returned by Show.
	ShowError error
}

var _ Strip = (*FakeStrip)(nil)

// NewFakeStrip creates a FakeStrip with n pixels.
func NewFakeStrip(n int) *FakeStrip {
	return &FakeStrip{Pending: NewLEDs(n)}
}

// Len returns the number of pixels.
func (f *FakeStrip) Len() int { return len(f.Pending) }

// SetPixelColor sets one pending pixel.
func (f *FakeStrip) SetPixelColor(i int, c Color) {
	f.Pending.Set(i, c)
}

// Show records a copy of the pending frame.
func (f *FakeStrip) Show() error {
	if f.ShowError != nil {
		return f.ShowError
	}
	frame := NewLEDs(len(f.Pending))
	copy(frame, f.Pending)
	f.Frames = append(f.Frames, frame)
	return nil
}

// Last returns the most recently shown frame, or nil.
func (f *FakeStrip) Last() LEDs {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}

// Reset clears recorded frames.
func (f *FakeStrip) Reset() {
	f.Frames = nil
	f.ShowError = nil
	f.Pending.Clear()
}
