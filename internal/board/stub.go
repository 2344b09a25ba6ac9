//go:build !linux && !tinygo

package board

import "errors"

// DefaultIIODevice is unused on non-Linux platforms.
const DefaultIIODevice = ""

// RealBoard is not available on non-Linux platforms.
type RealBoard struct{}

var _ Board = (*RealBoard)(nil)

// NewRealBoard returns an error on non-Linux platforms.
func NewRealBoard(chipName, iioDir string) (*RealBoard, error) {
	return nil, errors.New("board: not supported on this platform (requires Linux)")
}

// ReadDigital is not implemented on non-Linux platforms.
func (r *RealBoard) ReadDigital(Pin) PinState { return Low }

// WriteDigital is not implemented on non-Linux platforms.
func (r *RealBoard) WriteDigital(Pin, PinState) {}

// SetPinMode is not implemented on non-Linux platforms.
func (r *RealBoard) SetPinMode(Pin, PinMode) {}

// ReadAnalog is not implemented on non-Linux platforms.
func (r *RealBoard) ReadAnalog(Pin) uint16 { return 0 }

// NowMillis is not implemented on non-Linux platforms.
func (r *RealBoard) NowMillis() uint32 { return 0 }

// DelayMillis is not implemented on non-Linux platforms.
func (r *RealBoard) DelayMillis(uint32) {}

// Err always reports that the board is unsupported.
func (r *RealBoard) Err() error {
	return errors.New("board: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealBoard) Close() error {
	return nil
}
