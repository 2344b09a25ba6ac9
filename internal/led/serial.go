package led

import (
	"context"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/sweeney/timer-cube/internal/ledserial"
)

// DefaultBaud is the baud rate of the strip controller firmware.
const DefaultBaud = 115200

// SerialStrip drives a strip attached to a microcontroller that speaks the
// ledserial protocol. ReadLoop may run concurrently with Show and Close.
type SerialStrip struct {
	port    io.ReadWriteCloser
	wmu     sync.Mutex
	pending LEDs
	pixbuf  []uint8
	acked   atomic.Uint64
}

var _ Strip = (*SerialStrip)(nil)

// OpenSerialStrip opens device and initializes a strip of numLEDs pixels.
func OpenSerialStrip(device string, baud, numLEDs int) (*SerialStrip, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open serial port %s", device)
	}
	if err := port.SetReadTimeout(serial.NoTimeout); err != nil {
		port.Close()
		return nil, errors.Wrap(err, "failed to reset read timeout")
	}

	s, err := NewSerialStrip(port, numLEDs)
	if err != nil {
		port.Close()
		return nil, err
	}
	return s, nil
}

// NewSerialStrip wraps an already open port and sends the initialize packet.
func NewSerialStrip(port io.ReadWriteCloser, numLEDs int) (*SerialStrip, error) {
	s := &SerialStrip{
		port:    port,
		pending: NewLEDs(numLEDs),
		pixbuf:  make([]uint8, 0, 3*numLEDs),
	}
	err := ledserial.WriteHostPacket(port, ledserial.InitializePacket{NumLEDs: uint16(numLEDs)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize LEDs")
	}
	return s, nil
}

// Len returns the number of pixels.
func (s *SerialStrip) Len() int { return len(s.pending) }

// SetPixelColor sets one pixel in the pending frame.
func (s *SerialStrip) SetPixelColor(i int, c Color) {
	s.pending.Set(i, c)
}

// Show sends the pending frame to the controller.
func (s *SerialStrip) Show() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.pixbuf = s.pending.AsPixels(s.pixbuf[:0])
	if err := ledserial.WriteHostPacket(s.port, ledserial.SetPacket{Pix: s.pixbuf}); err != nil {
		return errors.Wrap(err, "failed to write frame")
	}
	return nil
}

// Acked returns the number of acknowledgements received so far.
func (s *SerialStrip) Acked() uint64 { return s.acked.Load() }

// ReadLoop consumes packets from the controller until ctx is cancelled or
// the controller panics.
func (s *SerialStrip) ReadLoop(ctx context.Context) error {
	for ctx.Err() == nil {
		p, err := ledserial.ReadControllerPacket(s.port)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			// A short read means the port timed out.
			if errors.Is(err, io.EOF) {
				continue
			}
			return errors.Wrap(err, "failed to read packet")
		}

		switch p := p.(type) {
		case ledserial.AckPacket:
			s.acked.Add(1)
		case ledserial.LogPacket:
			log.Printf("strip controller: %s", p.Message)
		case ledserial.ErrorPacket:
			log.Printf("strip controller error: %s", p.Message)
		case ledserial.PanicPacket:
			return errors.Errorf("strip controller panicked: %s", p.Message)
		}
	}
	return ctx.Err()
}

// Close blanks the strip and closes the port.
func (s *SerialStrip) Close() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	if err := ledserial.WriteHostPacket(s.port, ledserial.ClearPacket{}); err != nil {
		log.Printf("failed to clear strip: %v", err)
	}
	return s.port.Close()
}
