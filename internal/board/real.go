//go:build linux && !tinygo

package board

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// DefaultIIODevice is the sysfs directory of the ADC the accelerometer is
// wired to.
const DefaultIIODevice = "/sys/bus/iio/devices/iio:device0"

// RealBoard drives actual hardware: digital pins through the Linux GPIO
// character device and analog pins through IIO raw voltage channels.
//
// The Board interface has no error returns, so the first failure is latched
// and reported by Err. After a failure reads return Low or 0.
type RealBoard struct {
	chip   *gpiocdev.Chip
	lines  map[Pin]*gpiocdev.Line
	iioDir string
	start  time.Time

	mu  sync.Mutex
	err error
}

var _ Board = (*RealBoard)(nil)

// NewRealBoard opens the named GPIO chip (usually "gpiochip0") and the IIO
// device directory used for analog reads.
func NewRealBoard(chipName, iioDir string) (*RealBoard, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	if _, err := os.Stat(iioDir); err != nil {
		chip.Close()
		return nil, fmt.Errorf("open iio device: %w", err)
	}
	return &RealBoard{
		chip:   chip,
		lines:  make(map[Pin]*gpiocdev.Line),
		iioDir: iioDir,
		start:  time.Now(),
	}, nil
}

func (r *RealBoard) fail(err error) {
	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
}

// Err returns the first I/O error seen, if any.
func (r *RealBoard) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// SetPinMode requests (or re-requests) the line for pin.
func (r *RealBoard) SetPinMode(pin Pin, m PinMode) {
	if old, ok := r.lines[pin]; ok {
		old.Close()
		delete(r.lines, pin)
	}

	var opts []gpiocdev.LineReqOption
	switch m {
	case Input:
		opts = []gpiocdev.LineReqOption{gpiocdev.AsInput}
	case InputPullup:
		opts = []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp}
	case Output:
		opts = []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
	default:
		r.fail(fmt.Errorf("pin %d: unknown mode %v", pin, m))
		return
	}

	line, err := r.chip.RequestLine(int(pin), opts...)
	if err != nil {
		r.fail(fmt.Errorf("request pin %d as %v: %w", pin, m, err))
		return
	}
	r.lines[pin] = line
}

// ReadDigital returns the level of pin.
func (r *RealBoard) ReadDigital(pin Pin) PinState {
	line, ok := r.lines[pin]
	if !ok {
		r.fail(fmt.Errorf("read pin %d: not configured", pin))
		return Low
	}
	v, err := line.Value()
	if err != nil {
		r.fail(fmt.Errorf("read pin %d: %w", pin, err))
		return Low
	}
	return StateOf(v)
}

// WriteDigital drives pin.
func (r *RealBoard) WriteDigital(pin Pin, s PinState) {
	line, ok := r.lines[pin]
	if !ok {
		r.fail(fmt.Errorf("write pin %d: not configured", pin))
		return
	}
	v := 0
	if s == High {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		r.fail(fmt.Errorf("write pin %d: %w", pin, err))
	}
}

// ReadAnalog reads the raw value of IIO voltage channel pin.
func (r *RealBoard) ReadAnalog(pin Pin) uint16 {
	path := filepath.Join(r.iioDir, fmt.Sprintf("in_voltage%d_raw", pin))
	b, err := os.ReadFile(path)
	if err != nil {
		r.fail(fmt.Errorf("read analog %d: %w", pin, err))
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 16)
	if err != nil {
		r.fail(fmt.Errorf("parse analog %d: %w", pin, err))
		return 0
	}
	return uint16(v)
}

// NowMillis returns milliseconds since the board was opened.
func (r *RealBoard) NowMillis() uint32 {
	return uint32(time.Since(r.start).Milliseconds())
}

// DelayMillis sleeps for ms milliseconds.
func (r *RealBoard) DelayMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Close releases GPIO resources.
// Lines are reconfigured to input with pull-down before closing so that
// nothing is left driven when the process exits.
func (r *RealBoard) Close() error {
	var errs []error

	for pin, line := range r.lines {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", pin, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", pin, err))
		}
	}
	r.lines = make(map[Pin]*gpiocdev.Line)

	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
