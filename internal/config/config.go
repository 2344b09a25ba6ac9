// Package config loads the host daemon configuration. Every key is optional;
// anything left out of the file keeps the value of the reference hardware.
package config

import (
	"encoding"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/sweeney/timer-cube/internal/accel"
	"github.com/sweeney/timer-cube/internal/board"
	"github.com/sweeney/timer-cube/internal/cube"
	"github.com/sweeney/timer-cube/internal/led"
)

// Config is the configuration for the timer-cube daemon.
type Config struct {
	Strip  StripConfig  `toml:"strip"`
	Button ButtonConfig `toml:"button"`
	Accel  AccelConfig  `toml:"accel"`
	Board  BoardConfig  `toml:"board"`
	Loop   LoopConfig   `toml:"loop"`
}

// StripConfig describes the LED strip and its serial controller.
type StripConfig struct {
	// NumLEDs is the number of pixels on the strip.
	NumLEDs int `toml:"num_leds"`
	// Device is the serial device of the strip controller, usually
	// /dev/ttyUSB0 or /dev/ttyACM0.
	Device string `toml:"device"`
	// Baud is the baud rate for the serial connection.
	Baud int `toml:"baud"`
	// ModeIndicator shows the current mode on the last pixel.
	ModeIndicator bool `toml:"mode_indicator"`
}

// ButtonConfig describes the push-button. A pin of 0 selects the default.
type ButtonConfig struct {
	Pin      int      `toml:"pin"`
	Debounce Duration `toml:"debounce"`
}

// AccelConfig describes the accelerometer wiring and calibration.
type AccelConfig struct {
	// Threshold is how far past zero, on a ±1000 scale, an axis must read
	// to count as facing up or down.
	Threshold int `toml:"threshold"`
	// Pins are the analog inputs for x, y and z.
	Pins []int `toml:"pins"`
	// X, Y and Z are raw [min, max] readings at -1 g and +1 g.
	X []int `toml:"x"`
	Y []int `toml:"y"`
	Z []int `toml:"z"`
}

// BoardConfig selects the Linux devices backing the board.
type BoardConfig struct {
	Chip string `toml:"chip"`
	IIO  string `toml:"iio"`
}

// LoopConfig controls the host super-loop.
type LoopConfig struct {
	Tick      Duration `toml:"tick"`
	Heartbeat Duration `toml:"heartbeat"`
	Startup   Duration `toml:"startup"`
}

// Duration is a time.Duration written as a string such as "50ms".
type Duration time.Duration

var (
	_ encoding.TextUnmarshaler = (*Duration)(nil)
	_ encoding.TextMarshaler   = (*Duration)(nil)
)

func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Millis returns d in whole milliseconds.
func (d Duration) Millis() uint32 {
	return uint32(time.Duration(d) / time.Millisecond)
}

// Default returns the configuration of the reference hardware.
func Default() Config {
	opts := cube.DefaultOptions()
	cal := opts.Calibration
	return Config{
		Strip: StripConfig{
			NumLEDs: opts.NumLEDs,
			Device:  "/dev/ttyACM0",
			Baud:    led.DefaultBaud,
		},
		Button: ButtonConfig{
			Pin:      int(opts.ButtonPin),
			Debounce: Duration(time.Duration(opts.DebounceMs) * time.Millisecond),
		},
		Accel: AccelConfig{
			Threshold: int(opts.Threshold),
			Pins:      []int{int(opts.AccelPins.X), int(opts.AccelPins.Y), int(opts.AccelPins.Z)},
			X:         []int{int(cal.X.Min), int(cal.X.Max)},
			Y:         []int{int(cal.Y.Min), int(cal.Y.Max)},
			Z:         []int{int(cal.Z.Min), int(cal.Z.Max)},
		},
		Board: BoardConfig{
			Chip: "gpiochip0",
			IIO:  board.DefaultIIODevice,
		},
		Loop: LoopConfig{
			Tick:      Duration(10 * time.Millisecond),
			Heartbeat: Duration(time.Minute),
			Startup:   Duration(time.Duration(opts.StartupDelayMs) * time.Millisecond),
		},
	}
}

// Parse reads a TOML configuration from r. Keys missing from the file keep
// their default values.
func Parse(r io.Reader) (*Config, error) {
	var file Config
	if err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	cfg := Default()
	cfg.merge(file)
	return &cfg, nil
}

// Load parses the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer f.Close()

	return Parse(f)
}

// merge copies every non-zero value of f onto c.
func (c *Config) merge(f Config) {
	setInt(&c.Strip.NumLEDs, f.Strip.NumLEDs)
	setString(&c.Strip.Device, f.Strip.Device)
	setInt(&c.Strip.Baud, f.Strip.Baud)
	c.Strip.ModeIndicator = c.Strip.ModeIndicator || f.Strip.ModeIndicator

	setInt(&c.Button.Pin, f.Button.Pin)
	setDuration(&c.Button.Debounce, f.Button.Debounce)

	setInt(&c.Accel.Threshold, f.Accel.Threshold)
	setInts(&c.Accel.Pins, f.Accel.Pins)
	setInts(&c.Accel.X, f.Accel.X)
	setInts(&c.Accel.Y, f.Accel.Y)
	setInts(&c.Accel.Z, f.Accel.Z)

	setString(&c.Board.Chip, f.Board.Chip)
	setString(&c.Board.IIO, f.Board.IIO)

	setDuration(&c.Loop.Tick, f.Loop.Tick)
	setDuration(&c.Loop.Heartbeat, f.Loop.Heartbeat)
	setDuration(&c.Loop.Startup, f.Loop.Startup)
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInts(dst *[]int, v []int) {
	if v != nil {
		*dst = v
	}
}

func setDuration(dst *Duration, v Duration) {
	if v != 0 {
		*dst = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Strip.NumLEDs < 2 || c.Strip.NumLEDs > 0xFFFF {
		return errors.Errorf("strip.num_leds %d out of range [2, 65535]", c.Strip.NumLEDs)
	}
	if c.Strip.ModeIndicator && c.Strip.NumLEDs < 3 {
		return errors.Errorf("strip.mode_indicator needs at least 3 LEDs, got %d", c.Strip.NumLEDs)
	}
	if c.Strip.Baud <= 0 {
		return errors.Errorf("strip.baud %d must be positive", c.Strip.Baud)
	}
	if c.Button.Pin < 0 || c.Button.Pin > 0xFFFF {
		return errors.Errorf("button.pin %d out of range", c.Button.Pin)
	}
	if c.Button.Debounce < 0 {
		return errors.New("button.debounce must not be negative")
	}
	if c.Accel.Threshold <= 0 || c.Accel.Threshold >= accel.Scale {
		return errors.Errorf("accel.threshold %d out of range (0, %d)", c.Accel.Threshold, accel.Scale)
	}
	if len(c.Accel.Pins) != 3 {
		return errors.Errorf("accel.pins needs 3 entries, got %d", len(c.Accel.Pins))
	}
	for axis, r := range map[string][]int{"x": c.Accel.X, "y": c.Accel.Y, "z": c.Accel.Z} {
		if len(r) != 2 {
			return errors.Errorf("accel.%s needs [min, max], got %v", axis, r)
		}
		if r[0] >= r[1] {
			return errors.Errorf("accel.%s min %d must be below max %d", axis, r[0], r[1])
		}
	}
	if c.Loop.Tick <= 0 {
		return errors.New("loop.tick must be positive")
	}
	if c.Loop.Heartbeat < 0 || c.Loop.Startup < 0 {
		return errors.New("loop durations must not be negative")
	}
	return nil
}

// Options converts the configuration into device options. It assumes
// Validate has passed.
func (c *Config) Options() cube.Options {
	return cube.Options{
		NumLEDs:    c.Strip.NumLEDs,
		ButtonPin:  board.Pin(c.Button.Pin),
		DebounceMs: c.Button.Debounce.Millis(),
		Threshold:  int16(c.Accel.Threshold),
		AccelPins: accel.Pins{
			X: board.Pin(c.Accel.Pins[0]),
			Y: board.Pin(c.Accel.Pins[1]),
			Z: board.Pin(c.Accel.Pins[2]),
		},
		Calibration: accel.Calibration{
			X: accel.Range{Min: int32(c.Accel.X[0]), Max: int32(c.Accel.X[1])},
			Y: accel.Range{Min: int32(c.Accel.Y[0]), Max: int32(c.Accel.Y[1])},
			Z: accel.Range{Min: int32(c.Accel.Z[0]), Max: int32(c.Accel.Z[1])},
		},
		StartupDelayMs: c.Loop.Startup.Millis(),
		ModeIndicator:  c.Strip.ModeIndicator,
	}
}
