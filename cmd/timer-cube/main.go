//go:build !tinygo

// Command timer-cube runs the timer cube on a Linux board, driving the LED
// strip through a serial controller.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/sweeney/timer-cube/internal/accel"
	"github.com/sweeney/timer-cube/internal/board"
	"github.com/sweeney/timer-cube/internal/config"
	"github.com/sweeney/timer-cube/internal/cube"
	"github.com/sweeney/timer-cube/internal/led"
	"github.com/sweeney/timer-cube/internal/status"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "TOML configuration file (defaults are used when empty)")
	serialDev := pflag.String("serial", "", "Serial device of the LED strip controller (overrides config)")
	baud := pflag.Int("baud", 0, "Serial baud rate (overrides config)")
	tick := pflag.Duration("tick", 0, "Loop interval (overrides config)")
	heartbeat := pflag.Duration("heartbeat", -1, "Heartbeat interval, 0 to disable (overrides config)")
	printState := pflag.Bool("print-state", false, "Print orientation and button level and exit")
	verbose := pflag.BoolP("verbose", "v", false, "Log every orientation change and the full state on shutdown")

	pflag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *serialDev != "" {
		cfg.Strip.Device = *serialDev
	}
	if *baud != 0 {
		cfg.Strip.Baud = *baud
	}
	if *tick != 0 {
		cfg.Loop.Tick = config.Duration(*tick)
	}
	if *heartbeat >= 0 {
		cfg.Loop.Heartbeat = config.Duration(*heartbeat)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: invalid config: %v", err)
	}

	if err := run(cfg, *printState, *verbose); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

func run(cfg *config.Config, printState, verbose bool) error {
	hw, err := board.NewRealBoard(cfg.Board.Chip, cfg.Board.IIO)
	if err != nil {
		return fmt.Errorf("init board: %w", err)
	}
	defer hw.Close()

	opts := cfg.Options()
	device := cube.NewDevice(hw, opts)

	if printState {
		return printCurrentState(hw, opts)
	}

	strip, err := led.OpenSerialStrip(cfg.Strip.Device, cfg.Strip.Baud, cfg.Strip.NumLEDs)
	if err != nil {
		return fmt.Errorf("init strip: %w", err)
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      time.Duration(cfg.Loop.Tick).Milliseconds(),
		DebounceMs:  time.Duration(cfg.Button.Debounce).Milliseconds(),
		HeartbeatMs: time.Duration(cfg.Loop.Heartbeat).Milliseconds(),
		NumLEDs:     cfg.Strip.NumLEDs,
		Threshold:   opts.Threshold,
		Serial:      cfg.Strip.Device,
	})
	tracker.SetStrip(true, 0)

	device.Setup()
	if err := hw.Err(); err != nil {
		strip.Close()
		return fmt.Errorf("setup: %w", err)
	}

	log.Printf("started: tick=%v debounce=%v leds=%d serial=%s heartbeat=%v",
		time.Duration(cfg.Loop.Tick), time.Duration(cfg.Button.Debounce),
		cfg.Strip.NumLEDs, cfg.Strip.Device, time.Duration(cfg.Loop.Heartbeat))
	log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", ""))

	ticker := time.NewTicker(time.Duration(cfg.Loop.Tick))
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return runLoop(ctx, loopDeps{
			device:    device,
			strip:     strip,
			hw:        hw,
			tracker:   tracker,
			heartbeat: time.Duration(cfg.Loop.Heartbeat),
			verbose:   verbose,
		}, ticker.C, sigCh)
	})
	g.Go(func() error {
		return strip.ReadLoop(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		if err := strip.Close(); err != nil {
			return fmt.Errorf("close strip: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printCurrentState(hw *board.RealBoard, opts cube.Options) error {
	hw.SetPinMode(opts.ButtonPin, board.Input)
	acc := accel.New(hw, opts.AccelPins, opts.Calibration, opts.Threshold)

	x, y, z := acc.Read(accel.X), acc.Read(accel.Y), acc.Read(accel.Z)
	orientation := "NONE"
	if o, ok := accel.Classify(x, y, z, opts.Threshold).Value(); ok {
		orientation = o.String()
	}
	button := hw.ReadDigital(opts.ButtonPin)

	if err := hw.Err(); err != nil {
		return fmt.Errorf("read board: %w", err)
	}
	fmt.Printf("Orientation: %s (x=%d y=%d z=%d), Button: %s\n", orientation, x, y, z, button)
	return nil
}

// faulter is implemented by boards that latch I/O errors.
type faulter interface {
	Err() error
}

// acker is implemented by strips that count controller acknowledgements.
type acker interface {
	Acked() uint64
}

type loopDeps struct {
	device    *cube.Device
	strip     led.Strip
	hw        faulter
	tracker   *status.Tracker
	heartbeat time.Duration
	verbose   bool
}

func runLoop(ctx context.Context, d loopDeps, tick <-chan time.Time, sig <-chan os.Signal) error {
	prev := d.device.Snapshot()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if d.tracker != nil {
				snap := d.tracker.Snapshot()
				log.Printf("status: %s", status.FormatStatusEvent(snap, "SHUTDOWN", signalName))
				if d.verbose {
					log.Printf("final state:\n%s", status.FormatJSON(snap))
				}
			}
			return nil

		case <-tick:
			if err := d.device.Tick(d.strip); err != nil {
				return fmt.Errorf("show frame: %w", err)
			}
			if d.hw != nil {
				if err := d.hw.Err(); err != nil {
					return fmt.Errorf("board: %w", err)
				}
			}

			snap := d.device.Snapshot()
			if snap.Mode != prev.Mode {
				log.Printf("event: %s -> %s (remaining=%v total=%v)", prev.Mode, snap.Mode,
					millis(snap.TimeRemaining), millis(snap.TotalTime))
			}
			if d.verbose && snap.Orientation != prev.Orientation {
				log.Printf("orientation: %v", snap.Orientation)
			}
			prev = snap

			if d.tracker == nil {
				continue
			}
			d.tracker.Update(snap)
			if a, ok := d.strip.(acker); ok {
				d.tracker.SetStrip(true, a.Acked())
			}

			if d.heartbeat > 0 && d.device.Heartbeat(uint32(d.heartbeat.Milliseconds())) {
				log.Printf("heartbeat: %s", status.FormatStatusEvent(d.tracker.Snapshot(), "HEARTBEAT", ""))
			}
		}
	}
}

func millis(ms int32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
