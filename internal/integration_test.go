package internal

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/timer-cube/internal/accel"
	"github.com/sweeney/timer-cube/internal/board"
	"github.com/sweeney/timer-cube/internal/cube"
	"github.com/sweeney/timer-cube/internal/led"
	"github.com/sweeney/timer-cube/internal/ledserial"
	"github.com/sweeney/timer-cube/internal/modes"
	"github.com/sweeney/timer-cube/internal/status"
)

const numLEDs = 8

// capturePort records everything written to it and never has anything to read.
type capturePort struct {
	bytes.Buffer
}

func (p *capturePort) Read(b []byte) (int, error) { return 0, io.EOF }
func (p *capturePort) Close() error               { return nil }

type rig struct {
	t      *testing.T
	board  *board.FakeBoard
	device *cube.Device
	strip  *led.SerialStrip
	port   *capturePort
	shown  int
}

func newRig(t *testing.T) *rig {
	t.Helper()
	b := board.NewFakeBoard()
	port := &capturePort{}
	strip, err := led.NewSerialStrip(port, numLEDs)
	if err != nil {
		t.Fatalf("NewSerialStrip: %v", err)
	}

	opts := cube.DefaultOptions()
	opts.NumLEDs = numLEDs
	r := &rig{t: t, board: b, device: cube.NewDevice(b, opts), strip: strip, port: port}
	r.face(508, 515, 520)
	return r
}

// face sets the raw x, y and z readings.
func (r *rig) face(x, y, z uint16) {
	pins := accel.DefaultPins()
	r.board.SetAnalog(pins.X, x)
	r.board.SetAnalog(pins.Y, y)
	r.board.SetAnalog(pins.Z, z)
}

func (r *rig) xUp()   { r.face(602, 515, 520) }
func (r *rig) xDown() { r.face(414, 515, 520) }
func (r *rig) flat()  { r.face(508, 515, 612) }

func (r *rig) tick(advance uint32) {
	r.t.Helper()
	r.board.Advance(advance)
	if err := r.device.Tick(r.strip); err != nil {
		r.t.Fatalf("tick at %dms: %v", r.board.Now, err)
	}
	r.shown++
}

// press drives one debounced press and release of the button, 60ms per tick.
func (r *rig) press() {
	r.t.Helper()
	for _, level := range []board.PinState{board.High, board.High, board.Low, board.Low} {
		r.board.ScriptDigital(board.DefaultButtonPin, level)
		r.tick(60)
	}
}

func (r *rig) expect(mode cube.Mode, remaining int32) {
	r.t.Helper()
	if got := r.device.Mode(); got != mode {
		r.t.Fatalf("mode: got %v, want %v", got, mode)
	}
	if got := r.device.TimeRemaining; got != remaining {
		r.t.Errorf("%v: remaining got %d, want %d", mode, got, remaining)
	}
}

// TestIntegrationFullCycle sets a duration with the button, runs it with a
// pause in the middle, lets it expire and flips back to Setting.
func TestIntegrationFullCycle(t *testing.T) {
	r := newRig(t)
	r.device.Setup()

	r.tick(0)
	r.expect(cube.Setting, 0)

	// five quarters: one minute and fifteen seconds
	for i := 0; i < 5; i++ {
		r.press()
	}
	r.expect(cube.Setting, 75000)
	if want := (modes.Count{Minutes: 1, Quarters: 1}); r.device.Snapshot().Count != want {
		t.Errorf("count: got %+v, want %+v", r.device.Snapshot().Count, want)
	}

	r.xUp()
	r.tick(60)
	r.expect(cube.Timing, 75000)
	if r.device.TotalTime != 75000 {
		t.Errorf("TotalTime: got %d, want 75000", r.device.TotalTime)
	}

	r.tick(30000)
	r.expect(cube.Timing, 45000)

	r.flat()
	r.tick(0)
	r.expect(cube.Paused, 45000)
	r.tick(10000)
	r.expect(cube.Paused, 45000)

	// only the time after resuming counts
	r.xUp()
	r.tick(100)
	r.expect(cube.Timing, 44900)

	r.tick(44900)
	r.expect(cube.Timing, 0)
	r.tick(10)
	r.expect(cube.Finale, 0)

	r.xDown()
	r.tick(10)
	r.expect(cube.Setting, 0)

	snap := r.device.Snapshot()
	if snap.Count != (modes.Count{}) {
		t.Errorf("count after reset: got %+v", snap.Count)
	}
	wantFlips := []cube.Flip{cube.FlipUp, cube.FlipFlat, cube.FlipUp, cube.FlipDown}
	if len(snap.Flips) != len(wantFlips) {
		t.Fatalf("flips: got %v, want %v", snap.Flips, wantFlips)
	}
	for i, f := range wantFlips {
		if snap.Flips[i] != f {
			t.Errorf("flip %d: got %v, want %v", i, snap.Flips[i], f)
		}
	}

	// Verify the serial stream
	packets := r.hostPackets()
	if len(packets) != r.shown+1 {
		t.Fatalf("packets: got %d, want %d", len(packets), r.shown+1)
	}
	if init, ok := packets[0].(ledserial.InitializePacket); !ok || init.NumLEDs != numLEDs {
		t.Errorf("first packet: got %#v, want initialize for %d", packets[0], numLEDs)
	}
	last, ok := packets[len(packets)-1].(ledserial.SetPacket)
	if !ok {
		t.Fatalf("last packet: got %T, want SetPacket", packets[len(packets)-1])
	}
	if want := r.device.Frame().AsPixels(nil); !bytes.Equal(last.Pix, want) {
		t.Errorf("last frame on the wire: got %v, want %v", last.Pix, want)
	}

	// Verify the status JSON
	tracker := status.NewTracker(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), status.Config{NumLEDs: numLEDs})
	tracker.Update(snap)
	var parsed status.StatusJSON
	if err := json.Unmarshal(status.FormatJSON(tracker.Snapshot()), &parsed); err != nil {
		t.Fatalf("invalid status JSON: %v", err)
	}
	st := parsed.Status
	if st.Mode != "SETTING" {
		t.Errorf("status mode: got %q, want SETTING", st.Mode)
	}
	if want := (status.CountsJSON{Setting: 1, Timing: 2, Paused: 1, Finale: 1}); st.Counts != want {
		t.Errorf("mode entries: got %+v, want %+v", st.Counts, want)
	}
	if got := strings.Join(st.Flips, ","); got != "UP,FLAT,UP,DOWN" {
		t.Errorf("recent flips: got %s", got)
	}
}

// TestIntegrationClockWrap runs a countdown across the millisecond counter
// wrapping to zero.
func TestIntegrationClockWrap(t *testing.T) {
	r := newRig(t)
	r.board.Now = math.MaxUint32 - 5000

	r.tick(0)
	r.press()
	r.expect(cube.Setting, 15000)

	r.xUp()
	r.tick(10)
	r.tick(10000)
	if r.board.Now > 10000 {
		t.Fatalf("clock did not wrap: %d", r.board.Now)
	}
	r.expect(cube.Timing, 5000)

	r.tick(5000)
	r.tick(10)
	r.expect(cube.Finale, 0)
}

// TestIntegrationBounceRejection verifies a button bounce shorter than the
// debounce delay does not change the duration.
func TestIntegrationBounceRejection(t *testing.T) {
	r := newRig(t)
	r.tick(0)

	for _, level := range []board.PinState{board.High, board.Low, board.High, board.Low, board.Low} {
		r.board.ScriptDigital(board.DefaultButtonPin, level)
		r.tick(20)
	}
	r.expect(cube.Setting, 0)
}

// TestIntegrationUndecidedOrientation verifies that passing through no clear
// face on the way up still starts the timer once x is up.
func TestIntegrationUndecidedOrientation(t *testing.T) {
	r := newRig(t)
	r.tick(0)
	r.press()

	r.face(560, 515, 520)
	r.tick(10)
	r.expect(cube.Setting, 15000)

	r.xUp()
	r.tick(10)
	r.expect(cube.Timing, 15000)
}

func (r *rig) hostPackets() []ledserial.HostPacket {
	r.t.Helper()
	rctx := ledserial.ReadContext{NumLEDs: numLEDs}
	var packets []ledserial.HostPacket
	for r.port.Len() > 0 {
		p, err := ledserial.ReadHostPacket(&r.port.Buffer, rctx)
		if err != nil {
			r.t.Fatalf("packet %d: %v", len(packets), err)
		}
		packets = append(packets, p)
	}
	return packets
}
