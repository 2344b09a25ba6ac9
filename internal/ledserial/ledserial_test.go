package ledserial

import (
	"bytes"
	"hash/crc32"
	"strings"
	"testing"
)

func TestSetPacketWireFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHostPacket(&buf, SetPacket{Pix: []uint8{1, 2, 3}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	b := buf.Bytes()
	if len(b) != 1+3+4 {
		t.Fatalf("length: got %d, want 8", len(b))
	}
	if b[0] != byte(TypeSet) {
		t.Errorf("type byte: got %d, want %d", b[0], TypeSet)
	}
	want := crc32.ChecksumIEEE(b[:4])
	got := Endianness.Uint32(b[4:])
	if got != want {
		t.Errorf("checksum: got %08x, want %08x", got, want)
	}
}

func TestHostPacketsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	packets := []HostPacket{
		InitializePacket{NumLEDs: 2},
		SetPacket{Pix: []uint8{10, 20, 30, 40, 50, 60}},
		ClearPacket{},
	}
	for _, p := range packets {
		if err := WriteHostPacket(&buf, p); err != nil {
			t.Fatalf("write %s: %v", p.Type(), err)
		}
	}

	rctx := ReadContext{}
	for i, want := range packets {
		got, err := ReadHostPacket(&buf, rctx)
		if err != nil {
			t.Fatalf("packet %d: %v", i, err)
		}
		if got.Type() != want.Type() {
			t.Errorf("packet %d: got %s, want %s", i, got.Type(), want.Type())
		}
		if p, ok := got.(InitializePacket); ok {
			rctx.NumLEDs = p.NumLEDs
		}
		if p, ok := got.(SetPacket); ok && !bytes.Equal(p.Pix, want.(SetPacket).Pix) {
			t.Errorf("pixels: got %v, want %v", p.Pix, want.(SetPacket).Pix)
		}
	}
}

func TestControllerPacketsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	packets := []ControllerPacket{
		AckPacket{For: TypeSet},
		LogPacket{Message: "frame ok"},
		ErrorPacket{Message: "bad length"},
		PanicPacket{Message: "out of memory"},
	}
	for _, p := range packets {
		if err := WriteControllerPacket(&buf, p); err != nil {
			t.Fatalf("write %s: %v", p.Type(), err)
		}
	}
	for i, want := range packets {
		got, err := ReadControllerPacket(&buf)
		if err != nil {
			t.Fatalf("packet %d: %v", i, err)
		}
		if got != want {
			t.Errorf("packet %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteControllerPacket(&buf, LogPacket{Message: "hello"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := buf.Bytes()
	b[3] ^= 0xFF // corrupt the message

	_, err := ReadControllerPacket(bytes.NewReader(b))
	if err == nil || !strings.Contains(err.Error(), "checksum") {
		t.Errorf("expected checksum error, got %v", err)
	}
}

func TestUnknownPacketType(t *testing.T) {
	if _, err := ReadHostPacket(bytes.NewReader([]byte{0x7F}), ReadContext{}); err == nil {
		t.Error("expected error for unknown host packet type")
	}
	if _, err := ReadControllerPacket(bytes.NewReader([]byte{0x7F})); err == nil {
		t.Error("expected error for unknown controller packet type")
	}
}
