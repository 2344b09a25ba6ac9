// Package ledserial implements the framed protocol used to push LED frames to
// a strip controller over a serial line.
//
// Every packet is a type byte, a type-specific body and a little-endian CRC32
// (IEEE) of the type byte and body.
package ledserial

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
)

// Endianness defines the endianness of the protocol.
var Endianness = binary.LittleEndian

// HostPacketType is the type of a packet sent from the host to the
// controller.
type HostPacketType uint8

const (
	TypeInitialize HostPacketType = iota
	TypeClear
	TypeSet
)

func (t HostPacketType) String() string {
	switch t {
	case TypeInitialize:
		return "initialize"
	case TypeClear:
		return "clear"
	case TypeSet:
		return "set"
	default:
		return fmt.Sprintf("HostPacketType(%d)", t)
	}
}

// HostPacket is a packet sent from the host to the controller.
type HostPacket interface {
	Type() HostPacketType
}

// InitializePacket tells the controller how long the strip is.
type InitializePacket struct {
	NumLEDs uint16
}

// ClearPacket turns every LED off.
type ClearPacket struct{}

// SetPacket carries a full frame, three bytes per LED.
type SetPacket struct {
	Pix []uint8
}

func (InitializePacket) Type() HostPacketType { return TypeInitialize }
func (ClearPacket) Type() HostPacketType      { return TypeClear }
func (SetPacket) Type() HostPacketType        { return TypeSet }

// ControllerPacketType is the type of a packet sent from the controller back
// to the host.
type ControllerPacketType uint8

const (
	TypeAck ControllerPacketType = iota
	TypeError
	TypePanic
	TypeLog
)

func (t ControllerPacketType) String() string {
	switch t {
	case TypeAck:
		return "ack"
	case TypeError:
		return "error"
	case TypePanic:
		return "panic"
	case TypeLog:
		return "log"
	default:
		return fmt.Sprintf("ControllerPacketType(%d)", t)
	}
}

// ControllerPacket is a packet sent from the controller to the host.
type ControllerPacket interface {
	Type() ControllerPacketType
}

// AckPacket acknowledges a host packet.
type AckPacket struct {
	For HostPacketType
}

// ErrorPacket reports a recoverable controller error.
type ErrorPacket struct {
	Message string
}

// PanicPacket reports that the controller cannot continue.
type PanicPacket struct {
	Message string
}

// LogPacket carries a diagnostic message.
type LogPacket struct {
	Message string
}

func (AckPacket) Type() ControllerPacketType   { return TypeAck }
func (ErrorPacket) Type() ControllerPacketType { return TypeError }
func (PanicPacket) Type() ControllerPacketType { return TypePanic }
func (LogPacket) Type() ControllerPacketType   { return TypeLog }

// ReadContext is what a reader must know to decode host packets.
type ReadContext struct {
	// NumLEDs is the number of LEDs in the strip, as set by the last
	// InitializePacket.
	NumLEDs uint16
}

// WriteHostPacket writes p to w.
func WriteHostPacket(w io.Writer, p HostPacket) error {
	sum := crc32.NewIEEE()
	mw := io.MultiWriter(w, sum)

	if _, err := mw.Write([]byte{byte(p.Type())}); err != nil {
		return fmt.Errorf("failed to write packet type: %w", err)
	}

	switch p := p.(type) {
	case InitializePacket:
		if err := binary.Write(mw, Endianness, p.NumLEDs); err != nil {
			return fmt.Errorf("failed to write number of LEDs: %w", err)
		}
	case ClearPacket:
	case SetPacket:
		if _, err := mw.Write(p.Pix); err != nil {
			return fmt.Errorf("failed to write pixel data: %w", err)
		}
	default:
		return fmt.Errorf("unknown packet type: %T", p)
	}

	return writeChecksum(w, sum)
}

// ReadHostPacket reads a host packet from r.
func ReadHostPacket(r io.Reader, rctx ReadContext) (HostPacket, error) {
	sum := crc32.NewIEEE()
	tr := io.TeeReader(r, sum)

	var typ [1]byte
	if _, err := io.ReadFull(tr, typ[:]); err != nil {
		return nil, fmt.Errorf("failed to read packet type: %w", err)
	}

	var packet HostPacket
	switch t := HostPacketType(typ[0]); t {
	case TypeInitialize:
		var p InitializePacket
		if err := binary.Read(tr, Endianness, &p.NumLEDs); err != nil {
			return nil, fmt.Errorf("failed to read number of LEDs: %w", err)
		}
		packet = p
	case TypeClear:
		packet = ClearPacket{}
	case TypeSet:
		p := SetPacket{Pix: make([]uint8, 3*int(rctx.NumLEDs))}
		if _, err := io.ReadFull(tr, p.Pix); err != nil {
			return nil, fmt.Errorf("failed to read pixel data: %w", err)
		}
		packet = p
	default:
		return nil, fmt.Errorf("unknown packet type: %s", t)
	}

	if err := readChecksum(r, sum); err != nil {
		return nil, err
	}
	return packet, nil
}

// WriteControllerPacket writes p to w.
func WriteControllerPacket(w io.Writer, p ControllerPacket) error {
	sum := crc32.NewIEEE()
	mw := io.MultiWriter(w, sum)

	if _, err := mw.Write([]byte{byte(p.Type())}); err != nil {
		return fmt.Errorf("failed to write packet type: %w", err)
	}

	var err error
	switch p := p.(type) {
	case AckPacket:
		_, err = mw.Write([]byte{byte(p.For)})
	case ErrorPacket:
		err = writeString(mw, p.Message)
	case PanicPacket:
		err = writeString(mw, p.Message)
	case LogPacket:
		err = writeString(mw, p.Message)
	default:
		return fmt.Errorf("unknown packet type: %T", p)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s packet: %w", p.Type(), err)
	}

	return writeChecksum(w, sum)
}

// ReadControllerPacket reads a controller packet from r.
func ReadControllerPacket(r io.Reader) (ControllerPacket, error) {
	sum := crc32.NewIEEE()
	tr := io.TeeReader(r, sum)

	var typ [1]byte
	if _, err := io.ReadFull(tr, typ[:]); err != nil {
		return nil, fmt.Errorf("failed to read packet type: %w", err)
	}

	var packet ControllerPacket
	var err error
	switch t := ControllerPacketType(typ[0]); t {
	case TypeAck:
		var b [1]byte
		_, err = io.ReadFull(tr, b[:])
		packet = AckPacket{For: HostPacketType(b[0])}
	case TypeError:
		var msg string
		msg, err = readString(tr)
		packet = ErrorPacket{Message: msg}
	case TypePanic:
		var msg string
		msg, err = readString(tr)
		packet = PanicPacket{Message: msg}
	case TypeLog:
		var msg string
		msg, err = readString(tr)
		packet = LogPacket{Message: msg}
	default:
		return nil, fmt.Errorf("unknown packet type: %s", t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s packet: %w", packet.Type(), err)
	}

	if err := readChecksum(r, sum); err != nil {
		return nil, err
	}
	return packet, nil
}

func writeString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		s = s[:0xFFFF]
	}
	if err := binary.Write(w, Endianness, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, Endianness, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeChecksum(w io.Writer, sum hash.Hash32) error {
	if err := binary.Write(w, Endianness, sum.Sum32()); err != nil {
		return fmt.Errorf("failed to write packet checksum: %w", err)
	}
	return nil
}

// readChecksum reads the trailing checksum directly from r so that it is not
// folded into sum.
func readChecksum(r io.Reader, sum hash.Hash32) error {
	var checksum uint32
	if err := binary.Read(r, Endianness, &checksum); err != nil {
		return fmt.Errorf("failed to read packet checksum: %w", err)
	}
	if checksum != sum.Sum32() {
		return fmt.Errorf("packet checksum mismatch")
	}
	return nil
}
