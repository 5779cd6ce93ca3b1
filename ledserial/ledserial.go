// Package ledserial implements the serial protocol spoken between the host
// daemon and the LED controller.
//
// Every packet is framed as a type byte, a type-specific body and a CRC32
// (IEEE) checksum of the type byte and body. Multi-byte values are
// little-endian.
package ledserial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
)

// Endianness defines the endianness of the protocol.
var Endianness = binary.LittleEndian

// ErrChecksumMismatch is returned when a packet's checksum does not match its
// contents.
var ErrChecksumMismatch = errors.New("packet checksum mismatch")

// IncomingPacketType is the type of a packet sent from the host to the
// controller.
type IncomingPacketType uint8

const (
	TypeInitializePacket IncomingPacketType = iota
	TypeClearPacket
	TypeSetPacket
)

// String returns a string representation of the packet type.
func (t IncomingPacketType) String() string {
	switch t {
	case TypeInitializePacket:
		return "initialize"
	case TypeClearPacket:
		return "clear"
	case TypeSetPacket:
		return "set"
	default:
		return fmt.Sprintf("IncomingPacketType(%d)", t)
	}
}

// IncomingPacket is a packet sent from the host to the controller.
type IncomingPacket interface {
	// Type returns the type of packet.
	Type() IncomingPacketType
}

// InitializePacket tells the controller how many LEDs the host will send in
// each SetPacket.
type InitializePacket struct {
	NumLEDs uint16
}

// ClearPacket turns off all LEDs.
type ClearPacket struct{}

// SetPacket sets the LEDs to the given colors, three bytes per LED.
type SetPacket struct {
	Pix []uint8
}

func (p InitializePacket) Type() IncomingPacketType { return TypeInitializePacket }
func (p ClearPacket) Type() IncomingPacketType      { return TypeClearPacket }
func (p SetPacket) Type() IncomingPacketType        { return TypeSetPacket }

// OutgoingPacketType is the type of a packet sent from the controller to the
// host.
type OutgoingPacketType uint8

const (
	TypeAckPacket OutgoingPacketType = iota
	TypeErrorPacket
	TypePanicPacket
	TypeLogPacket
)

// String returns a string representation of the packet type.
func (t OutgoingPacketType) String() string {
	switch t {
	case TypeAckPacket:
		return "ack"
	case TypeErrorPacket:
		return "error"
	case TypePanicPacket:
		return "panic"
	case TypeLogPacket:
		return "log"
	default:
		return fmt.Sprintf("OutgoingPacketType(%d)", t)
	}
}

// OutgoingPacket is a packet sent from the controller to the host.
type OutgoingPacket interface {
	// Type returns the type of packet.
	Type() OutgoingPacketType
}

// AckPacket acknowledges that an incoming packet has been handled.
type AckPacket struct {
	IncomingPacketType IncomingPacketType
}

// ErrorPacket indicates that the controller failed to handle a packet.
type ErrorPacket struct {
	Message string
}

// PanicPacket indicates that the controller cannot recover.
type PanicPacket struct{}

// LogPacket carries a log message from the controller.
type LogPacket struct {
	Message string
}

func (p AckPacket) Type() OutgoingPacketType   { return TypeAckPacket }
func (p ErrorPacket) Type() OutgoingPacketType { return TypeErrorPacket }
func (p PanicPacket) Type() OutgoingPacketType { return TypePanicPacket }
func (p LogPacket) Type() OutgoingPacketType   { return TypeLogPacket }

// ReadContext holds the state needed to read incoming packets.
type ReadContext struct {
	// NumLEDs is the number of LEDs set by the last InitializePacket.
	NumLEDs uint16
	// Buffer, if large enough, is reused for the pixels of a SetPacket.
	Buffer []uint8
}

func (c ReadContext) pixels() []uint8 {
	n := 3 * int(c.NumLEDs)
	if cap(c.Buffer) >= n {
		return c.Buffer[:n]
	}
	return make([]uint8, n)
}

// ReadIncomingPacket reads a packet sent by the host.
func ReadIncomingPacket(r io.Reader, context ReadContext) (IncomingPacket, error) {
	var packet IncomingPacket

	err := readPacket(r, func(ptype uint8, r io.Reader) error {
		switch ptype := IncomingPacketType(ptype); ptype {
		case TypeInitializePacket:
			var p InitializePacket
			if err := binary.Read(r, Endianness, &p.NumLEDs); err != nil {
				return fmt.Errorf("failed to read number of LEDs: %w", err)
			}
			packet = p

		case TypeClearPacket:
			packet = ClearPacket{}

		case TypeSetPacket:
			if context.NumLEDs == 0 {
				return errors.New("set packet before initialize")
			}
			p := SetPacket{Pix: context.pixels()}
			if _, err := io.ReadFull(r, p.Pix); err != nil {
				return fmt.Errorf("failed to read pixel data: %w", err)
			}
			packet = p

		default:
			return fmt.Errorf("unknown packet type: %s", ptype)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return packet, nil
}

// WriteIncomingPacket writes a packet to the controller.
func WriteIncomingPacket(w io.Writer, p IncomingPacket) error {
	switch p := p.(type) {
	case InitializePacket:
		return writePacket(w, uint8(TypeInitializePacket), func(w io.Writer) error {
			return binary.Write(w, Endianness, p.NumLEDs)
		})
	case ClearPacket:
		return writePacket(w, uint8(TypeClearPacket), nil)
	case SetPacket:
		return writePacket(w, uint8(TypeSetPacket), func(w io.Writer) error {
			_, err := w.Write(p.Pix)
			return err
		})
	default:
		return fmt.Errorf("unknown packet type: %T", p)
	}
}

// ReadOutgoingPacket reads a packet sent by the controller.
func ReadOutgoingPacket(r io.Reader) (OutgoingPacket, error) {
	var packet OutgoingPacket

	err := readPacket(r, func(ptype uint8, r io.Reader) error {
		switch ptype := OutgoingPacketType(ptype); ptype {
		case TypeAckPacket:
			var p AckPacket
			if err := binary.Read(r, Endianness, &p.IncomingPacketType); err != nil {
				return fmt.Errorf("failed to read acked packet type: %w", err)
			}
			packet = p

		case TypeErrorPacket:
			msg, err := readString(r)
			if err != nil {
				return fmt.Errorf("failed to read error message: %w", err)
			}
			packet = ErrorPacket{Message: msg}

		case TypePanicPacket:
			packet = PanicPacket{}

		case TypeLogPacket:
			msg, err := readString(r)
			if err != nil {
				return fmt.Errorf("failed to read log message: %w", err)
			}
			packet = LogPacket{Message: msg}

		default:
			return fmt.Errorf("unknown packet type: %s", ptype)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return packet, nil
}

// WriteOutgoingPacket writes a packet to the host.
func WriteOutgoingPacket(w io.Writer, p OutgoingPacket) error {
	switch p := p.(type) {
	case AckPacket:
		return writePacket(w, uint8(TypeAckPacket), func(w io.Writer) error {
			return binary.Write(w, Endianness, p.IncomingPacketType)
		})
	case ErrorPacket:
		return writePacket(w, uint8(TypeErrorPacket), func(w io.Writer) error {
			return writeString(w, p.Message)
		})
	case PanicPacket:
		return writePacket(w, uint8(TypePanicPacket), nil)
	case LogPacket:
		return writePacket(w, uint8(TypeLogPacket), func(w io.Writer) error {
			return writeString(w, p.Message)
		})
	default:
		return fmt.Errorf("unknown packet type: %T", p)
	}
}

func readPacket(r io.Reader, body func(ptype uint8, r io.Reader) error) error {
	hash := crc32.NewIEEE()
	tee := io.TeeReader(r, hash)

	var ptype [1]byte
	if _, err := io.ReadFull(tee, ptype[:]); err != nil {
		return fmt.Errorf("failed to read packet type: %w", err)
	}

	if err := body(ptype[0], tee); err != nil {
		return err
	}

	var checksum uint32
	if err := binary.Read(r, Endianness, &checksum); err != nil {
		return fmt.Errorf("failed to read packet checksum: %w", err)
	}

	if checksum != hash.Sum32() {
		return ErrChecksumMismatch
	}

	return nil
}

func writePacket(w io.Writer, ptype uint8, body func(w io.Writer) error) error {
	hash := crc32.NewIEEE()
	mw := io.MultiWriter(w, hash)

	if _, err := mw.Write([]byte{ptype}); err != nil {
		return fmt.Errorf("failed to write packet type: %w", err)
	}

	if body != nil {
		if err := body(mw); err != nil {
			return fmt.Errorf("failed to write packet: %w", err)
		}
	}

	if err := binary.Write(w, Endianness, hash.Sum32()); err != nil {
		return fmt.Errorf("failed to write packet checksum: %w", err)
	}

	return nil
}

// writeString writes a uint16 length-prefixed string. Longer strings are
// truncated.
func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		s = s[:math.MaxUint16]
	}
	if err := binary.Write(w, Endianness, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, Endianness, &length); err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
