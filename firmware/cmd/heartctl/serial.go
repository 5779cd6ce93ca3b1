package main

import (
	"io"
	"machine"
	"runtime"
	"time"
)

// SerialReadWriter is a machine.Serialer that also implements io.ReadWriter.
type SerialReadWriter interface {
	io.ReadWriter
	ReadByte() (byte, error)
	WriteByte(byte) error
	// Buffered returns the number of bytes currently buffered in the serial
	// device.
	Buffered() int
}

type serialIO struct {
	machine.Serialer
}

// WrapSerial wraps a machine.Serialer so that reads block until data is
// available, which is what ledserial expects.
func WrapSerial(serial machine.Serialer) SerialReadWriter {
	return serialIO{Serialer: serial}
}

func (s serialIO) Read(b []byte) (int, error) {
	for {
		n := s.Buffered()
		if n == 0 {
			// Sleep to reduce CPU usage.
			time.Sleep(time.Millisecond)
			continue
		}

		if n > len(b) {
			n = len(b)
		}
		for i := 0; i < n; i++ {
			c, err := s.ReadByte()
			if err != nil {
				return i, err
			}
			b[i] = c
		}

		runtime.Gosched()
		return n, nil
	}
}

func (s serialIO) Write(b []byte) (int, error) {
	for i, c := range b {
		if err := s.WriteByte(c); err != nil {
			return i, err
		}
	}
	runtime.Gosched()
	return len(b), nil
}
