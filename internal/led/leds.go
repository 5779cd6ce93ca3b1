// Package led provides the LED color buffer that the heart is drawn into.
package led

import (
	"io"
	"unsafe"

	"libdb.so/heartglow/xy"
)

// LEDs describes a chain of LEDs. It is a preallocated slice of RGBColor.
type LEDs []RGBColor

// NewLEDs creates a new chain of LEDs. Colors are initialized to black (off).
func NewLEDs(numLEDs int) LEDs {
	return make(LEDs, numLEDs)
}

// NewMatrix creates a buffer large enough to be indexed by xy.XY for any
// coordinate, including holes and off-grid coordinates.
func NewMatrix() LEDs {
	return NewLEDs(xy.NumLEDs)
}

// WriteTo implements io.WriterTo. It writes the LEDs to the given writer as a
// series of RGBColor values.
func (l LEDs) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, c := range l {
		n, err := w.Write(c[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// AsPixels returns the LEDs as a slice of uint8 values sharing the same
// memory. Each LED is represented by three values, one for each channel.
func (l LEDs) AsPixels() []uint8 {
	if len(l) == 0 {
		return nil
	}
	return unsafe.Slice((*uint8)(unsafe.Pointer(&l[0])), 3*len(l))
}

// Set sets the color of the LED at the given index.
func (l LEDs) Set(i int, c RGBColor) {
	l[i] = c
}

// SetRange sets the color of the LEDs in [start, end).
func (l LEDs) SetRange(start, end int, c RGBColor) {
	for i := start; i < end; i++ {
		l[i] = c
	}
}

// Fill sets every LED to the given color.
func (l LEDs) Fill(c RGBColor) {
	l.SetRange(0, len(l), c)
}

// Draw draws the given LEDs into l at the given index. It stops when either l
// or other is exhausted and returns the number of LEDs written.
func (l LEDs) Draw(start int, other LEDs) int {
	for i := range other {
		if start+i >= len(l) {
			return i
		}
		l[start+i] = other[i]
	}
	return len(other)
}

// SetXY sets the color of the LED at the given grid coordinate. Writes that
// land outside of l are dropped. It returns true if the LED is part of the
// heart.
func (l LEDs) SetXY(x, y uint, c RGBColor) bool {
	i := xy.XY(x, y)
	if int(i) < len(l) {
		l[i] = c
	}
	return xy.IsVisible(i)
}

// AtXY returns the color of the LED at the given grid coordinate. Reads that
// land outside of l return black.
func (l LEDs) AtXY(x, y uint) RGBColor {
	i := xy.XY(x, y)
	if int(i) >= len(l) {
		return RGBColor{}
	}
	return l[i]
}

// Visible returns the part of l that is displayed on the heart.
func (l LEDs) Visible() LEDs {
	if len(l) > xy.LastVisibleLED+1 {
		return l[:xy.LastVisibleLED+1]
	}
	return l
}

// ClearHidden turns off every LED that is not part of the heart.
func (l LEDs) ClearHidden() {
	if len(l) > xy.LastVisibleLED+1 {
		l.SetRange(xy.LastVisibleLED+1, len(l), RGBColor{})
	}
}
