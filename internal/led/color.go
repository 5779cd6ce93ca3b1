package led

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"strings"
)

// RGBColor is a color with 8 bits per channel, in the order the LEDs expect.
type RGBColor [3]uint8

var (
	_ encoding.TextUnmarshaler = (*RGBColor)(nil)
	_ encoding.TextMarshaler   = RGBColor{}
)

// Black is the color of an LED that is off.
var Black = RGBColor{}

// ParseRGBColor parses a color in the #rrggbb form. The leading # is optional.
func ParseRGBColor(s string) (RGBColor, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGBColor{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}

	var c RGBColor
	if _, err := hex.Decode(c[:], []byte(s)); err != nil {
		return RGBColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return c, nil
}

// String returns the color in the #rrggbb form.
func (c RGBColor) String() string {
	return "#" + hex.EncodeToString(c[:])
}

func (c *RGBColor) UnmarshalText(text []byte) error {
	v, err := ParseRGBColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c RGBColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
