package heartglow

import (
	"libdb.so/heartglow/internal/led"
	"libdb.so/heartglow/xy"
)

// Painter draws into the LED buffer before each frame is sent. The buffer
// holds xy.NumLEDs LEDs and is meant to be indexed through xy.XY or
// led.LEDs.SetXY. Animations live behind this interface.
type Painter interface {
	Paint(leds led.LEDs)
}

// PainterFunc is a function that implements Painter.
type PainterFunc func(leds led.LEDs)

// Paint implements Painter.
func (f PainterFunc) Paint(leds led.LEDs) { f(leds) }

// StaticPainter paints the background, rows and pixels of a Config.
type StaticPainter struct {
	cfg *Config
}

var _ Painter = (*StaticPainter)(nil)

// NewStaticPainter creates a painter for the static colors in cfg.
func NewStaticPainter(cfg *Config) *StaticPainter {
	return &StaticPainter{cfg: cfg}
}

// Paint implements Painter.
func (p *StaticPainter) Paint(leds led.LEDs) {
	leds.Fill(p.cfg.Background)

	for _, row := range p.cfg.Rows {
		for x := uint(0); x < xy.Width; x++ {
			leds.SetXY(x, row.Y, row.Color)
		}
	}

	for _, px := range p.cfg.Pixels {
		leds.SetXY(px.X, px.Y, px.Color)
	}
}
