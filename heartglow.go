// Package heartglow drives a heart-shaped LED matrix. It paints frames into a
// 13x13 grid buffer and streams them to an LED controller over serial.
package heartglow

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"
	"libdb.so/heartglow/internal/led"
	"libdb.so/heartglow/ledserial"
	"libdb.so/heartglow/xy"
)

// RefreshQueuer is the interface for types that can queue a refresh of the
// LEDs. Painters that change over time use this interface to ask for a new
// frame.
type RefreshQueuer interface {
	// QueueRefresh queues a refresh of the LEDs.
	// The daemon may merge this request with one that is already queued.
	QueueRefresh()
}

// Daemon is the main heartglow daemon.
type Daemon struct {
	cfg      *Config
	logger   *slog.Logger
	refresh  chan struct{}
	painters []Painter
}

var _ RefreshQueuer = (*Daemon)(nil)

// NewDaemon creates a new heartglow daemon. The static colors in cfg are
// always painted first.
func NewDaemon(cfg *Config, logger *slog.Logger) (*Daemon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		refresh:  make(chan struct{}, 1),
		painters: []Painter{NewStaticPainter(cfg)},
	}, nil
}

// AddPainter adds a painter that is called after all previously added
// painters. It must be called before Run.
func (d *Daemon) AddPainter(p Painter) {
	d.painters = append(d.painters, p)
}

// QueueRefresh queues a refresh of the LEDs.
func (d *Daemon) QueueRefresh() {
	select {
	case d.refresh <- struct{}{}:
	default:
	}
}

// Run opens the serial port and drives the controller. It blocks until the
// given context is canceled or the controller fails.
func (d *Daemon) Run(ctx context.Context) error {
	port, err := serial.Open(d.cfg.Device, &serial.Mode{
		BaudRate: d.cfg.Baud,
	})
	if err != nil {
		return errors.Wrap(err, "failed to open serial port")
	}

	if err := port.SetReadTimeout(serial.NoTimeout); err != nil {
		port.Close()
		return errors.Wrap(err, "failed to reset read timeout")
	}

	return d.serve(ctx, port)
}

// serve drives the controller on the other end of port. port is closed when
// serve returns.
func (d *Daemon) serve(ctx context.Context, port io.ReadWriteCloser) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		<-ctx.Done()
		d.logger.Debug("closing serial port")
		if err := port.Close(); err != nil {
			return errors.Wrap(err, "failed to close serial port")
		}
		return ctx.Err()
	})

	packets := make(chan ledserial.OutgoingPacket)
	errg.Go(func() error {
		return d.mainLoop(ctx, port, packets)
	})
	errg.Go(func() error {
		return d.readPackets(ctx, port, packets)
	})

	return errg.Wait()
}

func (d *Daemon) mainLoop(ctx context.Context, w io.Writer, packets <-chan ledserial.OutgoingPacket) error {
	if settle := time.Duration(d.cfg.Settle); settle > 0 {
		d.logger.Debug("waiting for the read loop to start", "settle", settle)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(settle):
		}
	}

	d.logger.Debug("sending initialize packet", "num_leds", xy.NumLEDs)
	if err := d.writePacket(w, ledserial.InitializePacket{NumLEDs: xy.NumLEDs}); err != nil {
		return errors.Wrap(err, "failed to initialize LEDs")
	}

	leds := led.NewMatrix()

	frameTicker := time.NewTicker(time.Second / time.Duration(d.cfg.Rate))
	defer frameTicker.Stop()

	// A frame is only sent once the controller has acked the previous packet
	// and a refresh is pending. The first frame is always pending.
	acked := false
	pending := true

	for {
		var nextFrame <-chan time.Time // nil unless a frame can be sent
		if acked && pending {
			nextFrame = frameTicker.C
		}

		select {
		case <-ctx.Done():
			return nil

		case <-d.refresh:
			pending = true

		case p := <-packets:
			switch p := p.(type) {
			case ledserial.AckPacket:
				d.logger.Debug(
					"received ack packet from controller",
					"acked_for", p.IncomingPacketType)
				acked = true

			case ledserial.ErrorPacket:
				d.logger.Warn(
					"received error packet from controller",
					"message", p.Message)
				return errors.Errorf("controller reported error: %s", p.Message)

			case ledserial.PanicPacket:
				d.logger.Error("controller unrecoverably panicked")
				return errors.New("controller panicked")

			case ledserial.LogPacket:
				d.logger.Info(
					"received log packet from controller",
					"message", p.Message)

			default:
				return errors.Errorf("received unknown packet from controller: %s", p.Type())
			}

		case <-nextFrame:
			d.paint(leds)

			if err := d.writePacket(w, ledserial.SetPacket{Pix: leds.AsPixels()}); err != nil {
				return errors.Wrap(err, "failed to send frame")
			}

			acked = false
			pending = false
		}
	}
}

func (d *Daemon) paint(leds led.LEDs) {
	for _, p := range d.painters {
		p.Paint(leds)
	}
	if !d.cfg.DriveHidden {
		leds.ClearHidden()
	}
}

func (d *Daemon) readPackets(ctx context.Context, r io.Reader, dst chan<- ledserial.OutgoingPacket) error {
	for ctx.Err() == nil {
		p, err := ledserial.ReadOutgoingPacket(r)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Reads never time out, so EOF means the port went away.
			if errors.Is(err, io.EOF) {
				return errors.Wrap(err, "controller disconnected")
			}
			return errors.Wrap(err, "failed to read packet")
		}

		d.logger.Debug(
			"received packet from controller",
			"type", p.Type())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case dst <- p:
			// ok
		}
	}

	return ctx.Err()
}

func (d *Daemon) writePacket(w io.Writer, p ledserial.IncomingPacket) error {
	d.logger.Debug(
		"writing packet",
		"type", p.Type())

	if err := ledserial.WriteIncomingPacket(w, p); err != nil {
		d.logger.Warn(
			"failed to write packet",
			"packet", p.Type(),
			"error", err)
		return err
	}

	return nil
}
