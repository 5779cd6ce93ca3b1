package main

import (
	"fmt"
	"machine"

	"libdb.so/heartglow/ledserial"
	"libdb.so/heartglow/xy"
	"tinygo.org/x/drivers/ws2812"
)

// chainLength is the number of LEDs physically wired into the heart.
const chainLength = xy.LastVisibleLED + 1

// Device stores the current state of the controller.
type Device struct {
	serial SerialReadWriter
	strip  ws2812.Device
	status *statusLED

	ctx ledserial.ReadContext
	off []byte

	writeFailed bool
}

// NewDevice creates a new device driving the LED chain on ledPin.
func NewDevice(serial machine.Serialer, ledPin machine.Pin) *Device {
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &Device{
		serial: WrapSerial(serial),
		strip:  ws2812.New(ledPin),
		status: newStatusLED(),
		off:    make([]byte, 3*chainLength),
	}
}

// Run runs the device loop forever.
func (d *Device) Run() {
	for {
		p, err := d.readPacket()
		if err != nil {
			d.logError(err)
			continue
		}

		if err := d.handlePacket(p); err != nil {
			d.logError(err)
			continue
		}

		d.sendPacket(ledserial.AckPacket{IncomingPacketType: p.Type()})
	}
}

func (d *Device) log(msg string) {
	d.sendPacket(ledserial.LogPacket{Message: msg})
}

func (d *Device) logError(err error) {
	d.sendPacket(ledserial.ErrorPacket{Message: err.Error()})
}

// sendPacket writes p to the host. The host cannot be told about a failed
// write, so the status LED shows red until a write succeeds again.
func (d *Device) sendPacket(p ledserial.OutgoingPacket) {
	d.writeFailed = ledserial.WriteOutgoingPacket(d.serial, p) != nil
}

func (d *Device) readPacket() (ledserial.IncomingPacket, error) {
	if d.writeFailed {
		d.status.On(0x40, 0, 0)
	} else {
		d.status.On(0x20, 0x20, 0x20)
	}
	defer d.status.Off()

	return ledserial.ReadIncomingPacket(d.serial, d.ctx)
}

func (d *Device) handlePacket(p ledserial.IncomingPacket) error {
	switch p := p.(type) {
	case ledserial.InitializePacket:
		if p.NumLEDs < chainLength {
			return fmt.Errorf("need at least %d LEDs, got %d", chainLength, p.NumLEDs)
		}
		d.ctx = ledserial.ReadContext{
			NumLEDs: p.NumLEDs,
			Buffer:  make([]byte, 3*int(p.NumLEDs)),
		}
		d.showReady()
		d.log(fmt.Sprintf("initialized %d LEDs, driving %d", p.NumLEDs, chainLength))

	case ledserial.ClearPacket:
		d.strip.Write(d.off)

	case ledserial.SetPacket:
		// Only the visible part of the buffer is wired up.
		d.strip.Write(p.Pix[:3*chainLength])

	default:
		return fmt.Errorf("unknown packet type: %T", p)
	}

	return nil
}

// showReady lights the bottom point of the heart red.
func (d *Device) showReady() {
	pix := d.ctx.Buffer[:3*chainLength]
	for i := range pix {
		pix[i] = 0
	}
	i := 3 * int(xy.XY(6, 12))
	pix[i] = 0xFF
	d.strip.Write(pix)
}
