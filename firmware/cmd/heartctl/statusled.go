package main

import (
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// statusLED is the onboard NeoPixel of the XIAO RP2040. It is lit while the
// controller waits for a packet.
type statusLED struct {
	power machine.Pin
	led   ws2812.Device
}

func newStatusLED() *statusLED {
	// https://wiki.seeedstudio.com/XIAO-RP2040-with-Arduino/
	power := machine.GPIO11
	power.Configure(machine.PinConfig{Mode: machine.PinOutput})
	power.Low()

	data := machine.GPIO12
	data.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &statusLED{
		power: power,
		led:   ws2812.New(data),
	}
}

func (s *statusLED) On(r, g, b uint8) {
	s.power.High()
	s.led.Write([]byte{r, g, b})
}

func (s *statusLED) Off() {
	s.power.Low()
}
