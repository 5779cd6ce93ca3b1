// Command heartctl is the firmware for the heart's LED controller, a Seeed
// XIAO RP2040 with the LED chain on D10. Build it with TinyGo:
//
//	tinygo flash -target xiao-rp2040 ./cmd/heartctl
package main

import "machine"

func main() {
	d := NewDevice(machine.Serial, machine.D10)
	d.Run()
}
