//go:build rp2040

package main

import "machine"

// Board wiring
const (
	pinMotorEnable  = machine.GPIO0
	pinDebugTX      = machine.GPIO4
	pinDebugRX      = machine.GPIO5
	pinRotaryCLK    = machine.GPIO9
	pinRotaryDT     = machine.GPIO10
	pinRotarySwitch = machine.GPIO11
	pinOLEDSDA      = machine.GPIO12
	pinOLEDSCL      = machine.GPIO13
	pinEncoder      = machine.GPIO15
	pinServo        = machine.GPIO18
	pinLED          = machine.LED
)

const (
	oledAddress = 0x3C
	oledWidth   = 128
	oledHeight  = 64

	// Set usePIOCounter to count encoder edges in a PIO state machine
	// instead of the GPIO interrupt.
	usePIOCounter = false

	// Set useAnalogTension on boards with a load amplifier on ADC0
	useAnalogTension = false
	tensionChannel   = 0
	tensionSamples   = 4
	tensionOffset    = 3200
	tensionScale     = 0.0625

	// Readings pinned to a rail mean the amplifier is unplugged
	tensionRailLow   = 0x0100
	tensionRailHigh  = 0xFF00
	tensionRailReads = 3
)
