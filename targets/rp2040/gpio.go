//go:build rp2040

package main

import (
	"errors"
	"machine"

	"winder/core"
)

var errPinNotInput = errors.New("pin not configured as input")

// RPGPIODriver implements core.GPIODriver on the RP2040 pins.
// Edge handlers run in interrupt context.
type RPGPIODriver struct {
	configuredPins map[core.GPIOPin]machine.Pin
	inputs         map[core.GPIOPin]bool
}

// NewRPGPIODriver creates a driver with no pins configured
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
		inputs:         make(map[core.GPIOPin]bool),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configuredPins[pin] = machinePin
	return nil
}

// ConfigureInputPullUp configures a pin as an input with pull-up resistor
func (d *RPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	d.configuredPins[pin] = machinePin
	d.inputs[pin] = true
	return nil
}

// SetPin drives an output, configuring it first if needed
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		machinePin = d.configuredPins[pin]
	}
	machinePin.Set(value)
	return nil
}

// ReadPin reads the pin level. Unconfigured pins read low.
func (d *RPGPIODriver) ReadPin(pin core.GPIOPin) bool {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return false
	}
	return machinePin.Get()
}

// OnFallingEdge registers handler for high-to-low transitions
func (d *RPGPIODriver) OnFallingEdge(pin core.GPIOPin, handler core.EdgeHandler) error {
	return d.setInterrupt(pin, machine.PinFalling, handler)
}

// OnAnyEdge registers handler for both transitions
func (d *RPGPIODriver) OnAnyEdge(pin core.GPIOPin, handler core.EdgeHandler) error {
	return d.setInterrupt(pin, machine.PinRising|machine.PinFalling, handler)
}

func (d *RPGPIODriver) setInterrupt(pin core.GPIOPin, change machine.PinChange, handler core.EdgeHandler) error {
	if !d.inputs[pin] {
		return errPinNotInput
	}
	return d.configuredPins[pin].SetInterrupt(change, func(p machine.Pin) {
		handler(core.GPIOPin(p))
	})
}
