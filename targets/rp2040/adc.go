//go:build rp2040

package main

import (
	"errors"
	"machine"

	"winder/core"
)

var errADCChannel = errors.New("unsupported ADC channel")

// RpAdcDriver implements core.ADCDriver using TinyGo's machine.ADC.
// machine.ADC left-aligns the 12-bit result, so readings span 0..65535.
type RpAdcDriver struct {
	channels map[core.ADCChannelID]*machine.ADC
}

// NewRPAdcDriver initialises the ADC block
func NewRPAdcDriver() *RpAdcDriver {
	machine.InitADC()
	return &RpAdcDriver{
		channels: make(map[core.ADCChannelID]*machine.ADC),
	}
}

// ConfigureChannel puts the channel's pin into analog mode
func (d *RpAdcDriver) ConfigureChannel(ch core.ADCChannelID) error {
	if _, ok := d.channels[ch]; ok {
		return nil
	}

	var adc machine.ADC
	switch ch {
	case 0:
		adc = machine.ADC{Pin: machine.ADC0}
	case 1:
		adc = machine.ADC{Pin: machine.ADC1}
	case 2:
		adc = machine.ADC{Pin: machine.ADC2}
	default:
		return errADCChannel
	}

	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return err
	}
	d.channels[ch] = &adc
	return nil
}

// ReadRaw samples a configured channel
func (d *RpAdcDriver) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	adc, ok := d.channels[ch]
	if !ok {
		if err := d.ConfigureChannel(ch); err != nil {
			return 0, err
		}
		adc = d.channels[ch]
	}
	return core.ADCValue(adc.Get()), nil
}
