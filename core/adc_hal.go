package core

// ADCChannelID selects an analog input. On the RP2040 channels 0-2 are GPIO 26-28.
type ADCChannelID uint8

// ADCValue is one raw conversion, left-aligned to 16 bits.
type ADCValue uint16

// ADCDriver samples analog inputs for the load amplifier.
type ADCDriver interface {
	// ConfigureChannel switches the channel's pin to analog mode
	ConfigureChannel(ch ADCChannelID) error

	// ReadRaw performs one blocking conversion
	ReadRaw(ch ADCChannelID) (ADCValue, error)
}

var adcDriver ADCDriver

// SetADCDriver registers the platform ADC. Boards without a load amplifier never call it.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the registered driver and panics when there is none.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
