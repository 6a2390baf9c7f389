// ADC (Analog to Digital Converter) support
// Oversampled one-shot reads with an optional range check
package core

import "errors"

// ADC states
const (
	ADCStateIdle  = 0
	ADCStateReady = 1
	ADCStateFault = 2
)

// ErrADCRange is returned once an input has exceeded its range check budget
var ErrADCRange = errors.New("ADC out of range")

// AnalogIn represents a configured ADC input channel
type AnalogIn struct {
	Channel ADCChannelID
	State   uint8

	// Number of samples averaged per read
	SampleCount uint8

	// Range checking on the averaged value
	MinValue        uint16
	MaxValue        uint16
	RangeCheckCount uint8 // Consecutive violations tolerated before fault, 0 = fault on first
	InvalidCount    uint8
}

// NewAnalogIn configures ch and returns an input that averages sampleCount reads.
// The range check is disabled until SetRange is called.
func NewAnalogIn(ch ADCChannelID, sampleCount uint8) (*AnalogIn, error) {
	if sampleCount == 0 {
		sampleCount = 1
	}
	if err := MustADC().ConfigureChannel(ch); err != nil {
		return nil, err
	}
	return &AnalogIn{
		Channel:     ch,
		State:       ADCStateReady,
		SampleCount: sampleCount,
		MinValue:    0,
		MaxValue:    0xFFFF,
	}, nil
}

// SetRange enables the range check
func (a *AnalogIn) SetRange(min, max uint16, tolerated uint8) {
	a.MinValue = min
	a.MaxValue = max
	a.RangeCheckCount = tolerated
	a.InvalidCount = 0
}

// Sample reads SampleCount values and returns their average.
// A faulted input keeps returning ErrADCRange until Reset.
func (a *AnalogIn) Sample() (uint16, error) {
	if a.State == ADCStateFault {
		return 0, ErrADCRange
	}

	var sum uint32
	for i := uint8(0); i < a.SampleCount; i++ {
		v, err := MustADC().ReadRaw(a.Channel)
		if err != nil {
			return 0, err
		}
		sum += uint32(v)
	}
	avg := uint16(sum / uint32(a.SampleCount))

	if avg < a.MinValue || avg > a.MaxValue {
		a.InvalidCount++
		if a.RangeCheckCount == 0 || a.InvalidCount >= a.RangeCheckCount {
			a.State = ADCStateFault
			DebugPrintln("[ADC] channel " + Itoa(int(a.Channel)) + " out of range: " + Itoa(int(avg)))
			return avg, ErrADCRange
		}
	} else {
		a.InvalidCount = 0
	}

	return avg, nil
}

// Reset clears a range fault
func (a *AnalogIn) Reset() {
	a.State = ADCStateReady
	a.InvalidCount = 0
}
