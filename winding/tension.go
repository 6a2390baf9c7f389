package winding

import (
	"math"

	"winder/core"
)

// DefaultTensionLimit is the reading above which a run is aborted
const DefaultTensionLimit = 3000

// TensionSensor returns a force/tension magnitude
type TensionSensor interface {
	ReadTension() int32
}

// FixedTension is a sensor stand-in that always reports the same value.
// The reference machine has no load cell wired and runs with FixedTension(0).
type FixedTension int32

// ReadTension returns the fixed value
func (f FixedTension) ReadTension() int32 {
	return int32(f)
}

// TensionMonitor compares sensor readings against a fixed limit
type TensionMonitor struct {
	sensor TensionSensor
	limit  int32
}

// NewTensionMonitor creates a monitor faulting on readings strictly above limit
func NewTensionMonitor(sensor TensionSensor, limit int32) *TensionMonitor {
	return &TensionMonitor{sensor: sensor, limit: limit}
}

// Check samples the sensor once
func (m *TensionMonitor) Check() (reading int32, fault bool) {
	reading = m.sensor.ReadTension()
	return reading, reading > m.limit
}

// Reset clears any latched fault in the sensor. Sensors without one are untouched.
func (m *TensionMonitor) Reset() {
	if r, ok := m.sensor.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// Limit returns the fault threshold
func (m *TensionMonitor) Limit() int32 {
	return m.limit
}

// AnalogTension reads a load amplifier with an analog output through the ADC.
// A failed or out-of-range sample reads as maximum tension so the run stops.
type AnalogTension struct {
	in     *core.AnalogIn
	offset uint16
	scale  float64
}

// NewAnalogTension converts (raw - offset) * scale into force units
func NewAnalogTension(in *core.AnalogIn, offset uint16, scale float64) *AnalogTension {
	return &AnalogTension{in: in, offset: offset, scale: scale}
}

// Reset re-arms the ADC range check after a fault
func (a *AnalogTension) Reset() {
	a.in.Reset()
}

// ReadTension samples the ADC
func (a *AnalogTension) ReadTension() int32 {
	raw, err := a.in.Sample()
	if err != nil {
		core.DebugAsync("[TENSION] read failed: " + err.Error())
		return math.MaxInt32
	}
	if raw <= a.offset {
		return 0
	}
	v := float64(raw-a.offset) * a.scale
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}
