package winding

import (
	"errors"
	"math"
	"testing"

	"winder/core"
)

func TestTensionMonitorStrictlyGreater(t *testing.T) {
	tests := []struct {
		reading int32
		fault   bool
	}{
		{0, false},
		{2999, false},
		{3000, false},
		{3001, true},
	}
	for _, tt := range tests {
		m := NewTensionMonitor(FixedTension(tt.reading), DefaultTensionLimit)
		got, fault := m.Check()
		if got != tt.reading || fault != tt.fault {
			t.Errorf("Reading %d: expected fault=%v, got %d/%v", tt.reading, tt.fault, got, fault)
		}
	}
}

func TestAnalogTension(t *testing.T) {
	adc := &fakeADC{value: 1500}
	core.SetADCDriver(adc)

	in, err := core.NewAnalogIn(0, 4)
	if err != nil {
		t.Fatalf("NewAnalogIn failed: %v", err)
	}
	sensor := NewAnalogTension(in, 500, 2.5)

	if got := sensor.ReadTension(); got != 2500 {
		t.Errorf("Expected 2500, got %d", got)
	}

	adc.value = 400
	if got := sensor.ReadTension(); got != 0 {
		t.Errorf("Expected 0 below offset, got %d", got)
	}
}

func TestAnalogTensionFailsSafe(t *testing.T) {
	adc := &fakeADC{err: errors.New("adc busy")}
	core.SetADCDriver(adc)

	in, _ := core.NewAnalogIn(0, 1)
	sensor := NewAnalogTension(in, 0, 1)

	got := sensor.ReadTension()
	if got != math.MaxInt32 {
		t.Errorf("Expected max reading on error, got %d", got)
	}
	if _, fault := NewTensionMonitor(sensor, DefaultTensionLimit).Check(); !fault {
		t.Error("Expected a failed read to trip the monitor")
	}
}
