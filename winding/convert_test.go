package winding

import (
	"math"
	"testing"
)

func TestMetresToPulsesReferenceMachine(t *testing.T) {
	cal := DefaultConfig().Calibration

	if got := cal.PulsesPerMetre(); math.Abs(got-2273.642) > 0.01 {
		t.Errorf("Expected about 2273.64 pulses per metre, got %f", got)
	}
	if got := cal.TargetPulses(1); got != 2274 {
		t.Errorf("Expected 2274 pulses for 1 m, got %d", got)
	}
	if got := cal.TargetPulses(0); got != 0 {
		t.Errorf("Expected 0 pulses for 0 m, got %d", got)
	}
}

func TestMetresRoundTrip(t *testing.T) {
	cal := DefaultConfig().Calibration

	for _, m := range []float64{0, 0.25, 1, 17, 123.5, 999} {
		got := cal.PulsesToMetres(cal.MetresToPulses(m))
		if math.Abs(got-m) > 1e-9 {
			t.Errorf("Round trip of %v m returned %v", m, got)
		}
	}
}

func TestPulsesToMetresZeroCalibration(t *testing.T) {
	var cal Calibration
	if got := cal.PulsesToMetres(100); got != 0 {
		t.Errorf("Expected 0 with empty calibration, got %v", got)
	}
}

func TestTurnsForInductance(t *testing.T) {
	cal := DefaultConfig().Calibration

	tests := []struct {
		mH   float64
		want uint32
	}{
		{10, 602},
		{100, 1902},
		{1000, 6015},
		{2000, 8507},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := cal.TurnsForInductance(tt.mH); got != tt.want {
			t.Errorf("TurnsForInductance(%v): expected %d, got %d", tt.mH, tt.want, got)
		}
	}
}

func TestTurnsForInductanceMonotonic(t *testing.T) {
	cal := DefaultConfig().Calibration

	prev := uint32(0)
	for mH := 10; mH <= 2000; mH += 10 {
		got := cal.TurnsForInductance(float64(mH))
		if got == 0 {
			t.Fatalf("Expected positive turns for %d mH", mH)
		}
		if got < prev {
			t.Fatalf("Turns decreased at %d mH: %d < %d", mH, got, prev)
		}
		prev = got
	}
}

func TestPulsesToTurns(t *testing.T) {
	tests := []struct {
		per    uint32
		pulses uint32
		want   uint32
	}{
		{1, 602, 602},
		{0, 602, 602},
		{100, 2274, 22},
	}
	for _, tt := range tests {
		cal := Calibration{CopperPulsesPerTurn: tt.per}
		if got := cal.PulsesToTurns(tt.pulses); got != tt.want {
			t.Errorf("PulsesToTurns(%d) with %d per turn: expected %d, got %d", tt.pulses, tt.per, tt.want, got)
		}
	}
}
