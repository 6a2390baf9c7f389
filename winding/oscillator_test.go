package winding

import (
	"testing"
	"time"
)

func TestOscillatorReversesAtBounds(t *testing.T) {
	act := &fakeActuator{}
	var slept []time.Duration
	osc := NewOscillator(act, func(d time.Duration) { slept = append(slept, d) })
	osc.Home(50)

	for i := 0; i < 80; i++ {
		osc.Step(50, 130, 15*time.Millisecond)
	}
	if osc.Angle() != 130 {
		t.Fatalf("Expected 130 after 80 steps, got %d", osc.Angle())
	}
	if osc.Rising() {
		t.Error("Expected direction flipped at max")
	}

	if got := osc.Step(50, 130, 15*time.Millisecond); got != 129 {
		t.Errorf("Expected 129 after reversal, got %d", got)
	}

	for i := 0; i < 79; i++ {
		osc.Step(50, 130, 15*time.Millisecond)
	}
	if osc.Angle() != 50 || !osc.Rising() {
		t.Errorf("Expected back at 50 rising, got %d rising=%v", osc.Angle(), osc.Rising())
	}

	if len(slept) != 160 {
		t.Errorf("Expected one sleep per step, got %d", len(slept))
	}
}

func TestOscillatorStaysInBounds(t *testing.T) {
	act := &fakeActuator{}
	osc := NewOscillator(act, func(time.Duration) {})
	osc.Home(50)

	for i := 0; i < 1000; i++ {
		osc.Step(50, 130, 0)
	}
	for i, a := range act.angles {
		if a < 50 || a > 130 {
			t.Fatalf("Angle %d out of bounds at command %d", a, i)
		}
	}
	// 1000 steps are six periods of 160 plus 40
	if osc.Angle() != 90 {
		t.Errorf("Expected 90 after 1000 steps, got %d", osc.Angle())
	}
}

func TestOscillatorSingleDegreeSteps(t *testing.T) {
	act := &fakeActuator{}
	osc := NewOscillator(act, func(time.Duration) {})
	osc.Home(50)

	for i := 0; i < 300; i++ {
		osc.Step(50, 130, 0)
	}
	for i := 1; i < len(act.angles); i++ {
		d := act.angles[i] - act.angles[i-1]
		if d != 1 && d != -1 {
			t.Fatalf("Expected one degree per step, got %d -> %d", act.angles[i-1], act.angles[i])
		}
	}
}

func TestOscillatorUnhomedStartsAtMin(t *testing.T) {
	act := &fakeActuator{}
	osc := NewOscillator(act, func(time.Duration) {})

	if got := osc.Step(50, 130, 0); got != 51 {
		t.Errorf("Expected 51 on first step, got %d", got)
	}
}

func TestOscillatorReentersChangedBounds(t *testing.T) {
	act := &fakeActuator{}
	osc := NewOscillator(act, func(time.Duration) {})
	osc.Home(120)

	got := osc.Step(60, 100, 0)
	if got != 99 || osc.Rising() {
		t.Errorf("Expected 99 falling after clamp to max, got %d rising=%v", got, osc.Rising())
	}

	got = osc.Step(110, 100, 0) // swapped bounds
	if got != 101 {
		t.Errorf("Expected 101 after clamp to swapped min, got %d", got)
	}
}

func TestOscillatorDegenerateRange(t *testing.T) {
	act := &fakeActuator{}
	osc := NewOscillator(act, func(time.Duration) {})
	osc.Home(90)

	for i := 0; i < 3; i++ {
		if got := osc.Step(90, 90, 0); got != 90 {
			t.Fatalf("Expected 90, got %d", got)
		}
	}
}
