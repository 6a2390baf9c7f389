package sim

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"winder/host/logger"
	"winder/protocol"
	"winder/winding"
)

func fastSim(t *testing.T, opts Options, telemetry io.Writer) *Simulator {
	t.Helper()
	opts.Fast = true
	if opts.PulseRateHz == 0 {
		opts.PulseRateHz = 1000
	}
	s, err := New(winding.DefaultConfig(), opts, logger.Nop(), telemetry)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestFastThreadManual(t *testing.T) {
	s := fastSim(t, Options{}, nil)
	if s.PulsesPerStep() != 15 {
		t.Fatalf("Expected 15 pulses per 15 ms step at 1 kHz, got %d", s.PulsesPerStep())
	}

	r, err := s.Run(context.Background(), winding.Job{Mode: winding.ThreadManual, Metres: 1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if r.Outcome != winding.Completed {
		t.Errorf("Expected completed, got %v", r.Outcome)
	}
	if r.Pulses < 2274 || r.Pulses >= 2274+15 {
		t.Errorf("Expected completion within one step of 2274, got %d", r.Pulses)
	}
	if s.Motor().Enabled() {
		t.Error("Expected motor off after run")
	}
	if s.Servo().Reversals() == 0 {
		t.Error("Expected the arm to sweep back and forth")
	}
	frames := s.Display().Frames()
	if last := frames[len(frames)-1]; last[0] != "Winding complete!" {
		t.Errorf("Expected final screen, got %q", last)
	}
}

func TestFastOperatorStop(t *testing.T) {
	s := fastSim(t, Options{StopAfter: 300}, nil)
	r, _ := s.Run(context.Background(), winding.Job{Mode: winding.ThreadAuto})

	if r.Outcome != winding.AbortedByOperator {
		t.Errorf("Expected operator stop, got %v", r.Outcome)
	}
	if r.Pulses < 300 || r.Pulses >= 315 {
		t.Errorf("Expected stop within one step of 300, got %d", r.Pulses)
	}
}

func TestFastTensionFault(t *testing.T) {
	var stream bytes.Buffer
	s := fastSim(t, Options{TensionFaultAfter: 100}, &stream)
	r, _ := s.Run(context.Background(), winding.Job{Mode: winding.CopperAuto})

	if r.Outcome != winding.AbortedByTension {
		t.Fatalf("Expected tension abort, got %v", r.Outcome)
	}
	if r.Tension <= winding.DefaultTensionLimit {
		t.Errorf("Expected reading above the limit, got %d", r.Tension)
	}

	var got []protocol.Message
	d := protocol.NewDecoder(func(_ uint8, payload []byte) error {
		m, err := protocol.DecodeMessage(payload)
		if err == nil {
			got = append(got, m)
		}
		return err
	})
	d.Receive(protocol.NewSliceInputBuffer(stream.Bytes()))

	if len(got) < 3 {
		t.Fatalf("Expected at least 3 telemetry messages, got %d", len(got))
	}
	if _, ok := got[len(got)-1].(protocol.TensionSample); !ok {
		t.Errorf("Expected TensionSample last, got %T", got[len(got)-1])
	}
}

func TestCancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := fastSim(t, Options{}, nil)
	r, _ := s.Run(ctx, winding.Job{Mode: winding.ThreadAuto})
	if r.Outcome != winding.AbortedByOperator {
		t.Errorf("Expected cancellation to stop the run, got %v", r.Outcome)
	}
}

func TestRunRejectsInvalidJob(t *testing.T) {
	s := fastSim(t, Options{}, nil)
	if _, err := s.Run(context.Background(), winding.Job{Mode: winding.CopperManual}); err == nil {
		t.Error("Expected error for copper-manual without inductance")
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New(winding.DefaultConfig(), Options{}, logger.Nop(), nil); err == nil {
		t.Error("Expected error for zero pulse rate")
	}

	cfg := winding.DefaultConfig()
	cfg.Sweep.MinAngle = 140
	if _, err := New(cfg, DefaultOptions(), logger.Nop(), nil); err == nil {
		t.Error("Expected config validation error")
	}
}

func TestRealTimePulseGenerator(t *testing.T) {
	cfg := winding.DefaultConfig()
	cfg.Sweep.StepDelay = time.Millisecond
	cfg.FinalHold = 0

	opts := Options{PulseRateHz: 20000, StopAfter: 200}
	s, err := New(cfg, opts, logger.Nop(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	r, _ := s.Run(context.Background(), winding.Job{Mode: winding.ThreadAuto})
	if r.Outcome != winding.AbortedByOperator || r.Pulses < 200 {
		t.Errorf("Expected stop after 200 pulses, got %v at %d", r.Outcome, r.Pulses)
	}

	settled := s.Pulses()
	time.Sleep(5 * time.Millisecond)
	if s.Pulses() != settled {
		t.Error("Expected no pulses after the generator stopped")
	}
}
