// Package sim runs the winding controller against a simulated machine.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"winder/host/logger"
	"winder/winding"
)

// Options shape the simulated machine
type Options struct {
	// Encoder pulse rate while the motor runs
	PulseRateHz int

	// Pulse count after which tension reads over the limit, 0 never
	TensionFaultAfter uint32

	// Pulse count after which the operator presses stop, 0 never
	StopAfter uint32

	// Fast skips real time: each step delay delivers its pulses at once
	Fast bool
}

// DefaultOptions runs the encoder at 1 kHz in real time
func DefaultOptions() Options {
	return Options{PulseRateHz: 1000}
}

// Simulator owns one simulated machine and its controller
type Simulator struct {
	cfg  winding.Config
	opts Options
	log  *logger.Logger

	counter *winding.PulseCounter
	motor   *Motor
	servo   *Servo
	display *Display
	stop    *Stop

	telemetry *winding.TelemetryObserver
	ctrl      *winding.Controller
}

// New builds the machine. telemetry may be nil.
func New(cfg winding.Config, opts Options, log *logger.Logger, telemetry io.Writer) (*Simulator, error) {
	if opts.PulseRateHz <= 0 {
		return nil, errors.New("sim: pulse rate must be positive")
	}

	counter := &winding.PulseCounter{}
	s := &Simulator{
		cfg:     cfg,
		opts:    opts,
		log:     log,
		counter: counter,
		motor:   &Motor{log: log},
		servo:   &Servo{log: log},
		display: &Display{log: log},
		stop:    &Stop{counter: counter, after: opts.StopAfter},
	}

	observers := winding.Observers{&logObserver{log: log, cal: cfg.Calibration}}
	if telemetry != nil {
		s.telemetry = winding.NewTelemetryObserver(telemetry)
		observers = append(observers, s.telemetry)
	}

	sleep := time.Sleep
	if opts.Fast {
		sleep = s.fastSleep
	}

	ctrl, err := winding.NewController(cfg, winding.Deps{
		Counter:  counter,
		Actuator: s.servo,
		Motor:    s.motor,
		Stop:     s.stop,
		Display:  s.display,
		Tension:  &Tension{counter: counter, after: opts.TensionFaultAfter, high: cfg.TensionLimit + 1},
		Observer: observers,
		Sleep:    sleep,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	s.ctrl = ctrl
	return s, nil
}

// Run winds one job. Cancelling ctx acts as an operator stop.
func (s *Simulator) Run(ctx context.Context, job winding.Job) (winding.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.stop.ctx = runCtx

	done := make(chan struct{})
	if !s.opts.Fast {
		go func() {
			defer close(done)
			s.generate(runCtx)
		}()
	} else {
		close(done)
	}

	r, err := s.ctrl.Run(job)
	cancel()
	<-done
	if err != nil {
		return winding.Result{}, err
	}

	if s.telemetry != nil && s.telemetry.Err() != nil {
		s.log.Warnw("telemetry output failed", "err", s.telemetry.Err())
	}
	return r, nil
}

// PulsesPerStep is the number of encoder pulses one step delay is worth
func (s *Simulator) PulsesPerStep() uint32 {
	n := uint32(float64(s.opts.PulseRateHz)*s.cfg.Sweep.StepDelay.Seconds() + 0.5)
	if n == 0 {
		n = 1
	}
	return n
}

// Motor returns the simulated motor line
func (s *Simulator) Motor() *Motor { return s.motor }

// Servo returns the simulated distribution servo
func (s *Simulator) Servo() *Servo { return s.servo }

// Display returns the simulated OLED
func (s *Simulator) Display() *Display { return s.display }

// Pulses returns the current encoder count
func (s *Simulator) Pulses() uint32 { return s.counter.Read() }

func (s *Simulator) fastSleep(time.Duration) {
	if !s.motor.Enabled() {
		return
	}
	for i := s.PulsesPerStep(); i > 0; i-- {
		s.counter.OnEdge()
	}
}

// generate feeds the counter like the encoder interrupt while the motor runs
func (s *Simulator) generate(ctx context.Context) {
	const tick = time.Millisecond
	perTick := float64(s.opts.PulseRateHz) * tick.Seconds()

	t := time.NewTicker(tick)
	defer t.Stop()

	var acc float64
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !s.motor.Enabled() {
				acc = 0
				continue
			}
			acc += perTick
			for acc >= 1 {
				s.counter.OnEdge()
				acc--
			}
		}
	}
}
