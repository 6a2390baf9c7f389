package winding

import (
	"errors"
	"time"

	"winder/core"
)

// StopInput is the operator stop button
type StopInput interface {
	// StopPressed reports (and consumes) a pending stop request
	StopPressed() bool
}

// Deps are the collaborators of a Controller. Observer and Sleep are optional.
type Deps struct {
	Counter  Counter
	Actuator Actuator
	Motor    Motor
	Stop     StopInput
	Display  Display
	Tension  TensionSensor
	Observer Observer
	Sleep    func(time.Duration)
}

// Controller runs winding jobs. One controller serves all four modes.
type Controller struct {
	cfg      Config
	counter  Counter
	osc      *Oscillator
	tension  *TensionMonitor
	motor    Motor
	stop     StopInput
	display  Display
	observer Observer
	sleep    func(time.Duration)
}

// NewController validates cfg and wires the collaborators
func NewController(cfg Config, d Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if d.Counter == nil || d.Actuator == nil || d.Motor == nil || d.Stop == nil || d.Display == nil || d.Tension == nil {
		return nil, errors.New("winding: missing controller dependency")
	}

	sleep := d.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	observer := d.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Controller{
		cfg:      cfg,
		counter:  d.Counter,
		osc:      NewOscillator(d.Actuator, sleep),
		tension:  NewTensionMonitor(d.Tension, cfg.TensionLimit),
		motor:    d.Motor,
		stop:     d.Stop,
		display:  d.Display,
		observer: observer,
		sleep:    sleep,
	}, nil
}

// Config returns the controller configuration
func (c *Controller) Config() Config {
	return c.cfg
}

// Run executes one job to its terminal outcome. The motor is off when Run returns.
// An invalid job is rejected before any output is touched.
func (c *Controller) Run(job Job) (Result, error) {
	if err := job.Validate(); err != nil {
		core.DebugAsync("[WIND] rejected: " + err.Error())
		return Result{}, err
	}
	plan := c.cfg.Plan(job)
	sweep := c.cfg.Sweep
	mode := job.Mode.Code()

	c.counter.Reset()
	c.tension.Reset()
	c.osc.Home(sweep.MinAngle)
	c.render(introLines(plan)...)
	c.observer.RunStarted(plan)
	core.RecordEvent(core.EvtRunStart, mode, 0, plan.Target)
	core.DebugAsync("[WIND] start " + job.Mode.String() + " target=" + core.Utoa(plan.Target))

	c.motor.SetMotorEnabled(true)

	var lastShown uint32
	for {
		c.osc.Step(sweep.MinAngle, sweep.MaxAngle, sweep.StepDelay)

		if reading, fault := c.tension.Check(); fault {
			c.motor.SetMotorEnabled(false)
			r := c.result(plan, AbortedByTension)
			r.Tension = reading
			core.RecordEvent(core.EvtTension, mode, r.Pulses, uint32(reading))
			return c.finish(plan, r), nil
		}

		if c.stop.StopPressed() {
			c.motor.SetMotorEnabled(false)
			r := c.result(plan, AbortedByOperator)
			core.RecordEvent(core.EvtStopped, mode, r.Pulses, r.Progress)
			return c.finish(plan, r), nil
		}

		s := c.status(plan, c.counter.Read())
		if plan.HasTarget && s.Progress >= plan.Target {
			c.motor.SetMotorEnabled(false)
			r := Result{Status: s, Outcome: Completed}
			core.RecordEvent(core.EvtCompleted, mode, r.Pulses, r.Progress)
			return c.finish(plan, r), nil
		}

		if s.Progress-lastShown >= plan.DisplayEvery {
			lastShown = s.Progress
			c.render(progressLines(plan, s)...)
			c.observer.Progress(s)
			core.RecordEvent(core.EvtProgress, mode, s.Pulses, s.Progress)
		}
	}
}

func (c *Controller) status(p Plan, pulses uint32) Status {
	s := Status{Mode: p.Job.Mode, Pulses: pulses}
	if p.Job.Mode.Material == Copper {
		s.Progress = c.cfg.Calibration.PulsesToTurns(pulses)
	} else {
		s.Progress = pulses
		s.Metres = c.cfg.Calibration.PulsesToMetres(float64(pulses))
	}
	return s
}

// result snapshots the counter after the motor has been switched off
func (c *Controller) result(p Plan, o Outcome) Result {
	return Result{Status: c.status(p, c.counter.Read()), Outcome: o}
}

func (c *Controller) finish(p Plan, r Result) Result {
	c.render(finalLines(p, r)...)
	c.observer.RunFinished(r)
	core.DebugAsync("[WIND] " + r.Outcome.String() + " pulses=" + core.Utoa(r.Pulses))
	c.sleep(c.cfg.FinalHold)
	return r
}

func (c *Controller) render(lines ...string) {
	if err := Render(c.display, lines...); err != nil {
		core.RecordEvent(core.EvtDisplayFail, 0, c.counter.Read(), 0)
		core.DebugAsync("[WIND] display: " + err.Error())
	}
}
