package winding

import "time"

// Actuator positions the distribution arm.
type Actuator interface {
	SetSweepAngle(angle int)
}

// Sweep bounds the distribution arm travel
type Sweep struct {
	MinAngle  int           // Lower bound in degrees
	MaxAngle  int           // Upper bound in degrees
	StepDelay time.Duration // Pause after each one-degree step
}

// Oscillator moves the distribution arm back and forth one degree per Step.
// Callers check their stop conditions between steps.
type Oscillator struct {
	actuator Actuator
	sleep    func(time.Duration)

	angle  int
	rising bool
	placed bool
}

// NewOscillator creates an oscillator. sleep defaults to time.Sleep.
func NewOscillator(actuator Actuator, sleep func(time.Duration)) *Oscillator {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Oscillator{
		actuator: actuator,
		sleep:    sleep,
		rising:   true,
	}
}

// Home moves the arm to angle and resumes sweeping upwards from there
func (o *Oscillator) Home(angle int) {
	o.angle = angle
	o.rising = true
	o.placed = true
	o.actuator.SetSweepAngle(angle)
}

// Step advances one degree inside [min, max], flipping direction at each
// bound, commands the actuator and sleeps for delay. Returns the new angle.
func (o *Oscillator) Step(min, max int, delay time.Duration) int {
	if min > max {
		min, max = max, min
	}

	// Re-enter the bounds if they changed under us
	if !o.placed || o.angle < min {
		o.angle = min
		o.rising = true
		o.placed = true
	} else if o.angle > max {
		o.angle = max
		o.rising = false
	}

	switch {
	case min == max:
		o.angle = min
	case o.rising:
		o.angle++
		if o.angle >= max {
			o.angle = max
			o.rising = false
		}
	default:
		o.angle--
		if o.angle <= min {
			o.angle = min
			o.rising = true
		}
	}

	o.actuator.SetSweepAngle(o.angle)
	o.sleep(delay)
	return o.angle
}

// Angle returns the last commanded angle
func (o *Oscillator) Angle() int {
	return o.angle
}

// Rising reports whether the next step increases the angle
func (o *Oscillator) Rising() bool {
	return o.rising
}
