package winding

import (
	"errors"
	"time"

	"winder/core"
)

// fakeMotor records enable transitions and the pulse count at each switch-off
type fakeMotor struct {
	on       bool
	history  []bool
	counter  Counter
	offAtCnt []uint32
}

func (m *fakeMotor) SetMotorEnabled(on bool) {
	m.on = on
	m.history = append(m.history, on)
	if !on && m.counter != nil {
		m.offAtCnt = append(m.offAtCnt, m.counter.Read())
	}
}

// fakeActuator records every commanded angle
type fakeActuator struct {
	angles []int
}

func (a *fakeActuator) SetSweepAngle(angle int) {
	a.angles = append(a.angles, angle)
}

// fakeStop presses after a number of polls; 0 never presses
type fakeStop struct {
	pressOnPoll int
	polls       int
}

func (s *fakeStop) StopPressed() bool {
	s.polls++
	return s.pressOnPoll > 0 && s.polls >= s.pressOnPoll
}

// fakeDisplay keeps every presented frame
type fakeDisplay struct {
	pending    []string
	frames     [][]string
	presentErr error
}

func (d *fakeDisplay) Clear() {
	d.pending = nil
}

func (d *fakeDisplay) DrawLine(x, y int16, text string) {
	d.pending = append(d.pending, text)
}

func (d *fakeDisplay) Present() error {
	d.frames = append(d.frames, d.pending)
	return d.presentErr
}

func (d *fakeDisplay) last() []string {
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// scriptedTension returns readings in order, then repeats the last one
type scriptedTension struct {
	readings []int32
	reads    int
}

func (s *scriptedTension) ReadTension() int32 {
	s.reads++
	if len(s.readings) == 0 {
		return 0
	}
	if s.reads > len(s.readings) {
		return s.readings[len(s.readings)-1]
	}
	return s.readings[s.reads-1]
}

// fakeMachine feeds the counter while the motor runs: every step delay
// delivers pulsesPerStep edges, up to limit (0 = unlimited).
type fakeMachine struct {
	counter       *PulseCounter
	motor         *fakeMotor
	actuator      *fakeActuator
	stop          *fakeStop
	display       *fakeDisplay
	tension       *scriptedTension
	pulsesPerStep uint32
	limit         uint32
	sleeps        []time.Duration
}

func newFakeMachine(pulsesPerStep, limit uint32) *fakeMachine {
	counter := &PulseCounter{}
	return &fakeMachine{
		counter:       counter,
		motor:         &fakeMotor{counter: counter},
		actuator:      &fakeActuator{},
		stop:          &fakeStop{},
		display:       &fakeDisplay{},
		tension:       &scriptedTension{},
		pulsesPerStep: pulsesPerStep,
		limit:         limit,
	}
}

func (m *fakeMachine) sleep(d time.Duration) {
	m.sleeps = append(m.sleeps, d)
	if !m.motor.on {
		return
	}
	for i := uint32(0); i < m.pulsesPerStep; i++ {
		if m.limit > 0 && m.counter.Read() >= m.limit {
			return
		}
		m.counter.OnEdge()
	}
}

func (m *fakeMachine) deps() Deps {
	return Deps{
		Counter:  m.counter,
		Actuator: m.actuator,
		Motor:    m.motor,
		Stop:     m.stop,
		Display:  m.display,
		Tension:  m.tension,
		Sleep:    m.sleep,
	}
}

// recordingObserver keeps every notification
type recordingObserver struct {
	started  []Plan
	progress []Status
	finished []Result
}

func (o *recordingObserver) RunStarted(p Plan)    { o.started = append(o.started, p) }
func (o *recordingObserver) Progress(s Status)    { o.progress = append(o.progress, s) }
func (o *recordingObserver) RunFinished(r Result) { o.finished = append(o.finished, r) }

// fakeGPIO is a minimal core.GPIODriver
type fakeGPIO struct {
	levels  map[core.GPIOPin]bool
	falling map[core.GPIOPin]core.EdgeHandler
	failSet bool
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:  make(map[core.GPIOPin]bool),
		falling: make(map[core.GPIOPin]core.EdgeHandler),
	}
}

func (g *fakeGPIO) ConfigureOutput(pin core.GPIOPin) error      { return nil }
func (g *fakeGPIO) ConfigureInputPullUp(pin core.GPIOPin) error { g.levels[pin] = true; return nil }
func (g *fakeGPIO) ReadPin(pin core.GPIOPin) bool               { return g.levels[pin] }

func (g *fakeGPIO) SetPin(pin core.GPIOPin, value bool) error {
	if g.failSet {
		return errors.New("bus fault")
	}
	g.levels[pin] = value
	return nil
}

func (g *fakeGPIO) OnFallingEdge(pin core.GPIOPin, h core.EdgeHandler) error {
	g.falling[pin] = h
	return nil
}

func (g *fakeGPIO) OnAnyEdge(pin core.GPIOPin, h core.EdgeHandler) error {
	return nil
}

// fakeADC returns a fixed raw value or an error
type fakeADC struct {
	value core.ADCValue
	err   error
}

func (a *fakeADC) ConfigureChannel(ch core.ADCChannelID) error { return nil }

func (a *fakeADC) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	return a.value, a.err
}
