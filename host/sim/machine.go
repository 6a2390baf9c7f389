package sim

import (
	"context"
	"strings"
	"sync/atomic"

	"winder/host/logger"
	"winder/winding"
)

// Motor is a logging motor enable line
type Motor struct {
	log      *logger.Logger
	on       atomic.Bool
	switches atomic.Uint32
}

func (m *Motor) SetMotorEnabled(on bool) {
	if m.on.Swap(on) != on {
		m.switches.Add(1)
		m.log.Debugw("motor", "enabled", on)
	}
}

// Enabled reports the line state; safe from any goroutine
func (m *Motor) Enabled() bool {
	return m.on.Load()
}

// Switches counts state changes
func (m *Motor) Switches() uint32 {
	return m.switches.Load()
}

// Servo records the arm position and logs sweep reversals
type Servo struct {
	log      *logger.Logger
	angle    int
	rising   bool
	reversed int
	placed   bool
}

func (s *Servo) SetSweepAngle(angle int) {
	if s.placed && angle != s.angle {
		rising := angle > s.angle
		if rising != s.rising {
			s.reversed++
			s.log.Debugw("sweep reversed", "angle", s.angle)
		}
		s.rising = rising
	}
	s.angle = angle
	s.placed = true
}

// Angle returns the last commanded angle
func (s *Servo) Angle() int {
	return s.angle
}

// Reversals counts direction changes of the arm
func (s *Servo) Reversals() int {
	return s.reversed
}

// Display logs every presented frame
type Display struct {
	log     *logger.Logger
	pending []string
	frames  [][]string
}

func (d *Display) Clear() {
	d.pending = nil
}

func (d *Display) DrawLine(x, y int16, text string) {
	d.pending = append(d.pending, text)
}

func (d *Display) Present() error {
	d.frames = append(d.frames, d.pending)
	d.log.Infow("display", "text", strings.Join(d.pending, " | "))
	return nil
}

// Frames returns every presented frame
func (d *Display) Frames() [][]string {
	return d.frames
}

// Tension reads over the limit once the counter passes a threshold
type Tension struct {
	counter winding.Counter
	after   uint32
	high    int32
}

func (t *Tension) ReadTension() int32 {
	if t.after > 0 && t.counter.Read() >= t.after {
		return t.high
	}
	return 0
}

// Stop asserts after a pulse count or when the run context ends
type Stop struct {
	counter winding.Counter
	after   uint32
	ctx     context.Context
}

func (s *Stop) StopPressed() bool {
	if s.ctx != nil && s.ctx.Err() != nil {
		return true
	}
	return s.after > 0 && s.counter.Read() >= s.after
}
