package panel

import (
	"time"

	"winder/core"
)

// step is one scripted operator action
type step struct {
	turn  Direction
	press bool
}

var (
	fwd   = step{turn: Forward}
	back  = step{turn: Backward}
	press = step{press: true}
)

// scriptedInput replays operator actions in order
type scriptedInput struct {
	steps   []step
	cleared int
}

func (s *scriptedInput) ReadRotationDirection() Direction {
	if len(s.steps) > 0 && s.steps[0].turn != None {
		d := s.steps[0].turn
		s.steps = s.steps[1:]
		return d
	}
	return None
}

func (s *scriptedInput) ConfirmPressed() bool {
	if len(s.steps) > 0 && s.steps[0].press {
		s.steps = s.steps[1:]
		return true
	}
	return false
}

func (s *scriptedInput) Clear() {
	s.cleared++
}

// screen records every presented frame
type screen struct {
	pending []string
	frames  [][]string
}

func (d *screen) Clear()                        { d.pending = nil }
func (d *screen) DrawLine(x, y int16, s string) { d.pending = append(d.pending, s) }
func (d *screen) Present() error                { d.frames = append(d.frames, d.pending); return nil }

func (d *screen) last() []string {
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// pollLimit stops a runaway selection loop
func pollLimit(n int) func(time.Duration) {
	polls := 0
	return func(time.Duration) {
		polls++
		if polls > n {
			panic("selection loop did not finish")
		}
	}
}

// clock is a manually advanced time source
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

// mockGPIO keeps pin levels and registered edge handlers
type mockGPIO struct {
	levels  map[core.GPIOPin]bool
	falling map[core.GPIOPin]core.EdgeHandler
	anyEdge map[core.GPIOPin]core.EdgeHandler
}

func newMockGPIO() *mockGPIO {
	return &mockGPIO{
		levels:  make(map[core.GPIOPin]bool),
		falling: make(map[core.GPIOPin]core.EdgeHandler),
		anyEdge: make(map[core.GPIOPin]core.EdgeHandler),
	}
}

func (g *mockGPIO) ConfigureOutput(pin core.GPIOPin) error      { return nil }
func (g *mockGPIO) ConfigureInputPullUp(pin core.GPIOPin) error { g.levels[pin] = true; return nil }
func (g *mockGPIO) SetPin(pin core.GPIOPin, v bool) error       { g.levels[pin] = v; return nil }
func (g *mockGPIO) ReadPin(pin core.GPIOPin) bool               { return g.levels[pin] }

func (g *mockGPIO) OnFallingEdge(pin core.GPIOPin, h core.EdgeHandler) error {
	g.falling[pin] = h
	return nil
}

func (g *mockGPIO) OnAnyEdge(pin core.GPIOPin, h core.EdgeHandler) error {
	g.anyEdge[pin] = h
	return nil
}
