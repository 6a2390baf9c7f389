package panel

import (
	"time"

	"winder/core"
	"winder/winding"
)

// DefaultPoll is the selection loop period
const DefaultPoll = 20 * time.Millisecond

// Encoder yields consumed detents
type Encoder interface {
	ReadRotationDirection() Direction
}

// Switch is the confirm input
type Switch interface {
	ConfirmPressed() bool
	Clear()
}

// Panel walks the operator through material, mode and quantity selection
type Panel struct {
	encoder Encoder
	sw      Switch
	display winding.Display
	sleep   func(time.Duration)
	poll    time.Duration

	main *Menu
}

// New creates a panel. sleep defaults to time.Sleep.
func New(encoder Encoder, sw Switch, display winding.Display, sleep func(time.Duration)) *Panel {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Panel{
		encoder: encoder,
		sw:      sw,
		display: display,
		sleep:   sleep,
		poll:    DefaultPoll,
		main:    NewMainMenu(),
	}
}

// SelectJob blocks until the operator has chosen a job. The confirming press
// is consumed before returning, so it cannot be read as a stop request.
func (p *Panel) SelectJob() winding.Job {
	p.sw.Clear()
	defer p.sw.Clear()

	for {
		material := p.choose(p.main)

		sub := NewSubMenu(material)
		item := p.choose(sub)
		if item == ItemBack {
			continue
		}

		mat := winding.Thread
		if material == ItemCopper {
			mat = winding.Copper
		}
		job := winding.Job{Mode: winding.Mode{Material: mat, Auto: item == ItemAuto}}

		if !job.Mode.Auto {
			if mat == winding.Thread {
				job.Metres = p.pick(NewMetresSelector())
			} else {
				job.MilliHenries = p.pick(NewMilliHenriesSelector())
			}
		}

		core.DebugAsync("[PANEL] selected " + job.Mode.String())
		return job
	}
}

// choose runs a menu until confirmed and returns the selected index
func (p *Panel) choose(m *Menu) int {
	p.show(m.Lines())
	for {
		if m.Move(p.encoder.ReadRotationDirection()) {
			p.show(m.Lines())
		}
		if p.sw.ConfirmPressed() {
			return m.Selected()
		}
		p.sleep(p.poll)
	}
}

// pick runs a selector until confirmed and returns its value
func (p *Panel) pick(s *Selector) int {
	p.show(s.Lines())
	for {
		if s.Apply(p.encoder.ReadRotationDirection()) {
			p.show(s.Lines())
		}
		if p.sw.ConfirmPressed() {
			return s.Value
		}
		p.sleep(p.poll)
	}
}

func (p *Panel) show(lines []string) {
	if err := winding.Render(p.display, lines...); err != nil {
		core.DebugAsync("[PANEL] display: " + err.Error())
	}
}
