package panel

import "winder/core"

// Selector picks an integer quantity with the encoder
type Selector struct {
	Title string
	Label string
	Unit  string
	Value int
	Min   int
	Max   int
	Step  int
}

// NewMetresSelector picks a thread length
func NewMetresSelector() *Selector {
	return &Selector{Title: "Thread manual", Label: "Metres: ", Value: 1, Min: 1, Max: 999, Step: 1}
}

// NewMilliHenriesSelector picks a coil inductance
func NewMilliHenriesSelector() *Selector {
	return &Selector{Title: "Copper manual", Label: "Value: ", Unit: " mH", Value: 100, Min: 10, Max: 2000, Step: 10}
}

// Apply moves the value one step and clamps it to [Min, Max]
func (s *Selector) Apply(d Direction) bool {
	if d == None {
		return false
	}
	v := s.Value + int(d)*s.Step
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	changed := v != s.Value
	s.Value = v
	return changed
}

// Lines renders the selector screen
func (s *Selector) Lines() []string {
	return []string{s.Title, s.Label + core.Itoa(s.Value) + s.Unit, "Press SW to start"}
}
