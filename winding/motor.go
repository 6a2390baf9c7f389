package winding

import "winder/core"

// Motor switches the winding motor
type Motor interface {
	SetMotorEnabled(on bool)
}

// MotorLine drives the motor driver's enable input. It defaults to off and
// returns to off on core.ShutdownAllDigitalOut.
type MotorLine struct {
	out *core.DigitalOut
}

// NewMotorLine configures pin as the enable output
func NewMotorLine(pin core.GPIOPin) (*MotorLine, error) {
	out, err := core.NewDigitalOut(pin, false, false)
	if err != nil {
		return nil, err
	}
	return &MotorLine{out: out}, nil
}

// SetMotorEnabled drives the enable line
func (m *MotorLine) SetMotorEnabled(on bool) {
	if err := m.out.Set(on); err != nil {
		core.DebugPrintln("[MOTOR] set failed: " + err.Error())
	}
}

// Enabled reports the last commanded state
func (m *MotorLine) Enabled() bool {
	return m.out.IsOn()
}
