//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/servo"

	"winder/core"
)

// pwmPeripheral abstracts over TinyGo's unexported *pwmGroup type.
// It has the same method set as servo.PWM.
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// pwmSlice returns the PWM slice driving pin.
// GPIO N belongs to slice (N >> 1) & 7.
func pwmSlice(pin machine.Pin) pwmPeripheral {
	switch (uint8(pin) >> 1) & 0x7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// sweepServo positions the distribution arm. The driver maps 0..180 degrees
// onto a 1..2 ms pulse at 50 Hz.
type sweepServo struct {
	s servo.Servo
}

func newSweepServo(pin machine.Pin) (*sweepServo, error) {
	var pwm servo.PWM = pwmSlice(pin)
	s, err := servo.New(pwm, pin)
	if err != nil {
		return nil, err
	}
	return &sweepServo{s: s}, nil
}

// SetSweepAngle implements winding.Actuator
func (a *sweepServo) SetSweepAngle(angle int) {
	if err := a.s.SetAngle(angle); err != nil {
		core.DebugAsync("[SERVO] angle " + core.Itoa(angle) + ": " + err.Error())
	}
}
