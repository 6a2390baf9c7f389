//go:build rp2040

package main

import (
	"machine"
	"time"

	"winder/core"
	"winder/panel"
	"winder/winding"
)

// machineParts are the wired peripherals of one winder
type machineParts struct {
	controller *winding.Controller
	panel      *panel.Panel
	rotary     *panel.Rotary
}

func main() {
	// Clear any watchdog state left from a previous reset
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	if err := initDebugUART(); err == nil {
		core.SetDebugWriter(debugWrite)
		core.SetDebugEnabled(true)
		core.InitAsyncDebug()
	}

	core.SetGPIODriver(NewRPGPIODriver())
	if useAnalogTension {
		core.SetADCDriver(NewRPAdcDriver())
	}

	parts, err := setup(winding.DefaultConfig())
	if err != nil {
		core.DebugPrintln("[INIT] " + err.Error())
		blinkForever()
	}
	core.DebugPrintln("[INIT] winder ready")

	for {
		parts.runOnce()
	}
}

func setup(cfg winding.Config) (*machineParts, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	motor, err := winding.NewMotorLine(core.GPIOPin(pinMotorEnable))
	if err != nil {
		return nil, err
	}
	arm, err := newSweepServo(pinServo)
	if err != nil {
		return nil, err
	}
	display, err := newOLEDDisplay(machine.I2C0)
	if err != nil {
		return nil, err
	}
	counter, err := newCounter()
	if err != nil {
		return nil, err
	}
	tension, err := newTensionSensor()
	if err != nil {
		return nil, err
	}

	rotary := panel.NewRotary(panel.DefaultRotaryDebounce, nil)
	if err := rotary.Attach(core.GPIOPin(pinRotaryCLK), core.GPIOPin(pinRotaryDT)); err != nil {
		return nil, err
	}
	button := panel.NewButton(panel.DefaultSwitchDebounce, nil)
	if err := button.Attach(core.GPIOPin(pinRotarySwitch)); err != nil {
		return nil, err
	}

	deps := winding.Deps{
		Counter:  counter,
		Actuator: arm,
		Motor:    motor,
		Stop:     button,
		Display:  display,
		Tension:  tension,
	}
	if link, err := newUSBLink(); err == nil {
		deps.Observer = winding.NewTelemetryObserver(link)
	} else {
		core.DebugPrintln("[INIT] usb: " + err.Error())
	}

	controller, err := winding.NewController(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &machineParts{
		controller: controller,
		panel:      panel.New(rotary, button, display, nil),
		rotary:     rotary,
	}, nil
}

func newCounter() (winding.Counter, error) {
	if usePIOCounter {
		c, err := newPIOCounter(pinEncoder)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	c := &winding.PulseCounter{}
	if err := c.Attach(core.GPIOPin(pinEncoder)); err != nil {
		return nil, err
	}
	return c, nil
}

func newTensionSensor() (winding.TensionSensor, error) {
	if !useAnalogTension {
		return winding.FixedTension(0), nil
	}
	in, err := core.NewAnalogIn(tensionChannel, tensionSamples)
	if err != nil {
		return nil, err
	}
	in.SetRange(tensionRailLow, tensionRailHigh, tensionRailReads)
	return winding.NewAnalogTension(in, tensionOffset, tensionScale), nil
}

// runOnce selects and runs one job. A panic drops every output to its safe
// level and returns to the menu.
func (m *machineParts) runOnce() {
	defer func() {
		if r := recover(); r != nil {
			core.ShutdownAllDigitalOut()
			core.DebugPrintln("[PANIC] run aborted")
			core.DumpEvents()
		}
	}()

	m.rotary.Flush()
	job := m.panel.SelectJob()
	if _, err := m.controller.Run(job); err != nil {
		core.DebugPrintln("[RUN] " + err.Error())
	}
	m.rotary.Flush()
	core.DumpEvents()
}

// blinkForever flashes the LED rapidly to signal a setup failure
func blinkForever() {
	core.ShutdownAllDigitalOut()
	led := pinLED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
