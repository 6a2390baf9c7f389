// GPIO (General Purpose Input/Output) support
// Digital outputs remember their state and fall back to a default level on shutdown.
package core

// DigitalOut flags
const (
	DF_ON         = 1 << 0 // Current pin state (1=high, 0=low)
	DF_DEFAULT_ON = 1 << 1 // Default state for shutdown/power-loss
	DF_INVERT     = 1 << 2 // Pin is active-low
)

// DigitalOut represents a configured GPIO output pin
type DigitalOut struct {
	Pin   GPIOPin // Hardware pin
	Flags uint8   // State flags (DF_*)
}

// Global registry of digital outputs, used by ShutdownAllDigitalOut
var digitalOutputs []*DigitalOut

// NewDigitalOut configures pin as an output and drives it to its default level.
func NewDigitalOut(pin GPIOPin, defaultOn, invert bool) (*DigitalOut, error) {
	dout := &DigitalOut{Pin: pin}
	if defaultOn {
		dout.Flags |= DF_DEFAULT_ON
	}
	if invert {
		dout.Flags |= DF_INVERT
	}

	if err := MustGPIO().ConfigureOutput(pin); err != nil {
		return nil, err
	}
	if err := dout.Set(defaultOn); err != nil {
		return nil, err
	}

	digitalOutputs = append(digitalOutputs, dout)
	return dout, nil
}

// Set drives the logical state of the output
func (d *DigitalOut) Set(on bool) error {
	level := on
	if d.Flags&DF_INVERT != 0 {
		level = !level
	}
	if err := MustGPIO().SetPin(d.Pin, level); err != nil {
		return err
	}
	if on {
		d.Flags |= DF_ON
	} else {
		d.Flags &^= DF_ON
	}
	return nil
}

// IsOn reports the last logical state written
func (d *DigitalOut) IsOn() bool {
	return d.Flags&DF_ON != 0
}

// ShutdownDigitalOut returns a pin to its default state
func ShutdownDigitalOut(dout *DigitalOut) {
	// Errors are ignored here: there is nothing left to fall back to.
	_ = dout.Set(dout.Flags&DF_DEFAULT_ON != 0)
}

// ShutdownAllDigitalOut returns every registered output to its default state
func ShutdownAllDigitalOut() {
	for _, dout := range digitalOutputs {
		ShutdownDigitalOut(dout)
	}
}

// ResetDigitalOutputs forgets all registered outputs (for testing)
func ResetDigitalOutputs() {
	digitalOutputs = nil
}

// DigitalIn is a pulled-up input read as a logical level
type DigitalIn struct {
	Pin       GPIOPin
	ActiveLow bool
}

// NewDigitalIn configures pin as an input with pull-up
func NewDigitalIn(pin GPIOPin, activeLow bool) (*DigitalIn, error) {
	if err := MustGPIO().ConfigureInputPullUp(pin); err != nil {
		return nil, err
	}
	return &DigitalIn{Pin: pin, ActiveLow: activeLow}, nil
}

// Active reports whether the input is at its active level
func (d *DigitalIn) Active() bool {
	level := MustGPIO().ReadPin(d.Pin)
	if d.ActiveLow {
		return !level
	}
	return level
}

// Level returns the raw pin level
func (d *DigitalIn) Level() bool {
	return MustGPIO().ReadPin(d.Pin)
}
