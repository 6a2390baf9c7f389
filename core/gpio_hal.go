package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// EdgeHandler is invoked from interrupt context on a pin transition.
// Handlers must not block, allocate or touch the display.
type EdgeHandler func(pin GPIOPin)

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp configures a pin as a digital input with pull-up resistor
	ConfigureInputPullUp(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// ReadPin reads the current pin state
	ReadPin(pin GPIOPin) bool

	// OnFallingEdge registers handler for high-to-low transitions on an input pin
	OnFallingEdge(pin GPIOPin, handler EdgeHandler) error

	// OnAnyEdge registers handler for both transitions on an input pin
	OnAnyEdge(pin GPIOPin, handler EdgeHandler) error
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
