package winding

import (
	"sync/atomic"

	"winder/core"
)

// Counter is the pulse source seen by the controller.
type Counter interface {
	Reset()
	Read() uint32
}

// PulseCounter counts encoder falling edges.
// OnEdge is the only writer and runs in interrupt context. Reset and Read
// run in the control loop.
type PulseCounter struct {
	count atomic.Uint32
}

// Reset zeroes the count
func (c *PulseCounter) Reset() {
	c.count.Store(0)
}

// OnEdge records one edge
func (c *PulseCounter) OnEdge() {
	c.count.Add(1)
}

// Read returns the current count
func (c *PulseCounter) Read() uint32 {
	return c.count.Load()
}

// Attach configures pin as a pulled-up input and counts its falling edges.
func (c *PulseCounter) Attach(pin core.GPIOPin) error {
	gpio := core.MustGPIO()
	if err := gpio.ConfigureInputPullUp(pin); err != nil {
		return err
	}
	return gpio.OnFallingEdge(pin, func(core.GPIOPin) {
		c.OnEdge()
	})
}
