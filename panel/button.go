package panel

import (
	"sync/atomic"
	"time"

	"winder/core"
)

// DefaultSwitchDebounce is the dead time after an accepted press
const DefaultSwitchDebounce = 200 * time.Millisecond

// Button latches debounced presses of an active-low push switch.
// The latch is consumed by whichever reader sees it first.
type Button struct {
	now      func() time.Time
	debounce time.Duration
	deadline time.Time
	latched  atomic.Bool
}

// NewButton creates a switch latch. now defaults to time.Now.
func NewButton(debounce time.Duration, now func() time.Time) *Button {
	if now == nil {
		now = time.Now
	}
	return &Button{now: now, debounce: debounce}
}

// Attach configures pin with pull-up and latches on falling edges
func (b *Button) Attach(pin core.GPIOPin) error {
	if _, err := core.NewDigitalIn(pin, true); err != nil {
		return err
	}
	return core.MustGPIO().OnFallingEdge(pin, func(core.GPIOPin) {
		b.Press()
	})
}

// Press registers a falling edge
func (b *Button) Press() {
	now := b.now()
	if now.Before(b.deadline) {
		return
	}
	b.deadline = now.Add(b.debounce)
	b.latched.Store(true)
}

// ConfirmPressed consumes a pending press during selection
func (b *Button) ConfirmPressed() bool {
	return b.latched.Swap(false)
}

// StopPressed consumes a pending press during a run
func (b *Button) StopPressed() bool {
	return b.latched.Swap(false)
}

// Clear drops a pending press
func (b *Button) Clear() {
	b.latched.Store(false)
}
