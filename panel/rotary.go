package panel

import (
	"sync/atomic"
	"time"

	"winder/core"
)

// Direction of one encoder detent
type Direction int8

const (
	None     Direction = 0
	Forward  Direction = 1
	Backward Direction = -1
)

// String returns a readable name
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// DefaultRotaryDebounce is the dead time after an accepted CLK transition
const DefaultRotaryDebounce = 2 * time.Millisecond

// Rotary decodes a CLK/DT quadrature encoder.
// Edge runs in interrupt context; ReadRotationDirection runs in the main loop.
type Rotary struct {
	now      func() time.Time
	debounce time.Duration

	// Owned by the edge handler
	lastCLK  bool
	deadline time.Time

	// Net detents not yet consumed, positive is forward
	pending atomic.Int32

	clk *core.DigitalIn
	dt  *core.DigitalIn
}

// NewRotary creates a decoder. now defaults to time.Now.
func NewRotary(debounce time.Duration, now func() time.Time) *Rotary {
	if now == nil {
		now = time.Now
	}
	return &Rotary{now: now, debounce: debounce, lastCLK: true}
}

// Attach configures both encoder pins with pull-ups and decodes on every CLK edge
func (r *Rotary) Attach(clkPin, dtPin core.GPIOPin) error {
	clk, err := core.NewDigitalIn(clkPin, false)
	if err != nil {
		return err
	}
	dt, err := core.NewDigitalIn(dtPin, false)
	if err != nil {
		return err
	}
	r.clk, r.dt = clk, dt
	r.lastCLK = clk.Level()

	return core.MustGPIO().OnAnyEdge(clkPin, func(core.GPIOPin) {
		r.Edge(r.clk.Level(), r.dt.Level())
	})
}

// Edge feeds the current CLK and DT levels into the decoder
func (r *Rotary) Edge(clk, dt bool) {
	if clk == r.lastCLK {
		return
	}
	now := r.now()
	if now.Before(r.deadline) {
		return
	}
	r.lastCLK = clk
	r.deadline = now.Add(r.debounce)

	if dt != clk {
		r.pending.Add(1)
	} else {
		r.pending.Add(-1)
	}
}

// ReadRotationDirection consumes one pending detent
func (r *Rotary) ReadRotationDirection() Direction {
	for {
		p := r.pending.Load()
		switch {
		case p > 0:
			if r.pending.CompareAndSwap(p, p-1) {
				return Forward
			}
		case p < 0:
			if r.pending.CompareAndSwap(p, p+1) {
				return Backward
			}
		default:
			return None
		}
	}
}

// Flush drops unread detents
func (r *Rotary) Flush() {
	r.pending.Store(0)
}
