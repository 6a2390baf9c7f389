//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// Instructions forced into the state machine to sample X on request
const (
	pioMovISRX      = 0xA0C1 // mov isr, x
	pioPushNoblock  = 0x8000 // push noblock
	pioReadAttempts = 1000
)

// buildCounterProgram assembles the edge counter for one GPIO:
//
//	0: set x, 0
//	1: wait 1 gpio N   ; wrap target
//	2: wait 0 gpio N
//	3: jmp x-- 1       ; wrap
//
// X counts down from zero, so -X is the edge count. The program never pushes
// on its own; Read executes a push when it wants the current value.
func buildCounterProgram(pin machine.Pin) []uint16 {
	n := uint16(pin) & 0x1F
	return []uint16{
		0xE020,     // set x, 0
		0x2080 | n, // wait 1 gpio n
		0x2000 | n, // wait 0 gpio n
		0x0041,     // jmp x-- 1
	}
}

// pioCounter counts encoder falling edges in a PIO state machine.
// It satisfies winding.Counter without any per-edge interrupt.
type pioCounter struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	cfg    rp2pio.StateMachineConfig
	offset uint8
	last   uint32
}

func newPIOCounter(pin machine.Pin) (*pioCounter, error) {
	c := &pioCounter{pio: rp2pio.PIO0}
	c.sm = c.pio.StateMachine(0)
	c.sm.TryClaim()

	offset, err := c.pio.AddProgram(buildCounterProgram(pin), -1)
	if err != nil {
		return nil, err
	}
	c.offset = offset

	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	c.cfg = rp2pio.DefaultStateMachineConfig()
	c.cfg.SetClkDivIntFrac(1, 0)
	c.cfg.SetWrap(c.offset+1, c.offset+3)

	c.sm.Init(c.offset, c.cfg)
	c.sm.SetEnabled(true)
	return c, nil
}

// Reset restarts the program so the count begins again from zero
func (c *pioCounter) Reset() {
	c.sm.SetEnabled(false)
	c.sm.ClearFIFOs()
	c.sm.Init(c.offset, c.cfg)
	c.sm.SetEnabled(true)
	c.last = 0
}

// Read samples X through the RX FIFO. Anything left in the FIFO is stale and
// dropped first. If the word never arrives the previous count is returned.
func (c *pioCounter) Read() uint32 {
	for !c.sm.IsRxFIFOEmpty() {
		c.sm.RxGet()
	}
	c.sm.Exec(pioMovISRX)
	c.sm.Exec(pioPushNoblock)
	for i := 0; i < pioReadAttempts; i++ {
		if !c.sm.IsRxFIFOEmpty() {
			c.last = -c.sm.RxGet()
			break
		}
	}
	return c.last
}
