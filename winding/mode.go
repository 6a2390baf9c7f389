package winding

import "errors"

// Material selects the unit of progress
type Material uint8

const (
	Thread Material = iota // Progress in metres
	Copper                 // Progress in coil turns
)

func (m Material) String() string {
	switch m {
	case Thread:
		return "thread"
	case Copper:
		return "copper"
	default:
		return "unknown"
	}
}

// Mode is one of the four winding variants
type Mode struct {
	Material Material
	Auto     bool
}

var (
	ThreadManual = Mode{Material: Thread}
	ThreadAuto   = Mode{Material: Thread, Auto: true}
	CopperManual = Mode{Material: Copper}
	CopperAuto   = Mode{Material: Copper, Auto: true}
)

var ErrUnknownMode = errors.New("unknown winding mode")

func (m Mode) String() string {
	if m.Auto {
		return m.Material.String() + "-auto"
	}
	return m.Material.String() + "-manual"
}

// Code packs the mode into a small integer for telemetry and the event ring
func (m Mode) Code() uint8 {
	c := uint8(m.Material) << 1
	if m.Auto {
		c |= 1
	}
	return c
}

// ModeFromCode is the inverse of Mode.Code
func ModeFromCode(code uint8) (Mode, error) {
	if code > CopperAuto.Code() {
		return Mode{}, ErrUnknownMode
	}
	return Mode{Material: Material(code >> 1), Auto: code&1 != 0}, nil
}

// ParseMode accepts the names produced by Mode.String
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ThreadManual, ThreadAuto, CopperManual, CopperAuto} {
		if m.String() == s {
			return m, nil
		}
	}
	return Mode{}, errors.New("unknown winding mode: " + s)
}

// Outcome is the terminal state of a run
type Outcome uint8

const (
	Completed Outcome = iota + 1
	AbortedByOperator
	AbortedByTension
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case AbortedByOperator:
		return "aborted-by-operator"
	case AbortedByTension:
		return "aborted-by-tension"
	default:
		return "unknown"
	}
}

// Job is what the operator asked for. Metres is used by thread-manual and
// MilliHenries by copper-manual; the other modes ignore both.
type Job struct {
	Mode         Mode
	Metres       int
	MilliHenries int
}

// Validate rejects manual jobs without a quantity
func (j Job) Validate() error {
	switch {
	case j.Mode == ThreadManual && j.Metres <= 0:
		return errors.New("thread-manual needs a positive length")
	case j.Mode == CopperManual && j.MilliHenries <= 0:
		return errors.New("copper-manual needs a positive inductance")
	}
	return nil
}

// Plan is a job resolved against the machine configuration.
// Target and DisplayEvery are in progress units: pulses for thread, turns for copper.
type Plan struct {
	Job          Job
	HasTarget    bool
	Target       uint32
	TargetMH     int // Inductance behind a copper target
	DisplayEvery uint32
}

// Status is a progress snapshot
type Status struct {
	Mode     Mode
	Pulses   uint32
	Progress uint32  // Pulses for thread, turns for copper
	Metres   float64 // Thread only
}

// Result is produced exactly once per run
type Result struct {
	Status
	Outcome Outcome
	Tension int32 // Reading that caused AbortedByTension
}
