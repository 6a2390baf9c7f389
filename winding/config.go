package winding

import (
	"errors"
	"time"
)

// Config is the full machine configuration
type Config struct {
	Calibration Calibration
	Sweep       Sweep

	TensionLimit int32

	// Progress redraw cadence, in progress units
	ThreadDisplayEvery uint32
	CopperDisplayEvery uint32

	// Inductance wound by copper-auto
	CopperAutoMilliHenries int

	// How long the final message stays up before returning to the menu
	FinalHold time.Duration
}

// DefaultConfig returns the reference machine
func DefaultConfig() Config {
	return Config{
		Calibration: Calibration{
			PulsesPerRevolution: 100,
			DrumDiameterCm:      1.4,
			CoilRadiusM:         0.014,
			CoilHeightM:         0.028,
			CopperPulsesPerTurn: 1,
		},
		Sweep: Sweep{
			MinAngle:  50,
			MaxAngle:  130,
			StepDelay: 15 * time.Millisecond,
		},
		TensionLimit:           DefaultTensionLimit,
		ThreadDisplayEvery:     100,
		CopperDisplayEvery:     20,
		CopperAutoMilliHenries: 1000,
		FinalHold:              2 * time.Second,
	}
}

// ApplyDefaults fills in missing values from DefaultConfig.
// FinalHold and StepDelay are left alone: zero is a valid choice for both.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()

	if c.Calibration.PulsesPerRevolution == 0 {
		c.Calibration.PulsesPerRevolution = def.Calibration.PulsesPerRevolution
	}
	if c.Calibration.DrumDiameterCm == 0 {
		c.Calibration.DrumDiameterCm = def.Calibration.DrumDiameterCm
	}
	if c.Calibration.CoilRadiusM == 0 {
		c.Calibration.CoilRadiusM = def.Calibration.CoilRadiusM
	}
	if c.Calibration.CoilHeightM == 0 {
		c.Calibration.CoilHeightM = def.Calibration.CoilHeightM
	}
	if c.Calibration.CopperPulsesPerTurn == 0 {
		c.Calibration.CopperPulsesPerTurn = def.Calibration.CopperPulsesPerTurn
	}
	if c.Sweep.MinAngle == 0 && c.Sweep.MaxAngle == 0 {
		c.Sweep.MinAngle = def.Sweep.MinAngle
		c.Sweep.MaxAngle = def.Sweep.MaxAngle
	}
	if c.TensionLimit == 0 {
		c.TensionLimit = def.TensionLimit
	}
	if c.ThreadDisplayEvery == 0 {
		c.ThreadDisplayEvery = def.ThreadDisplayEvery
	}
	if c.CopperDisplayEvery == 0 {
		c.CopperDisplayEvery = def.CopperDisplayEvery
	}
	if c.CopperAutoMilliHenries == 0 {
		c.CopperAutoMilliHenries = def.CopperAutoMilliHenries
	}
}

// Validate checks the configuration for values the control loop cannot run with
func (c Config) Validate() error {
	switch {
	case c.Calibration.PulsesPerRevolution <= 0:
		return errors.New("calibration: pulses per revolution must be positive")
	case c.Calibration.DrumDiameterCm <= 0:
		return errors.New("calibration: drum diameter must be positive")
	case c.Calibration.CoilRadiusM <= 0 || c.Calibration.CoilHeightM <= 0:
		return errors.New("calibration: coil geometry must be positive")
	case c.Sweep.MinAngle < 0 || c.Sweep.MaxAngle > 180:
		return errors.New("sweep: angles must be within 0..180")
	case c.Sweep.MinAngle >= c.Sweep.MaxAngle:
		return errors.New("sweep: min angle must be below max angle")
	case c.Sweep.StepDelay < 0:
		return errors.New("sweep: step delay must not be negative")
	case c.ThreadDisplayEvery == 0 || c.CopperDisplayEvery == 0:
		return errors.New("display cadence must be positive")
	case c.CopperAutoMilliHenries <= 0:
		return errors.New("copper auto inductance must be positive")
	}
	return nil
}

// Plan resolves a job into its target and display cadence
func (c Config) Plan(job Job) Plan {
	p := Plan{Job: job}

	switch job.Mode.Material {
	case Thread:
		p.DisplayEvery = c.ThreadDisplayEvery
		if !job.Mode.Auto {
			p.HasTarget = true
			p.Target = c.Calibration.TargetPulses(float64(job.Metres))
		}
	case Copper:
		p.DisplayEvery = c.CopperDisplayEvery
		p.HasTarget = true
		p.TargetMH = job.MilliHenries
		if job.Mode.Auto {
			p.TargetMH = c.CopperAutoMilliHenries
		}
		p.Target = c.Calibration.TurnsForInductance(float64(p.TargetMH))
	}

	return p
}
