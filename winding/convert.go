package winding

import "math"

// mu0 is the vacuum permeability in H/m
const mu0 = 4 * math.Pi * 1e-7

// Calibration describes the drum, encoder and coil former of a machine.
// Values are fixed at build time.
type Calibration struct {
	PulsesPerRevolution float64 // Encoder pulses per drum revolution
	DrumDiameterCm      float64 // Drum diameter in centimetres
	CoilRadiusM         float64 // Coil former radius in metres
	CoilHeightM         float64 // Coil winding height in metres
	CopperPulsesPerTurn uint32  // Encoder pulses counted as one coil turn
}

// PulsesPerCm returns encoder pulses per centimetre of material
func (c Calibration) PulsesPerCm() float64 {
	return c.PulsesPerRevolution / (math.Pi * c.DrumDiameterCm)
}

// PulsesPerMetre returns encoder pulses per metre of material
func (c Calibration) PulsesPerMetre() float64 {
	return c.PulsesPerCm() * 100
}

// MetresToPulses maps a length to the (fractional) pulse count it produces
func (c Calibration) MetresToPulses(metres float64) float64 {
	return metres * 100 * c.PulsesPerCm()
}

// PulsesToMetres is the inverse of MetresToPulses
func (c Calibration) PulsesToMetres(pulses float64) float64 {
	perMetre := c.PulsesPerMetre()
	if perMetre == 0 {
		return 0
	}
	return pulses / perMetre
}

// TargetPulses is the whole pulse count that completes a run of the given length.
func (c Calibration) TargetPulses(metres float64) uint32 {
	p := c.MetresToPulses(metres)
	if p <= 0 {
		return 0
	}
	return uint32(math.Floor(p + 0.5))
}

// TurnsForInductance solves L = mu0*N^2*A/h for N, rounded half up.
func (c Calibration) TurnsForInductance(milliHenries float64) uint32 {
	if milliHenries <= 0 {
		return 0
	}
	l := milliHenries / 1000
	area := math.Pi * c.CoilRadiusM * c.CoilRadiusM
	if area == 0 {
		return 0
	}
	n := math.Sqrt((l * c.CoilHeightM) / (mu0 * area))
	return uint32(math.Floor(n + 0.5))
}

// PulsesToTurns converts an encoder count into whole coil turns
func (c Calibration) PulsesToTurns(pulses uint32) uint32 {
	per := c.CopperPulsesPerTurn
	if per == 0 {
		per = 1
	}
	return pulses / per
}
