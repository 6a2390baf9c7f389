package winding

import (
	"io"

	"winder/core"
	"winder/protocol"
)

// TelemetryObserver streams run notifications as protocol frames
type TelemetryObserver struct {
	w   *protocol.FrameWriter
	err error
}

// NewTelemetryObserver writes frames to w
func NewTelemetryObserver(w io.Writer) *TelemetryObserver {
	return &TelemetryObserver{w: protocol.NewFrameWriter(w)}
}

// Err returns the first write error, if any
func (t *TelemetryObserver) Err() error {
	return t.err
}

func (t *TelemetryObserver) RunStarted(p Plan) {
	var units int
	switch {
	case p.Job.Mode.Material == Copper:
		units = p.TargetMH
	case !p.Job.Mode.Auto:
		units = p.Job.Metres
	}
	t.send(protocol.RunStarted{Mode: p.Job.Mode.Code(), Target: p.Target, TargetUnits: uint32(units)})
}

func (t *TelemetryObserver) Progress(s Status) {
	t.send(protocol.Progress{Mode: s.Mode.Code(), Pulses: s.Pulses, Progress: progressUnits(s)})
}

func (t *TelemetryObserver) RunFinished(r Result) {
	t.send(protocol.RunFinished{
		Mode:     r.Mode.Code(),
		Outcome:  uint8(r.Outcome),
		Pulses:   r.Pulses,
		Progress: progressUnits(r.Status),
	})
	if r.Outcome == AbortedByTension {
		t.send(protocol.TensionSample{Reading: r.Tension})
	}
}

func (t *TelemetryObserver) send(m protocol.Message) {
	if err := t.w.WriteMessage(m); err != nil {
		if t.err == nil {
			t.err = err
		}
		core.DebugAsync("[TELEMETRY] " + err.Error())
	}
}

// progressUnits is turns for copper and centimetres for thread
func progressUnits(s Status) uint32 {
	if s.Mode.Material == Copper {
		return s.Progress
	}
	return uint32(s.Metres*100 + 0.5)
}
