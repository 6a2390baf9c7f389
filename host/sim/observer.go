package sim

import (
	"winder/host/logger"
	"winder/winding"
)

// logObserver writes run notifications to the host log
type logObserver struct {
	log *logger.Logger
	cal winding.Calibration
}

func (o *logObserver) RunStarted(p winding.Plan) {
	o.log.Infow("run started",
		"mode", p.Job.Mode.String(),
		"target", p.Target,
		"has_target", p.HasTarget,
	)
}

func (o *logObserver) Progress(s winding.Status) {
	if s.Mode.Material == winding.Copper {
		o.log.Debugw("progress", "turns", s.Progress, "pulses", s.Pulses)
		return
	}
	o.log.Debugw("progress", "metres", s.Metres, "pulses", s.Pulses)
}

func (o *logObserver) RunFinished(r winding.Result) {
	fields := []interface{}{
		"mode", r.Mode.String(),
		"outcome", r.Outcome.String(),
		"pulses", r.Pulses,
		"metres", o.cal.PulsesToMetres(float64(r.Pulses)),
	}
	if r.Outcome == winding.AbortedByTension {
		o.log.Warnw("run aborted", append(fields, "tension", r.Tension)...)
		return
	}
	o.log.Infow("run finished", fields...)
}
