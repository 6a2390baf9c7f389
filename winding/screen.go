package winding

import "winder/core"

// LineHeight is the vertical pitch of text lines in pixels
const LineHeight = 10

// Display is a text-only screen. Lines are not wrapped.
type Display interface {
	Clear()
	DrawLine(x, y int16, text string)
	Present() error
}

// Render clears the display, draws lines from the top and presents them
func Render(d Display, lines ...string) error {
	d.Clear()
	for i, line := range lines {
		d.DrawLine(0, int16(i*LineHeight), line)
	}
	return d.Present()
}

// metresText formats a length for the small screen
func metresText(m float64) string {
	return core.Ftoa(m, 2)
}

func introLines(p Plan) []string {
	switch p.Job.Mode {
	case ThreadManual:
		return []string{"Winding thread...", "Target: " + core.Itoa(p.Job.Metres) + " m"}
	case ThreadAuto:
		return []string{"Auto winding...", "Press SW to", "stop."}
	case CopperManual:
		return []string{"Copper manual...", core.Itoa(p.TargetMH) + " mH -> " + core.Utoa(p.Target) + " turns"}
	default:
		return []string{"Copper auto (1H)...", "Target: " + core.Utoa(p.Target)}
	}
}

func progressLines(p Plan, s Status) []string {
	switch p.Job.Mode {
	case ThreadManual:
		return []string{"Winding...", "Metres: " + metresText(s.Metres), "Target: " + core.Itoa(p.Job.Metres) + " m"}
	case ThreadAuto:
		return []string{"Winding (Auto)...", "Metres: " + metresText(s.Metres), "Press SW"}
	case CopperManual:
		return []string{"Copper manual...", "Turns: " + core.Utoa(s.Progress), "Target: " + core.Utoa(p.Target)}
	default:
		return []string{"Copper auto (1H)...", "Turns: " + core.Utoa(s.Progress), "Target: " + core.Utoa(p.Target)}
	}
}

func finalLines(p Plan, r Result) []string {
	thread := p.Job.Mode.Material == Thread

	switch r.Outcome {
	case AbortedByTension:
		return []string{"EXCESSIVE TENSION!", "Motor stopped."}
	case AbortedByOperator:
		if thread {
			return []string{"Winding stopped.", "Total: " + metresText(r.Metres) + " m"}
		}
		return []string{"Winding stopped.", "Turns: " + core.Utoa(r.Progress)}
	default:
		if thread {
			return []string{"Winding complete!", "Total: " + metresText(r.Metres) + " m"}
		}
		if p.Job.Mode.Auto {
			return []string{"Coil complete!", "Turns: 1 Henry"}
		}
		return []string{"Coil complete!", core.Itoa(p.TargetMH) + " mH"}
	}
}
