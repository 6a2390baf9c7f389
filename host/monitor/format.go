package monitor

import (
	"strconv"

	"winder/winding"
)

// FormatProgress renders a progress field in its unit: turns for copper,
// metres for thread.
func FormatProgress(modeCode uint8, progress uint32) string {
	mode, err := winding.ModeFromCode(modeCode)
	if err == nil && mode.Material == winding.Copper {
		return strconv.FormatUint(uint64(progress), 10) + " turns"
	}
	return strconv.FormatFloat(float64(progress)/100, 'f', 2, 64) + " m"
}
