// Package winding implements the winding machine control loop: encoder pulse
// counting, unit conversion, the distribution sweep, the tension cutoff and
// the run state machine shared by the thread and copper modes.
package winding
