// Package panel implements the operator panel: a rotary encoder with push
// switch and the menus that turn operator input into a winding.Job.
package panel
