// Package serial opens the USB CDC port a winder streams telemetry on.
package serial

import (
	"errors"
	"io"
	"time"
)

// Port is an open serial device
type Port interface {
	io.ReadWriteCloser
	Flush() error
}

// Config holds serial port settings
type Config struct {
	// Device path, e.g. /dev/ttyACM0 or COM3
	Device string

	// Baud rate. USB CDC ignores it, a UART bridge does not.
	Baud int

	// Read timeout, 0 blocks
	ReadTimeout time.Duration
}

// DefaultBaud matches the firmware's USB CDC console
const DefaultBaud = 115200

// DefaultConfig returns settings for device at DefaultBaud
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// idleRead reports a read that timed out on a quiet line as (0, nil).
// tarm/serial returns (0, io.EOF) for it, which readers take as end of stream.
func idleRead(n int, err error, timeout time.Duration) (int, error) {
	if n == 0 && timeout > 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}
