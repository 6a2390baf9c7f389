package serial

import (
	"errors"
	"fmt"

	"github.com/tarm/serial"
)

// NativePort wraps a tarm/serial port
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// Open opens the device described by cfg
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, errors.New("serial: nil config")
	}
	if cfg.Device == "" {
		return nil, errors.New("serial: no device given")
	}
	baud := cfg.Baud
	if baud == 0 {
		baud = DefaultBaud
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}
	return &NativePort{port: port, cfg: cfg}, nil
}

// Read returns (0, nil) when the read timeout expires with no data
func (p *NativePort) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	return idleRead(n, err, p.cfg.ReadTimeout)
}

func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the device
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush discards unread input
func (p *NativePort) Flush() error {
	return p.port.Flush()
}

// Device returns the path the port was opened on
func (p *NativePort) Device() string {
	return p.cfg.Device
}
