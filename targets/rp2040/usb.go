//go:build rp2040

package main

import (
	"errors"
	"machine"
)

// maxWriteFailures is how many failed writes in a row put the link to sleep
const maxWriteFailures = 10

// retryEvery is how many frames are skipped between write attempts on a sleeping link
const retryEvery = 32

var errUSBDisconnected = errors.New("usb host disconnected")

// usbLink carries telemetry frames over USB CDC. After repeated write
// failures it drops frames, probing the host every retryEvery frames.
type usbLink struct {
	port     machine.Serialer
	failures uint32
	skipped  uint32
}

func newUSBLink() (*usbLink, error) {
	if err := machine.Serial.Configure(machine.UARTConfig{}); err != nil {
		return nil, err
	}
	return &usbLink{port: machine.Serial}, nil
}

// Write sends p, handling partial writes
func (u *usbLink) Write(p []byte) (int, error) {
	if u.failures >= maxWriteFailures {
		u.skipped++
		if u.skipped%retryEvery != 0 {
			return 0, errUSBDisconnected
		}
	}

	written := 0
	for written < len(p) {
		n, err := u.port.Write(p[written:])
		if err != nil || n == 0 {
			if u.failures < maxWriteFailures {
				u.failures++
			}
			if err == nil {
				err = errUSBDisconnected
			}
			return written, err
		}
		written += n
	}
	u.failures = 0
	u.skipped = 0
	return written, nil
}

var debugUART *machine.UART

// initDebugUART routes firmware debug text to UART1 so it never interleaves
// with telemetry frames on USB.
func initDebugUART() error {
	debugUART = machine.UART1
	return debugUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       pinDebugTX,
		RX:       pinDebugRX,
	})
}

func debugWrite(s string) {
	if debugUART == nil {
		return
	}
	_, _ = debugUART.Write([]byte(s))
	_, _ = debugUART.Write([]byte("\r\n"))
}
