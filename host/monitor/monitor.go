// Package monitor decodes the telemetry stream of a running winder.
package monitor

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"winder/host/logger"
	"winder/protocol"
	"winder/winding"
)

// Handler receives each decoded message
type Handler func(protocol.Message)

// Stats counts decoder activity
type Stats struct {
	Frames   uint32
	Dropped  uint32
	Rejected uint32
}

// idlePoll is the pause after a read that returned nothing
const idlePoll = 20 * time.Millisecond

// Monitor turns raw serial bytes into telemetry messages
type Monitor struct {
	log     *logger.Logger
	handler Handler
	fifo    *protocol.FifoBuffer
	decoder *protocol.Decoder
	sleep   func(time.Duration)

	calibration winding.Calibration
	lastDropped uint32
}

// New creates a monitor. handler may be nil; every message is logged either way.
func New(log *logger.Logger, calibration winding.Calibration, handler Handler) *Monitor {
	m := &Monitor{
		log:         log,
		handler:     handler,
		fifo:        protocol.NewFifoBuffer(1024),
		sleep:       time.Sleep,
		calibration: calibration,
	}
	m.decoder = protocol.NewDecoder(m.handleFrame)
	return m
}

// Feed decodes bytes already read from the device
func (m *Monitor) Feed(data []byte) {
	for len(data) > 0 {
		n := m.fifo.Write(data)
		data = data[n:]
		m.decoder.Receive(m.fifo)
	}
	m.reportDrops()
}

// Run follows a live port until ctx is cancelled or the port is closed.
// A port with a read timeout reports an idle line as io.EOF, so EOF only
// means "nothing yet" here.
func (m *Monitor) Run(ctx context.Context, r io.Reader) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := m.fifo.ReadFrom(r)
		if n > 0 {
			m.decoder.Receive(m.fifo)
			m.reportDrops()
		}
		switch {
		case err == nil && n > 0:
		case err == nil, errors.Is(err, io.EOF):
			m.sleep(idlePoll)
		case errors.Is(err, os.ErrClosed), errors.Is(err, io.ErrClosedPipe):
			return nil
		default:
			m.log.Warnw("serial read failed", "err", err)
			m.sleep(idlePoll)
		}
	}
}

// Replay decodes a captured telemetry stream to its end
func (m *Monitor) Replay(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.decoder.Receive(protocol.NewSliceInputBuffer(data))
	m.reportDrops()
	return nil
}

// Stats returns decoder counters
func (m *Monitor) Stats() Stats {
	return Stats{
		Frames:   m.decoder.Frames(),
		Dropped:  m.decoder.Dropped(),
		Rejected: m.decoder.HandlerErrors(),
	}
}

func (m *Monitor) handleFrame(seq uint8, payload []byte) error {
	msg, err := protocol.DecodeMessage(payload)
	if err != nil {
		m.log.Warnw("undecodable frame", "seq", seq, "err", err)
		return err
	}
	m.logMessage(msg)
	if m.handler != nil {
		m.handler(msg)
	}
	return nil
}

func (m *Monitor) reportDrops() {
	dropped := m.decoder.Dropped()
	if dropped != m.lastDropped {
		m.log.Warnw("corrupt frames skipped", "new", dropped-m.lastDropped, "total", dropped)
		m.lastDropped = dropped
	}
}

func (m *Monitor) logMessage(msg protocol.Message) {
	switch v := msg.(type) {
	case protocol.RunStarted:
		m.log.Infow("run started", "mode", modeName(v.Mode), "target", v.Target, "units", v.TargetUnits)
	case protocol.Progress:
		m.log.Infow("progress", "mode", modeName(v.Mode), "pulses", v.Pulses, "progress", FormatProgress(v.Mode, v.Progress))
	case protocol.RunFinished:
		m.log.Infow("run finished",
			"mode", modeName(v.Mode),
			"outcome", winding.Outcome(v.Outcome).String(),
			"pulses", v.Pulses,
			"progress", FormatProgress(v.Mode, v.Progress),
			"metres", m.calibration.PulsesToMetres(float64(v.Pulses)),
		)
	case protocol.TensionSample:
		m.log.Warnw("excessive tension", "reading", v.Reading)
	}
}

func modeName(code uint8) string {
	mode, err := winding.ModeFromCode(code)
	if err != nil {
		return "unknown"
	}
	return mode.String()
}
