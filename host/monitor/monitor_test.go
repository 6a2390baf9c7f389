package monitor

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"winder/host/logger"
	"winder/protocol"
	"winder/winding"
)

func telemetryStream(t *testing.T, msgs ...protocol.Message) []byte {
	t.Helper()
	var buf bytes.Buffer
	fw := protocol.NewFrameWriter(&buf)
	for _, m := range msgs {
		if err := fw.WriteMessage(m); err != nil {
			t.Fatalf("WriteMessage failed: %v", err)
		}
	}
	return buf.Bytes()
}

var copperRun = []protocol.Message{
	protocol.RunStarted{Mode: winding.CopperManual.Code(), Target: 602, TargetUnits: 10},
	protocol.Progress{Mode: winding.CopperManual.Code(), Pulses: 20, Progress: 20},
	protocol.RunFinished{Mode: winding.CopperManual.Code(), Outcome: uint8(winding.Completed), Pulses: 602, Progress: 602},
}

func TestFeedInChunks(t *testing.T) {
	var got []protocol.Message
	m := New(logger.Nop(), winding.DefaultConfig().Calibration, func(msg protocol.Message) {
		got = append(got, msg)
	})

	stream := telemetryStream(t, copperRun...)
	for i := 0; i < len(stream); i += 3 {
		end := i + 3
		if end > len(stream) {
			end = len(stream)
		}
		m.Feed(stream[i:end])
	}

	if len(got) != len(copperRun) {
		t.Fatalf("Expected %d messages, got %d", len(copperRun), len(got))
	}
	for i := range copperRun {
		if got[i] != copperRun[i] {
			t.Errorf("Message %d: expected %+v, got %+v", i, copperRun[i], got[i])
		}
	}
	if s := m.Stats(); s.Frames != 3 || s.Dropped != 0 {
		t.Errorf("Unexpected stats %+v", s)
	}
}

func TestReplayLogsAndCountsDrops(t *testing.T) {
	var out bytes.Buffer
	log := logger.NewWithWriter(&out, logger.InfoLevel)
	m := New(log, winding.DefaultConfig().Calibration, nil)

	stream := []byte{0x03, 0xFF, 0x7E} // noise ending in a sync byte
	stream = append(stream, telemetryStream(t, copperRun...)...)
	stream = append(stream, telemetryStream(t, protocol.TensionSample{Reading: 3500})...)

	if err := m.Replay(bytes.NewReader(stream)); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	_ = log.Sync()

	if s := m.Stats(); s.Frames != 4 || s.Dropped == 0 {
		t.Errorf("Expected 4 frames and counted drops, got %+v", s)
	}

	text := out.String()
	for _, want := range []string{"run started", "copper-manual", "run finished", "completed", "602 turns", "excessive tension", "3500", "corrupt frames skipped"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected log to contain %q", want)
		}
	}
}

// quietPort returns its reads in order, then reports an idle line until the
// script runs out, then calls done.
type quietPort struct {
	reads []portRead
	done  func()
	calls int
}

type portRead struct {
	data []byte
	err  error
}

func (p *quietPort) Read(b []byte) (int, error) {
	p.calls++
	if len(p.reads) == 0 {
		p.done()
		return 0, io.EOF
	}
	r := p.reads[0]
	p.reads = p.reads[1:]
	return copy(b, r.data), r.err
}

func TestRunSurvivesIdleLine(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := telemetryStream(t, copperRun...)
	port := &quietPort{
		reads: []portRead{
			{nil, io.EOF},
			{nil, nil},
			{stream[:7], nil},
			{nil, io.EOF},
			{stream[7:], nil},
		},
		done: cancel,
	}

	var got []protocol.Message
	m := New(logger.Nop(), winding.DefaultConfig().Calibration, func(msg protocol.Message) {
		got = append(got, msg)
	})
	var idles int
	m.sleep = func(time.Duration) { idles++ }

	if err := m.Run(ctx, port); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(got) != len(copperRun) {
		t.Fatalf("Expected %d messages across idle reads, got %d", len(copperRun), len(got))
	}
	if got[2] != copperRun[2] {
		t.Errorf("Expected %+v last, got %+v", copperRun[2], got[2])
	}
	if idles < 3 {
		t.Errorf("Expected a pause per idle read, got %d", idles)
	}
}

func TestRunStopsOnClosedPort(t *testing.T) {
	port := &quietPort{
		reads: []portRead{{nil, os.ErrClosed}},
		done:  func() { t.Error("Expected Run to stop at the closed port") },
	}
	m := New(logger.Nop(), winding.DefaultConfig().Calibration, nil)
	m.sleep = func(time.Duration) {}

	if err := m.Run(context.Background(), port); err != nil {
		t.Errorf("Expected clean stop, got %v", err)
	}
	if port.calls != 1 {
		t.Errorf("Expected one read, got %d", port.calls)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(logger.Nop(), winding.DefaultConfig().Calibration, nil)
	if err := m.Run(ctx, bytes.NewReader(nil)); err != nil {
		t.Errorf("Expected clean stop, got %v", err)
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		mode winding.Mode
		v    uint32
		want string
	}{
		{winding.ThreadManual, 250, "2.50 m"},
		{winding.ThreadAuto, 0, "0.00 m"},
		{winding.CopperAuto, 6015, "6015 turns"},
	}
	for _, tt := range tests {
		if got := FormatProgress(tt.mode.Code(), tt.v); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
