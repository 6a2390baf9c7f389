package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"winder/host/logger"
	"winder/host/monitor"
	"winder/host/serial"
	"winder/winding"
)

var (
	device   = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud     = flag.Int("baud", serial.DefaultBaud, "Baud rate (ignored for USB CDC)")
	logLevel = flag.String("log-level", logger.InfoLevel, "Log level: debug, info, warn, error")
	replay   = flag.String("replay", "", "Decode a captured telemetry file instead of a device")
)

func main() {
	flag.Parse()

	log := logger.Get(*logLevel)
	defer func() { _ = log.Sync() }()

	mon := monitor.New(log, winding.DefaultConfig().Calibration, nil)
	defer func() {
		s := mon.Stats()
		log.Infow("telemetry summary", "frames", s.Frames, "dropped", s.Dropped, "rejected", s.Rejected)
	}()

	if *replay != "" {
		f, err := os.Open(*replay)
		if err != nil {
			log.Fatalw("cannot open capture", "err", err)
		}
		defer f.Close()
		if err := mon.Replay(f); err != nil {
			log.Errorw("replay failed", "file", *replay, "err", err)
		}
		return
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		log.Fatalw("cannot open telemetry port", "err", err)
	}
	defer func() {
		if cerr := port.Close(); cerr != nil {
			log.Warnw("close serial port", "err", cerr)
		}
	}()
	_ = port.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("listening", "device", *device, "baud", cfg.Baud)

	if err := mon.Run(ctx, port); err != nil {
		log.Errorw("monitor stopped", "err", err)
	}
}
