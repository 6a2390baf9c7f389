package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"winder/host/logger"
	"winder/host/serial"
	"winder/host/sim"
	"winder/winding"

	"github.com/spf13/viper"
)

func main() {
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))
	defer func() { _ = log.Sync() }()

	cfg := machineConfig()
	job, err := jobConfig()
	if err != nil {
		log.Fatalw("invalid job", "err", err)
	}

	var telemetry io.Writer
	if dev := viper.GetString("telemetry.device"); dev != "" {
		scfg := serial.DefaultConfig(dev)
		scfg.Baud = viper.GetInt("telemetry.baud")
		port, err := serial.Open(scfg)
		if err != nil {
			log.Fatalw("cannot open telemetry port", "err", err)
		}
		defer func() { _ = port.Close() }()
		telemetry = port
	}

	s, err := sim.New(cfg, simOptions(), log, telemetry)
	if err != nil {
		log.Fatalw("cannot build simulator", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := s.Run(ctx, job)
	if err != nil {
		log.Fatalw("run failed", "err", err)
	}
	log.Infow("done", "outcome", r.Outcome.String(), "pulses", r.Pulses, "progress", r.Progress)
}

// loadConfig reads configs/sim.yaml if present. WINDER_* environment
// variables override it, e.g. WINDER_JOB_MODE=copper-auto.
func loadConfig() error {
	def := winding.DefaultConfig()
	opts := sim.DefaultOptions()

	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("job.mode", winding.ThreadManual.String())
	viper.SetDefault("job.metres", 1)
	viper.SetDefault("job.millihenries", 100)
	viper.SetDefault("calibration.pulses_per_revolution", def.Calibration.PulsesPerRevolution)
	viper.SetDefault("calibration.drum_diameter_cm", def.Calibration.DrumDiameterCm)
	viper.SetDefault("calibration.coil_radius_m", def.Calibration.CoilRadiusM)
	viper.SetDefault("calibration.coil_height_m", def.Calibration.CoilHeightM)
	viper.SetDefault("calibration.copper_pulses_per_turn", def.Calibration.CopperPulsesPerTurn)
	viper.SetDefault("sweep.min_angle", def.Sweep.MinAngle)
	viper.SetDefault("sweep.max_angle", def.Sweep.MaxAngle)
	viper.SetDefault("sweep.step_delay", def.Sweep.StepDelay)
	viper.SetDefault("tension.limit", def.TensionLimit)
	viper.SetDefault("display.thread_every", def.ThreadDisplayEvery)
	viper.SetDefault("display.copper_every", def.CopperDisplayEvery)
	viper.SetDefault("display.final_hold", def.FinalHold)
	viper.SetDefault("copper_auto.millihenries", def.CopperAutoMilliHenries)
	viper.SetDefault("sim.pulse_rate_hz", opts.PulseRateHz)
	viper.SetDefault("sim.tension_fault_after", 0)
	viper.SetDefault("sim.stop_after", 0)
	viper.SetDefault("sim.fast", false)
	viper.SetDefault("telemetry.device", "")
	viper.SetDefault("telemetry.baud", serial.DefaultBaud)

	viper.SetEnvPrefix("WINDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs")
	viper.SetConfigName("sim")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func machineConfig() winding.Config {
	cfg := winding.Config{
		Calibration: winding.Calibration{
			PulsesPerRevolution: viper.GetFloat64("calibration.pulses_per_revolution"),
			DrumDiameterCm:      viper.GetFloat64("calibration.drum_diameter_cm"),
			CoilRadiusM:         viper.GetFloat64("calibration.coil_radius_m"),
			CoilHeightM:         viper.GetFloat64("calibration.coil_height_m"),
			CopperPulsesPerTurn: viper.GetUint32("calibration.copper_pulses_per_turn"),
		},
		Sweep: winding.Sweep{
			MinAngle:  viper.GetInt("sweep.min_angle"),
			MaxAngle:  viper.GetInt("sweep.max_angle"),
			StepDelay: viper.GetDuration("sweep.step_delay"),
		},
		TensionLimit:           viper.GetInt32("tension.limit"),
		ThreadDisplayEvery:     viper.GetUint32("display.thread_every"),
		CopperDisplayEvery:     viper.GetUint32("display.copper_every"),
		CopperAutoMilliHenries: viper.GetInt("copper_auto.millihenries"),
		FinalHold:              viper.GetDuration("display.final_hold"),
	}
	cfg.ApplyDefaults()
	return cfg
}

func jobConfig() (winding.Job, error) {
	mode, err := winding.ParseMode(viper.GetString("job.mode"))
	if err != nil {
		return winding.Job{}, err
	}
	job := winding.Job{
		Mode:         mode,
		Metres:       viper.GetInt("job.metres"),
		MilliHenries: viper.GetInt("job.millihenries"),
	}
	return job, job.Validate()
}

func simOptions() sim.Options {
	return sim.Options{
		PulseRateHz:       viper.GetInt("sim.pulse_rate_hz"),
		TensionFaultAfter: viper.GetUint32("sim.tension_fault_after"),
		StopAfter:         viper.GetUint32("sim.stop_after"),
		Fast:              viper.GetBool("sim.fast"),
	}
}
