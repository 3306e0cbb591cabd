//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tinycon/app"
	"tinycon/hal"
	"tinycon/internal/config"
)

func main() {
	var (
		cfgPath  string
		headless bool
		hz       int
		ticks    uint64
		serial   string
		logFile  string
	)
	flag.StringVar(&cfgPath, "config", "", "YAML config file.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&serial, "serial", config.SerialStdio, "Serial attachment: stdio or pty.")
	flag.StringVar(&logFile, "log", "", "Write log lines to a rotated file instead of stderr.")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Explicit flags win over the file and the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Runner.Headless = headless
		case "hz":
			cfg.Runner.Hz = hz
		case "ticks":
			cfg.Runner.Ticks = ticks
		case "serial":
			cfg.Serial.Mode = serial
		case "log":
			cfg.Log.File = logFile
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	hostCfg := hal.HostConfig{
		Serial: hal.SerialMode(cfg.Serial.Mode),
		Raw:    cfg.Serial.Raw,
		Log: hal.HostLogConfig{
			File:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
	}
	appCfg := app.Config{Mirror: cfg.Mirror.Enabled, MirrorInterval: cfg.Mirror.IntervalTicks}
	newApp := func(h hal.HAL) func() error {
		return app.New(h, appCfg)
	}

	if cfg.Runner.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, hostCfg, newApp, hal.HeadlessConfig{
			Enabled:    true,
			Hz:         cfg.Runner.Hz,
			Ticks:      cfg.Runner.Ticks,
			StepBudget: cfg.Runner.StepBudget,
		}); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(hostCfg, newApp, hal.WindowConfig{
		Scale:      cfg.Runner.Scale,
		StepBudget: cfg.Runner.StepBudget,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
