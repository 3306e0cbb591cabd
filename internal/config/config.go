// Package config loads the host simulator configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config is the complete host configuration.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Runner RunnerConfig `yaml:"runner"`
	Log    LogConfig    `yaml:"log"`
	Mirror MirrorConfig `yaml:"mirror"`
}

// SerialConfig selects where the simulated UART is attached.
type SerialConfig struct {
	// Mode is "stdio" or "pty".
	Mode string `yaml:"mode"`
	// Raw puts an interactive stdin into raw mode so keys reach the console
	// one at a time.
	Raw bool `yaml:"raw"`
}

// RunnerConfig drives the host step loop.
type RunnerConfig struct {
	Headless   bool   `yaml:"headless"`
	Hz         int    `yaml:"hz"`
	Ticks      uint64 `yaml:"ticks"`
	StepBudget int    `yaml:"stepBudget"`
	Scale      int    `yaml:"scale"`
}

// LogConfig routes log lines to a rotated file instead of stderr.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// MirrorConfig controls the display mirror of the console.
type MirrorConfig struct {
	Enabled       bool   `yaml:"enabled"`
	IntervalTicks uint64 `yaml:"intervalTicks"`
}

const (
	SerialStdio = "stdio"
	SerialPTY   = "pty"
)

var ErrInvalid = errors.New("config: invalid")

// Load returns the defaults, overlaid with path (when non-empty) and then
// with TINYCON_* environment variables, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Mode: SerialStdio,
			Raw:  true,
		},
		Runner: RunnerConfig{
			Hz:         60,
			StepBudget: 256,
			Scale:      2,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Mirror: MirrorConfig{
			Enabled:       true,
			IntervalTicks: 16,
		},
	}
}

func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TINYCON_SERIAL"); v != "" {
		cfg.Serial.Mode = v
	}
	if v := os.Getenv("TINYCON_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	bools := []struct {
		env string
		dst *bool
	}{
		{"TINYCON_SERIAL_RAW", &cfg.Serial.Raw},
		{"TINYCON_HEADLESS", &cfg.Runner.Headless},
		{"TINYCON_MIRROR", &cfg.Mirror.Enabled},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, b.env, v, err)
		}
		*b.dst = parsed
	}

	if v := os.Getenv("TINYCON_HZ"); v != "" {
		hz, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: TINYCON_HZ=%q: %v", ErrInvalid, v, err)
		}
		cfg.Runner.Hz = hz
	}
	if v := os.Getenv("TINYCON_TICKS"); v != "" {
		ticks, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: TINYCON_TICKS=%q: %v", ErrInvalid, v, err)
		}
		cfg.Runner.Ticks = ticks
	}
	return nil
}

// Validate checks cfg for values the runners cannot honor.
func Validate(cfg *Config) error {
	switch cfg.Serial.Mode {
	case SerialStdio, SerialPTY:
	default:
		return fmt.Errorf("%w: serial.mode %q (want %s or %s)", ErrInvalid, cfg.Serial.Mode, SerialStdio, SerialPTY)
	}
	if cfg.Runner.Hz <= 0 || cfg.Runner.Hz > 10000 {
		return fmt.Errorf("%w: runner.hz %d out of range 1..10000", ErrInvalid, cfg.Runner.Hz)
	}
	if cfg.Runner.StepBudget <= 0 {
		return fmt.Errorf("%w: runner.stepBudget must be positive", ErrInvalid)
	}
	if cfg.Runner.Scale <= 0 || cfg.Runner.Scale > 8 {
		return fmt.Errorf("%w: runner.scale %d out of range 1..8", ErrInvalid, cfg.Runner.Scale)
	}
	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalid)
	}
	return nil
}
