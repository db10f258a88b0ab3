// Package config loads the engine's configuration: where the command
// archive lives, the initial-state lookback ladder, and the sun-vector
// sample period.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine's configuration. The default is applied for each
// unspecified value.
type Config struct {
	// ArchiveDSN is the sqlite data source name for the command archive.
	ArchiveDSN string `yaml:"archive_dsn"`

	// EventsDSN is the sqlite data source name for the events database.
	EventsDSN string `yaml:"events_dsn"`

	// LookbackDays is the expanding lookback sequence GetState0 searches,
	// in ascending order. The standard default is [7, 30, 180, 1000].
	LookbackDays []float64 `yaml:"lookback_days"`

	// SunVectorSampleSecs is the configured grid spacing for sun-vector
	// sampling. The standard default is 10000 seconds. The fold does not
	// read it; its sampling uses the fixed fold.SampleIntervalSecs.
	SunVectorSampleSecs float64 `yaml:"sun_vector_sample_secs"`

	// LogLevel names a verbosity: debug, info, warn, or error. It is
	// validated and defaulted here; no package reads it to filter logging.
	LogLevel string `yaml:"log_level"`
}

// Load reads a YAML config file at path, applying defaults for any
// unspecified value. A missing file yields the all-defaults config
// rather than an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.check()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.check()
	return cfg, nil
}

// check applies the default for each unspecified value. A panic is
// raised for values clearly out of range, matching the fail-fast
// convention for misconfiguration.
func (c *Config) check() *Config {
	if c.ArchiveDSN == "" {
		c.ArchiveDSN = "cmds.db"
	}
	if c.EventsDSN == "" {
		c.EventsDSN = "events.db"
	}
	if c.LookbackDays == nil {
		c.LookbackDays = []float64{7, 30, 180, 1000}
	} else {
		for _, d := range c.LookbackDays {
			if d <= 0 {
				panic("config: lookback_days entries must be > 0")
			}
		}
	}
	if c.SunVectorSampleSecs == 0 {
		c.SunVectorSampleSecs = 10000
	} else if c.SunVectorSampleSecs < 0 {
		panic("config: sun_vector_sample_secs must be >= 0")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	} else if !isValidLogLevel(c.LogLevel) {
		panic("config: log_level must be debug, info, warn, or error")
	}
	return c
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
