// Package cfgconfig loads CLI-level defaults from a small TOML file,
// grounded on internal/tqw's toml.Decode usage in the teacher repo.
package cfgconfig

import (
	"github.com/BurntSushi/toml"

	"github.com/dekarrin/cfgcyk/internal/grammar"
)

// Config carries the defaults cmd/cfgcyk falls back to when not overridden
// by flags.
type Config struct {
	// SampleCount is how many samples to draw when -n/--samples is not
	// given on the command line.
	SampleCount int `toml:"sample_count"`

	// Seed seeds the sample generator's RNG. Zero means "use an
	// unpredictable seed."
	Seed int64 `toml:"seed"`

	// MaxSampleSteps bounds how many expansion steps a single sample
	// derivation may take before it's considered non-terminating (spec §7,
	// §9).
	MaxSampleSteps int `toml:"max_sample_steps"`
}

// Default returns the built-in configuration used when no config file is
// given.
func Default() Config {
	return Config{
		SampleCount:    5,
		Seed:           0,
		MaxSampleSteps: grammar.DefaultMaxSampleSteps,
	}
}

// Load reads and decodes a TOML config file at path, filling in any field
// left at its zero value from Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.MaxSampleSteps <= 0 {
		cfg.MaxSampleSteps = grammar.DefaultMaxSampleSteps
	}
	if cfg.SampleCount <= 0 {
		cfg.SampleCount = Default().SampleCount
	}
	return cfg, nil
}
