// Package config loads training configuration files.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/happyhackingspace/loglin/internal/minimize"
	"github.com/happyhackingspace/loglin/internal/report"
)

// Config holds the settings of a training run.
type Config struct {
	Lambda            float64 `yaml:"lambda"`
	Method            string  `yaml:"method"`
	MaxIterations     int     `yaml:"max_iterations"`
	GradientThreshold float64 `yaml:"gradient_threshold"`
	Basic             bool    `yaml:"basic"`
	Format            string  `yaml:"format"`
}

// Default returns unregularized training of a dense model with the default
// minimizer and text output.
func Default() Config {
	return Config{
		Method: minimize.DefaultMethod,
		Format: report.FormatText,
	}
}

// Load reads a YAML config file on top of the defaults. Keys missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Lambda < 0 {
		return errors.Errorf("lambda must be non-negative, got %v", c.Lambda)
	}
	if c.MaxIterations < 0 {
		return errors.Errorf("max_iterations must be non-negative, got %d", c.MaxIterations)
	}
	if c.GradientThreshold < 0 {
		return errors.Errorf("gradient_threshold must be non-negative, got %v", c.GradientThreshold)
	}
	return nil
}
