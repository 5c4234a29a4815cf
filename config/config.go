// Package config loads runner configuration for schedctl from a YAML
// file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	sk "github.com/avk/schedkit"
)

// Config holds tunables for the schedctl runner loop. All durations
// are expressed in milliseconds in the file.
type Config struct {
	// PollIntervalMs is the minimum pause between idle polls.
	PollIntervalMs int `yaml:"poll_interval_ms"`

	// IdleBackoffMaxMs caps the growing pause while the queue stays
	// idle.
	IdleBackoffMaxMs int `yaml:"idle_backoff_max_ms"`

	// Retry configures the scheduler's default retry policy.
	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig mirrors schedkit.RetryPolicy in file-friendly units.
type RetryConfig struct {
	MaxAttempts int     `yaml:"max_attempts"`
	InitialMs   int     `yaml:"initial_ms"`
	Multiplier  float64 `yaml:"multiplier"`
	MaxMs       int     `yaml:"max_ms"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		PollIntervalMs:   50,
		IdleBackoffMaxMs: 2000,
	}
}

// Load reads a YAML config file from the given path and returns the
// parsed Config. Omitted fields fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all config values are valid.
func (c *Config) validate() error {
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMs)
	}
	if c.IdleBackoffMaxMs < c.PollIntervalMs {
		return fmt.Errorf("idle_backoff_max_ms (%d) must not be below poll_interval_ms (%d)",
			c.IdleBackoffMaxMs, c.PollIntervalMs)
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.max_attempts must not be negative, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.Multiplier < 0 {
		return fmt.Errorf("retry.multiplier must not be negative, got %v", c.Retry.Multiplier)
	}
	return nil
}

// PollInterval returns the idle poll pause as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// IdleBackoffMax returns the idle backoff cap as a duration.
func (c *Config) IdleBackoffMax() time.Duration {
	return time.Duration(c.IdleBackoffMaxMs) * time.Millisecond
}

// RetryPolicy converts the retry section to a schedkit policy. Zero
// fields stay zero so the scheduler can fill its own defaults.
func (c *Config) RetryPolicy() sk.RetryPolicy {
	return sk.RetryPolicy{
		MaxAttempts: c.Retry.MaxAttempts,
		Initial:     time.Duration(c.Retry.InitialMs) * time.Millisecond,
		Multiplier:  c.Retry.Multiplier,
		Max:         time.Duration(c.Retry.MaxMs) * time.Millisecond,
	}
}
