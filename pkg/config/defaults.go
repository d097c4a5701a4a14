package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultOutput         = "test_detail.xml"
	DefaultFormat         = "xunit"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvOutput = "PLREPORT_OUTPUT"
	EnvFormat = "PLREPORT_FORMAT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: DefaultOutput,
		Format: DefaultFormat,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if out := os.Getenv(EnvOutput); out != "" {
		c.Output = out
	}
	if format := os.Getenv(EnvFormat); format != "" {
		c.Format = format
	}
}
