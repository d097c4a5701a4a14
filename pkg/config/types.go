// Package config provides configuration loading and validation for plreport.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
// Every field is optional; command-line flags override config values.
type Config struct {
	// Output is the report destination path.
	Output string `yaml:"output,omitempty"`

	// Format selects the report format: xunit, json, or text.
	Format string `yaml:"format,omitempty"`

	// SuiteName is an optional name attached to the emitted test suite.
	SuiteName string `yaml:"suite_name,omitempty"`

	// KeepGoing continues scanning after a standalone compiler error
	// instead of stopping at the first one.
	KeepGoing bool `yaml:"keep_going,omitempty"`

	// BaseDir is the directory compiler-error paths are relativized
	// against. Defaults to the working directory at run time.
	BaseDir string `yaml:"base_dir,omitempty"`

	// Webhooks are CI endpoints the finished report is pushed to.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// Webhook trigger values.
const (
	WebhookTriggerOnFailures = "on_failures"
	WebhookTriggerAlways     = "always"
	WebhookTriggerNever      = "never"
)

// WebhookConfig defines a single webhook endpoint.
type WebhookConfig struct {
	// Name identifies the webhook in logs and errors.
	Name string `yaml:"name,omitempty"`

	// URL is the endpoint to POST the JSON report to.
	URL string `yaml:"url"`

	// Token is an optional bearer token. Supports ${VAR} expansion.
	Token string `yaml:"token,omitempty"`

	// Trigger controls when the webhook fires: on_failures (default),
	// always, or never.
	Trigger string `yaml:"trigger,omitempty"`

	// Timeout is the request timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
