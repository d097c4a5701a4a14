package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plreport.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output != "test_detail.xml" {
		t.Errorf("Output = %q, want test_detail.xml", cfg.Output)
	}
	if cfg.Format != "xunit" {
		t.Errorf("Format = %q, want xunit", cfg.Format)
	}
	if cfg.KeepGoing {
		t.Error("KeepGoing = true, want false")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
output: reports/out.xml
format: json
suite_name: nightly
keep_going: true
`)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output != "reports/out.xml" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.SuiteName != "nightly" {
		t.Errorf("SuiteName = %q", cfg.SuiteName)
	}
	if !cfg.KeepGoing {
		t.Error("KeepGoing = false, want true")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(context.Background(), "/nonexistent/plreport.yaml"); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "output: [unclosed")
	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestValidate_InvalidFormat(t *testing.T) {
	cfg := &Config{Format: "yaml"}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() expected error for invalid format")
	}
	if !strings.Contains(err.Error(), "format") {
		t.Errorf("error = %v, want format mention", err)
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Output != DefaultOutput || cfg.Format != DefaultFormat {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestValidate_Webhooks(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr bool
	}{
		{
			name:    "valid",
			webhook: WebhookConfig{URL: "https://ci.example.com/hook"},
		},
		{
			name:    "missing url",
			webhook: WebhookConfig{Token: "secret"},
			wantErr: true,
		},
		{
			name:    "bad scheme",
			webhook: WebhookConfig{URL: "ftp://ci.example.com/hook"},
			wantErr: true,
		},
		{
			name:    "bad trigger",
			webhook: WebhookConfig{URL: "https://ci.example.com/hook", Trigger: "sometimes"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Webhooks: []WebhookConfig{tt.webhook}}
			err := Validate(cfg)
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestValidate_WebhookDefaults(t *testing.T) {
	cfg := &Config{Webhooks: []WebhookConfig{{URL: "https://ci.example.com/hook"}}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	wh := cfg.Webhooks[0]
	if wh.Trigger != WebhookTriggerOnFailures {
		t.Errorf("Trigger = %q, want %q", wh.Trigger, WebhookTriggerOnFailures)
	}
	if wh.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", wh.Timeout)
	}
}

func TestValidate_ExpandsTokenEnvVar(t *testing.T) {
	t.Setenv("PLREPORT_TEST_TOKEN", "secret123")

	cfg := &Config{Webhooks: []WebhookConfig{{
		URL:   "https://ci.example.com/hook",
		Token: "${PLREPORT_TEST_TOKEN}",
	}}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Token != "secret123" {
		t.Errorf("Token = %q, want expanded value", cfg.Webhooks[0].Token)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvOutput, "env_output.xml")
	t.Setenv(EnvFormat, "text")

	path := writeConfig(t, "output: file_output.xml\nformat: json\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output != "env_output.xml" {
		t.Errorf("Output = %q, want env override", cfg.Output)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want env override", cfg.Format)
	}
}
