package config

import (
	"strings"
	"testing"
	"time"

	"github.com/yildizm/tcgen/internal/simulate"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Auth.LoginDelay != time.Second {
		t.Errorf("Expected login delay 1s, got %v", cfg.Auth.LoginDelay)
	}
	if cfg.Workflow.AnalysisDelay != 2500*time.Millisecond {
		t.Errorf("Expected analysis delay 2.5s, got %v", cfg.Workflow.AnalysisDelay)
	}
	if cfg.Workflow.GenerationDelay != 3*time.Second {
		t.Errorf("Expected generation delay 3s, got %v", cfg.Workflow.GenerationDelay)
	}
	if cfg.Workflow.PackageDelay != 2*time.Second {
		t.Errorf("Expected package delay 2s, got %v", cfg.Workflow.PackageDelay)
	}
	if cfg.Workflow.PreviewLimit != 1000 {
		t.Errorf("Expected preview limit 1000, got %d", cfg.Workflow.PreviewLimit)
	}
	if cfg.Output.Directory != "./tcgen-output" {
		t.Errorf("Expected output directory ./tcgen-output, got %s", cfg.Output.Directory)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative login delay",
			mutate:  func(c *Config) { c.Auth.LoginDelay = -time.Second },
			wantErr: true,
			errMsg:  "login_delay must be non-negative",
		},
		{
			name:    "negative package delay",
			mutate:  func(c *Config) { c.Workflow.PackageDelay = -1 },
			wantErr: true,
			errMsg:  "package_delay must be non-negative",
		},
		{
			name:   "zero delays are allowed",
			mutate: func(c *Config) { c.Workflow.AnalysisDelay, c.Workflow.GenerationDelay = 0, 0 },
		},
		{
			name:    "zero preview limit",
			mutate:  func(c *Config) { c.Workflow.PreviewLimit = 0 },
			wantErr: true,
			errMsg:  "preview_limit must be greater than 0",
		},
		{
			name:    "zero cache size",
			mutate:  func(c *Config) { c.Workflow.CacheSize = 0 },
			wantErr: true,
			errMsg:  "cache_size must be greater than 0",
		},
		{
			name:    "empty query types",
			mutate:  func(c *Config) { c.Generation.QueryTypes = nil },
			wantErr: true,
			errMsg:  "invalid generation defaults: missing required field",
		},
		{
			name:    "unknown complexity",
			mutate:  func(c *Config) { c.Generation.Complexity = "expert" },
			wantErr: true,
			errMsg:  "invalid option",
		},
		{
			name:    "empty output directory",
			mutate:  func(c *Config) { c.Output.Directory = "" },
			wantErr: true,
			errMsg:  "output directory must not be empty",
		},
		{
			name:    "invalid summary format",
			mutate:  func(c *Config) { c.Output.SummaryFormat = "invalid" },
			wantErr: true,
			errMsg:  "invalid summary format: invalid (must be one of: json, text, markdown, csv, pdf)",
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "invalid" },
			wantErr: true,
			errMsg:  "invalid color mode: invalid (must be one of: auto, always, never)",
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.Output.Theme = "sepia" },
			wantErr: true,
			errMsg:  "invalid theme: sepia (must be one of: auto, dark, light)",
		},
		{
			name:    "negative log backups",
			mutate:  func(c *Config) { c.Log.MaxBackups = -1 },
			wantErr: true,
			errMsg:  "log rotation limits must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestClock(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Clock() != simulate.Real() {
		t.Error("Expected real clock by default")
	}

	cfg.Workflow.NoDelay = true
	if cfg.Clock() != simulate.Instant() {
		t.Error("Expected instant clock when delays are disabled")
	}
}

func TestSampleConfigRoundTrip(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(SampleConfig()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config is invalid: %v", err)
	}
	if cfg.Workflow.AnalysisDelay != DefaultConfig().Workflow.AnalysisDelay {
		t.Errorf("Expected analysis delay %v, got %v", DefaultConfig().Workflow.AnalysisDelay, cfg.Workflow.AnalysisDelay)
	}

	var minimal Config
	if err := yaml.Unmarshal([]byte(MinimalSampleConfig()), &minimal); err != nil {
		t.Fatalf("minimal config does not parse: %v", err)
	}
	if len(minimal.Generation.QueryTypes) != 4 {
		t.Errorf("Expected 4 query types, got %v", minimal.Generation.QueryTypes)
	}
}
