package config

import (
	"fmt"
	"time"

	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/simulate"
)

// Config holds the complete application configuration
type Config struct {
	Version    string            `yaml:"version" json:"version"`
	Auth       AuthConfig        `yaml:"auth" json:"auth"`
	Workflow   WorkflowConfig    `yaml:"workflow" json:"workflow"`
	Generation common.TestConfig `yaml:"generation" json:"generation"`
	Output     OutputConfig      `yaml:"output" json:"output"`
	Log        LogConfig         `yaml:"log" json:"log"`
}

// AuthConfig configures the simulated sign-in round trips
type AuthConfig struct {
	LoginDelay  time.Duration `yaml:"login_delay" json:"login_delay"`
	SignupDelay time.Duration `yaml:"signup_delay" json:"signup_delay"`
}

// WorkflowConfig configures the simulated processing steps
type WorkflowConfig struct {
	AnalysisDelay   time.Duration `yaml:"analysis_delay" json:"analysis_delay"`
	GenerationDelay time.Duration `yaml:"generation_delay" json:"generation_delay"`
	PackageDelay    time.Duration `yaml:"package_delay" json:"package_delay"`
	PreviewLimit    int           `yaml:"preview_limit" json:"preview_limit"` // mapping rows rendered
	CacheSize       int           `yaml:"cache_size" json:"cache_size"`       // memoized analyses
	NoDelay         bool          `yaml:"no_delay" json:"no_delay"`           // skip every simulated delay
}

// OutputConfig configures downloads and display
type OutputConfig struct {
	Directory     string `yaml:"directory" json:"directory"`           // where downloads are written
	SummaryFormat string `yaml:"summary_format" json:"summary_format"` // text|json|markdown|csv|pdf
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Theme         string `yaml:"theme" json:"theme"`                   // auto|dark|light
}

// LogConfig configures the log file written while the TUI owns the terminal
type LogConfig struct {
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
	Compress   bool   `yaml:"compress" json:"compress"`
	Verbose    bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Auth: AuthConfig{
			LoginDelay:  1 * time.Second,
			SignupDelay: 1 * time.Second,
		},
		Workflow: WorkflowConfig{
			AnalysisDelay:   2500 * time.Millisecond,
			GenerationDelay: 3 * time.Second,
			PackageDelay:    2 * time.Second,
			PreviewLimit:    1000,
			CacheSize:       32,
		},
		Generation: common.TestConfig{
			OutputFormat: "text",
			QueryTypes:   []string{"count", "mapping", "quality", "business"},
			Complexity:   "intermediate",
			CommentLevel: "detailed",
		},
		Output: OutputConfig{
			Directory:     "./tcgen-output",
			SummaryFormat: "text",
			ColorMode:     "auto",
			Theme:         "auto",
		},
		Log: LogConfig{
			File:       "~/.cache/tcgen/tcgen.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateDelays(); err != nil {
		return err
	}
	if err := c.validateWorkflowConfig(); err != nil {
		return err
	}
	if err := c.validateGenerationConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateLogConfig(); err != nil {
		return err
	}
	return nil
}

// validateDelays rejects negative simulated delays
func (c *Config) validateDelays() error {
	delays := []struct {
		name  string
		value time.Duration
	}{
		{"login_delay", c.Auth.LoginDelay},
		{"signup_delay", c.Auth.SignupDelay},
		{"analysis_delay", c.Workflow.AnalysisDelay},
		{"generation_delay", c.Workflow.GenerationDelay},
		{"package_delay", c.Workflow.PackageDelay},
	}
	for _, d := range delays {
		if d.value < 0 {
			return fmt.Errorf("%s must be non-negative", d.name)
		}
	}
	return nil
}

func (c *Config) validateWorkflowConfig() error {
	if c.Workflow.PreviewLimit < 1 {
		return fmt.Errorf("preview_limit must be greater than 0")
	}
	if c.Workflow.CacheSize < 1 {
		return fmt.Errorf("cache_size must be greater than 0")
	}
	return nil
}

// validateGenerationConfig checks the headless defaults against the option catalog
func (c *Config) validateGenerationConfig() error {
	if err := common.ValidateTestConfig(&c.Generation); err != nil {
		return fmt.Errorf("invalid generation defaults: %w", err)
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.Directory == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.Output.SummaryFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
			"pdf":      true,
		}
		if !validFormats[c.Output.SummaryFormat] {
			return fmt.Errorf("invalid summary format: %s (must be one of: json, text, markdown, csv, pdf)", c.Output.SummaryFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"auto":  true,
			"dark":  true,
			"light": true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: auto, dark, light)", c.Output.Theme)
		}
	}
	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits must be non-negative")
	}
	return nil
}

// Clock returns the timer source for simulated delays
func (c *Config) Clock() simulate.Clock {
	if c.Workflow.NoDelay {
		return simulate.Instant()
	}
	return simulate.Real()
}
