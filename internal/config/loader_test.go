package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
	if len(loader.envFiles) != 1 || loader.envFiles[0] != ".env" {
		t.Errorf("Expected .env to be loaded, got %v", loader.envFiles)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoader().WithEnvFiles()

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Output.SummaryFormat != "text" {
		t.Errorf("Expected default summary format text, got %s", cfg.Output.SummaryFormat)
	}
	if cfg.Generation.Complexity != "intermediate" {
		t.Errorf("Expected default complexity intermediate, got %s", cfg.Generation.Complexity)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
auth:
  login_delay: 250ms
workflow:
  generation_delay: 5s
  preview_limit: 50
generation:
  output_format: word
  query_types: ["null", business]
  comment_level: none
output:
  directory: /tmp/tcgen-test
  theme: dark
log:
  verbose: true
`

	err := os.WriteFile(configPath, []byte(configContent), 0o600)
	if err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := NewLoader().WithEnvFiles()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Auth.LoginDelay != 250*time.Millisecond {
		t.Errorf("Expected login delay 250ms, got %v", cfg.Auth.LoginDelay)
	}
	if cfg.Auth.SignupDelay != time.Second {
		t.Errorf("Expected signup delay to keep its default, got %v", cfg.Auth.SignupDelay)
	}
	if cfg.Workflow.GenerationDelay != 5*time.Second {
		t.Errorf("Expected generation delay 5s, got %v", cfg.Workflow.GenerationDelay)
	}
	if cfg.Workflow.PreviewLimit != 50 {
		t.Errorf("Expected preview limit 50, got %d", cfg.Workflow.PreviewLimit)
	}
	if cfg.Generation.OutputFormat != "word" {
		t.Errorf("Expected output format word, got %s", cfg.Generation.OutputFormat)
	}
	if !reflect.DeepEqual(cfg.Generation.QueryTypes, []string{"null", "business"}) {
		t.Errorf("Expected query types [null business], got %v", cfg.Generation.QueryTypes)
	}
	if cfg.Generation.Complexity != "intermediate" {
		t.Errorf("Expected complexity to keep its default, got %s", cfg.Generation.Complexity)
	}
	if cfg.Output.Directory != "/tmp/tcgen-test" {
		t.Errorf("Expected output directory /tmp/tcgen-test, got %s", cfg.Output.Directory)
	}
	if !cfg.Log.Verbose {
		t.Errorf("Expected verbose to be true")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	err := os.WriteFile(configPath, []byte("generation:\n  output_format: pdf\n"), 0o600)
	if err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	_, err = NewLoader().WithEnvFiles().LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid-config.yaml")

	invalidConfigContent := `version: "1.0"
output:
  directory: "unterminated
  theme: dark
`

	err := os.WriteFile(configPath, []byte(invalidConfigContent), 0o600)
	if err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := NewLoader()
	_, err = loader.LoadConfig(configPath)
	if err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TCGEN_AUTH_SIGNUP_DELAY", "2s")
	t.Setenv("TCGEN_WORKFLOW_NO_DELAY", "true")
	t.Setenv("TCGEN_WORKFLOW_CACHE_SIZE", "4")
	t.Setenv("TCGEN_GENERATION_QUERY_TYPES", "count, null ,")
	t.Setenv("TCGEN_OUTPUT_DIRECTORY", "/srv/out")
	t.Setenv("TCGEN_LOG_VERBOSE", "true")

	loader := NewLoader()
	cfg := DefaultConfig()

	err := loader.applyEnvOverrides(cfg)
	if err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Auth.SignupDelay != 2*time.Second {
		t.Errorf("Expected signup delay 2s, got %v", cfg.Auth.SignupDelay)
	}
	if !cfg.Workflow.NoDelay {
		t.Errorf("Expected no_delay to be true")
	}
	if cfg.Workflow.CacheSize != 4 {
		t.Errorf("Expected cache size 4, got %d", cfg.Workflow.CacheSize)
	}
	expectedTypes := []string{"count", "null"}
	if !reflect.DeepEqual(cfg.Generation.QueryTypes, expectedTypes) {
		t.Errorf("Expected query types %v, got %v", expectedTypes, cfg.Generation.QueryTypes)
	}
	if cfg.Output.Directory != "/srv/out" {
		t.Errorf("Expected output directory /srv/out, got %s", cfg.Output.Directory)
	}
	if !cfg.Log.Verbose {
		t.Errorf("Expected verbose to be true")
	}
}

func TestDotEnvFeedsOverrides(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	err := os.WriteFile(envPath, []byte("TCGEN_OUTPUT_THEME=light\n"), 0o600)
	if err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	// registered so the variable set by godotenv is removed afterwards
	t.Setenv("TCGEN_OUTPUT_THEME", "")
	if err := os.Unsetenv("TCGEN_OUTPUT_THEME"); err != nil {
		t.Fatalf("Failed to unset: %v", err)
	}

	cfg, err := NewLoader().WithEnvFiles(envPath, filepath.Join(t.TempDir(), "missing.env")).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Output.Theme != "light" {
		t.Errorf("Expected theme light from env file, got %s", cfg.Output.Theme)
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "TCGEN_WORKFLOW_PREVIEW_LIMIT", "not-a-number"},
		{"invalid bool", "TCGEN_LOG_VERBOSE", "not-a-bool"},
		{"invalid duration", "TCGEN_AUTH_LOGIN_DELAY", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			loader := NewLoader()
			cfg := DefaultConfig()

			err := loader.applyEnvOverrides(cfg)
			if err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	var duration time.Duration

	err := parseDuration("30s", &duration)
	if err != nil {
		t.Errorf("Failed to parse duration: %v", err)
	}
	if duration != 30*time.Second {
		t.Errorf("Expected 30s, got %v", duration)
	}

	err = parseDuration("invalid", &duration)
	if err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}
}

func TestParseInt(t *testing.T) {
	var value int

	err := parseInt("42", &value)
	if err != nil {
		t.Errorf("Failed to parse int: %v", err)
	}
	if value != 42 {
		t.Errorf("Expected 42, got %d", value)
	}

	err = parseInt("not-a-number", &value)
	if err == nil {
		t.Error("Expected error for invalid int, but got none")
	}
}

func TestParseBool(t *testing.T) {
	var value bool

	err := parseBool("true", &value)
	if err != nil {
		t.Errorf("Failed to parse bool: %v", err)
	}
	if !value {
		t.Errorf("Expected true, got %v", value)
	}

	err = parseBool("false", &value)
	if err != nil {
		t.Errorf("Failed to parse bool: %v", err)
	}
	if value {
		t.Errorf("Expected false, got %v", value)
	}

	err = parseBool("not-a-bool", &value)
	if err == nil {
		t.Error("Expected error for invalid bool, but got none")
	}
}

func TestFindConfigFile(t *testing.T) {
	// Test when no config file exists
	_, found := FindConfigFile()
	if found {
		t.Error("Expected no config file to be found, but one was found")
	}

	// Create a temporary config file in current directory
	tempConfigPath := "./.tcgen.yaml"
	err := os.WriteFile(tempConfigPath, []byte("version: 1.0"), 0o600)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	defer func() { _ = os.Remove(tempConfigPath) }()

	configPath, found := FindConfigFile()
	if !found {
		t.Error("Expected config file to be found, but none was found")
	}
	if configPath != tempConfigPath {
		t.Errorf("Expected config path %s, got %s", tempConfigPath, configPath)
	}
}

func TestFileExists(t *testing.T) {
	// Test with non-existent file
	if fileExists("/path/that/does/not/exist") {
		t.Error("Expected file to not exist, but fileExists returned true")
	}

	// Create a temporary file
	tempFile := filepath.Join(t.TempDir(), "test-file")
	err := os.WriteFile(tempFile, []byte("test"), 0o600)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if !fileExists(tempFile) {
		t.Error("Expected file to exist, but fileExists returned false")
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid yaml file",
			path:    "config.yaml",
			wantErr: false,
		},
		{
			name:    "valid yml file",
			path:    "config.yml",
			wantErr: false,
		},
		{
			name:    "path traversal attempt",
			path:    "../../../etc/passwd",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "non-yaml file",
			path:    "config.txt",
			wantErr: true,
			errMsg:  "config file must have .yaml or .yml extension",
		},
		{
			name:    "system file access",
			path:    "/etc/passwd.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
		{
			name:    "proc filesystem access",
			path:    "/proc/version.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
		{
			name:    "relative path with valid extension",
			path:    "./configs/app.yaml",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		})
	}
}
