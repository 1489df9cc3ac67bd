package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.tcgen.yaml",               // Project-specific config (highest priority)
	"~/.config/tcgen/config.yaml", // User config
	"/etc/tcgen/config.yaml",      // System config (lowest priority)
}

// DotEnvFile is loaded into the environment before TCGEN_* overrides are read
const DotEnvFile = ".env"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	envFiles    []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		envFiles:    []string{DotEnvFile},
	}
}

// WithEnvFiles replaces the dotenv files read before environment overrides
func (l *Loader) WithEnvFiles(files ...string) *Loader {
	l.envFiles = files
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables, including those from .env
// 3. ./.tcgen.yaml
// 4. ~/.config/tcgen/config.yaml
// 5. /etc/tcgen/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, expandPath(customPath)); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	l.loadEnvFiles()

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadEnvFiles loads existing dotenv files. Variables already set win.
func (l *Loader) loadEnvFiles() {
	var existing []string
	for _, f := range l.envFiles {
		if fileExists(f) {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return
	}
	if err := godotenv.Load(existing...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", strings.Join(existing, ", "), err)
	}
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"TCGEN_AUTH_LOGIN_DELAY":  func(v string) error { return parseDuration(v, &config.Auth.LoginDelay) },
		"TCGEN_AUTH_SIGNUP_DELAY": func(v string) error { return parseDuration(v, &config.Auth.SignupDelay) },

		"TCGEN_WORKFLOW_ANALYSIS_DELAY":   func(v string) error { return parseDuration(v, &config.Workflow.AnalysisDelay) },
		"TCGEN_WORKFLOW_GENERATION_DELAY": func(v string) error { return parseDuration(v, &config.Workflow.GenerationDelay) },
		"TCGEN_WORKFLOW_PACKAGE_DELAY":    func(v string) error { return parseDuration(v, &config.Workflow.PackageDelay) },
		"TCGEN_WORKFLOW_PREVIEW_LIMIT":    func(v string) error { return parseInt(v, &config.Workflow.PreviewLimit) },
		"TCGEN_WORKFLOW_CACHE_SIZE":       func(v string) error { return parseInt(v, &config.Workflow.CacheSize) },
		"TCGEN_WORKFLOW_NO_DELAY":         func(v string) error { return parseBool(v, &config.Workflow.NoDelay) },

		"TCGEN_GENERATION_OUTPUT_FORMAT": func(v string) error { config.Generation.OutputFormat = v; return nil },
		"TCGEN_GENERATION_COMPLEXITY":    func(v string) error { config.Generation.Complexity = v; return nil },
		"TCGEN_GENERATION_COMMENT_LEVEL": func(v string) error { config.Generation.CommentLevel = v; return nil },

		"TCGEN_OUTPUT_DIRECTORY":      func(v string) error { config.Output.Directory = v; return nil },
		"TCGEN_OUTPUT_SUMMARY_FORMAT": func(v string) error { config.Output.SummaryFormat = v; return nil },
		"TCGEN_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"TCGEN_OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },

		"TCGEN_LOG_FILE":     func(v string) error { config.Log.File = v; return nil },
		"TCGEN_LOG_VERBOSE":  func(v string) error { return parseBool(v, &config.Log.Verbose) },
		"TCGEN_LOG_COMPRESS": func(v string) error { return parseBool(v, &config.Log.Compress) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// comma-separated list
	if types := os.Getenv("TCGEN_GENERATION_QUERY_TYPES"); types != "" {
		config.Generation.QueryTypes = splitList(types)
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	return expandPath(path)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeAuthConfig(&dst.Auth, &src.Auth)
	mergeWorkflowConfig(&dst.Workflow, &src.Workflow)
	mergeGenerationConfig(dst, src)
	mergeOutputConfig(&dst.Output, &src.Output)
	mergeLogConfig(&dst.Log, &src.Log)
}

func mergeAuthConfig(dst, src *AuthConfig) {
	mergeDuration(&dst.LoginDelay, src.LoginDelay)
	mergeDuration(&dst.SignupDelay, src.SignupDelay)
}

func mergeWorkflowConfig(dst, src *WorkflowConfig) {
	mergeDuration(&dst.AnalysisDelay, src.AnalysisDelay)
	mergeDuration(&dst.GenerationDelay, src.GenerationDelay)
	mergeDuration(&dst.PackageDelay, src.PackageDelay)
	if src.PreviewLimit != 0 {
		dst.PreviewLimit = src.PreviewLimit
	}
	if src.CacheSize != 0 {
		dst.CacheSize = src.CacheSize
	}
	if src.NoDelay {
		dst.NoDelay = true
	}
}

func mergeGenerationConfig(dst, src *Config) {
	if src.Generation.OutputFormat != "" {
		dst.Generation.OutputFormat = src.Generation.OutputFormat
	}
	if len(src.Generation.QueryTypes) > 0 {
		dst.Generation.QueryTypes = src.Generation.QueryTypes
	}
	if src.Generation.Complexity != "" {
		dst.Generation.Complexity = src.Generation.Complexity
	}
	if src.Generation.CommentLevel != "" {
		dst.Generation.CommentLevel = src.Generation.CommentLevel
	}
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.Directory != "" {
		dst.Directory = src.Directory
	}
	if src.SummaryFormat != "" {
		dst.SummaryFormat = src.SummaryFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
}

func mergeLogConfig(dst, src *LogConfig) {
	if src.File != "" {
		dst.File = src.File
	}
	if src.MaxSizeMB != 0 {
		dst.MaxSizeMB = src.MaxSizeMB
	}
	if src.MaxBackups != 0 {
		dst.MaxBackups = src.MaxBackups
	}
	if src.MaxAgeDays != 0 {
		dst.MaxAgeDays = src.MaxAgeDays
	}
	// booleans can only be switched on from a file; env overrides switch them off
	if src.Compress {
		dst.Compress = true
	}
	if src.Verbose {
		dst.Verbose = true
	}
}

func mergeDuration(dst *time.Duration, src time.Duration) {
	if src != 0 {
		*dst = src
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
