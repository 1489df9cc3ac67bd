package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/tcgen/internal/config"
	"gopkg.in/yaml.v3"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create, inspect and check configuration files",
		Long: `The configuration holds the simulated delays, the generation defaults used by
tcgen generate and the pre-filled Configure step, and the output settings.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand writes a sample file
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Long: `Write a documented sample with every option set to its default.
With --minimal only the generation defaults and the output directory are written.`,
		Example: `  tcgen config init
  tcgen config init --minimal --path ~/.config/tcgen/config.yaml
  tcgen config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".tcgen.yaml"
			}
			outputPath = config.ExpandPath(outputPath)

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}

			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			out := cmd.OutOrStdout()
			printStatus(out, "success", "Configuration file created at: %s", outputPath)
			if minimal {
				printStatus(out, "file", "Created minimal configuration with the generation defaults")
			} else {
				printStatus(out, "file", "Created full configuration with every option")
			}
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "path", "p", "", "output path for config file (default: .tcgen.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration tcgen would run with: defaults, then the config file,
then .env and TCGEN_* variables, then command-line flags.`,
		Example: `  tcgen config show
  tcgen config show --format json --no-delay`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand loads the configuration and reports the first problem
func newConfigValidateCommand() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file",
		Long: `Check that the file parses, that delays are not negative, that the generation
defaults come from the option catalog, and that summary format, color mode and
theme are known values.`,
		Example: `  tcgen config validate --config ./ci/tcgen.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				printStatus(out, "error", "Configuration validation failed:")
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			printStatus(out, "success", "Configuration is valid")
			printStatus(out, "info", "Configuration summary:")
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   Output Format: %s\n", cfg.Generation.OutputFormat)
			fmt.Fprintf(out, "   Query Types: %s\n", strings.Join(cfg.Generation.QueryTypes, ", "))
			fmt.Fprintf(out, "   Output Directory: %s\n", cfg.Output.Directory)
			fmt.Fprintf(out, "   Simulated Delays: %t\n", !cfg.Workflow.NoDelay)

			return nil
		},
	}

	return validateCmd
}

func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "List where tcgen looks for configuration",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			printStatus(out, "file", "Configuration file search paths (in priority order):")
			fmt.Fprintln(out)

			priority := []string{"Highest", "Medium", "Lowest"}
			for i, path := range config.GetConfigPaths() {
				exists := " (not found)"
				if fileExists(path) {
					exists = " " + GetEmoji("success") + " (exists)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
				fmt.Fprintln(out)
			}

			if currentConfig, found := config.FindConfigFile(); found {
				printStatus(out, "check", "Current config file: %s", currentConfig)
			} else {
				printStatus(out, "info", "No config file found, using defaults")
			}

			fmt.Fprintln(out)
			printStatus(out, "info", "Environment variables with the TCGEN_ prefix, including those in %s, override file settings", config.DotEnvFile)
		},
	}

	return pathCmd
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
