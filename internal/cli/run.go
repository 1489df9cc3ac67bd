package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/tcgen/internal/config"
	"github.com/yildizm/tcgen/internal/controller"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/ui"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the wizard is started without a terminal
var ErrNotTerminal = errors.New("interactive mode needs a terminal; use \"tcgen generate\" instead")

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the interactive wizard",
		Long: `Open the interactive test case wizard. This is also what tcgen does
when started without a subcommand.

While the wizard owns the terminal, log lines go to the rotating file
configured under log.file.

Examples:
  tcgen run
  tcgen run --no-delay --config ./team.yaml`,
		Args: cobra.NoArgs,
		RunE: runInteractive,
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closer, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	ctrl, err := controller.FromConfig(cfg, log)
	if err != nil {
		return err
	}

	ui.ApplyColorMode(cfg.Output.ColorMode)
	ui.ApplyThemeMode(cfg.Output.Theme)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting wizard")
	if err := ui.RunContext(ctx, ctrl, uiOptions(cfg)); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

func uiOptions(cfg *config.Config) ui.Options {
	opts := ui.DefaultOptions()
	opts.Defaults = cfg.Generation
	opts.PreviewLimit = cfg.Workflow.PreviewLimit
	return opts
}

// newFileLogger opens the rotating log file. An empty path disables logging.
func newFileLogger(cfg *config.Config) (*logger.Logger, io.Closer, error) {
	if cfg.Log.File == "" {
		return logger.Discard(), io.NopCloser(nil), nil
	}

	path := config.ExpandPath(cfg.Log.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	verboseLog := cfg.Log.Verbose
	log, closer := logger.NewFile("tcgen", func() bool { return verboseLog }, logger.FileOptions{
		Path:       path,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	return log, closer, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
