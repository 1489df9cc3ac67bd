package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/tcgen/internal/controller"
)

var watchDebounce time.Duration

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate test cases whenever the inputs change",
		Long: `Run the generate workflow once, then watch the mapping document and template
and run it again every time either file is written. Press Ctrl+C to stop watching.

Examples:
  tcgen watch -m mapping.csv -t template.csv --no-delay
  tcgen watch -m mapping.xlsx -t template.xlsx --query-types count,mapping`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	addPipelineFlags(cmd)
	cmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "wait this long after the last change before regenerating")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	for _, path := range []string{genMapping, genTemplate} {
		if err := validateWatchFilePath(path); err != nil {
			return fmt.Errorf("invalid file path %s: %w", path, err)
		}
	}

	ctrl, err := controller.FromConfig(cfg, newConsoleLogger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	opts := pipelineOptionsFromFlags(cfg)
	opts.Archive = true

	watcher, err := createWatcher(genMapping, genTemplate)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.ErrOrStderr()
	regenerate := func() {
		ctrl.ClearFiles()
		_, err := runPipeline(ctx, ctrl, out, opts)
		if merr := writeMetrics(ctrl); merr != nil {
			printStatus(out, "warning", "%v", merr)
		}
		if err != nil {
			printStatus(out, "error", "Generation failed: %v", err)
			return
		}
		printStatus(out, "watch", "Watching %s and %s, press Ctrl+C to stop", genMapping, genTemplate)
	}

	regenerate()
	return runWatchLoop(ctx, watcher, out, watchTargets(genMapping, genTemplate), watchDebounce, regenerate)
}

// createWatcher watches the directories holding files. Editors often replace a
// file instead of writing it in place, which a watch on the file itself misses.
func createWatcher(files ...string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	seen := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(filepath.Clean(file))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := watcher.Add(dir); err != nil {
			cleanupWatcher(watcher)
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return watcher, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// watchTargets returns the cleaned paths events are matched against
func watchTargets(files ...string) map[string]bool {
	targets := make(map[string]bool, len(files))
	for _, file := range files {
		targets[filepath.Clean(file)] = true
	}
	return targets
}

// runWatchLoop calls regenerate once events for targets stop arriving for debounce
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, out io.Writer, targets map[string]bool, debounce time.Duration, regenerate func()) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !relevantEvent(event, targets) {
				continue
			}
			printStatus(out, "file", "%s changed", filepath.Base(event.Name))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			regenerate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// relevantEvent reports whether event rewrote one of the watched files
func relevantEvent(event fsnotify.Event, targets map[string]bool) bool {
	if !targets[filepath.Clean(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
