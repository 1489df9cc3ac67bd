// Package export writes generated test cases to disk as single files or a ZIP package.
package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/formatter"
	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/simulate"
)

const (
	// DefaultDelay is the simulated packaging time
	DefaultDelay = 2 * time.Second

	// BriefFileName is the archive entry holding the generation brief
	BriefFileName = "generation-brief.txt"
)

// ErrNoTestCases is returned when there is nothing to export
var ErrNoTestCases = errors.New("no test cases to export")

// Exporter writes downloads into one output directory
type Exporter struct {
	dir    string
	delay  time.Duration
	clock  simulate.Clock
	logger *logger.Logger
}

// New creates an exporter writing into dir
func New(dir string, clock simulate.Clock, delay time.Duration, log *logger.Logger) *Exporter {
	if clock == nil {
		clock = simulate.Real()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Exporter{dir: dir, delay: delay, clock: clock, logger: log.WithComponent("export")}
}

// Dir returns the output directory
func (e *Exporter) Dir() string {
	return e.dir
}

// WriteTestCase writes tc as <id>.sql and returns the file path
func (e *Exporter) WriteTestCase(tc common.TestCase) (string, error) {
	if tc.ID == "" {
		return "", fmt.Errorf("test case has no id")
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(e.dir, tc.FileName())
	if err := os.WriteFile(path, []byte(tc.SQL+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tc.FileName(), err)
	}

	e.logger.InfoWithFields("test case written", []logger.Field{logger.F("path", path)})
	return path, nil
}

// Package waits for the packaging delay, then writes every test case, the summary and the brief into one ZIP
func (e *Exporter) Package(ctx context.Context, report *formatter.Report) (string, error) {
	if report == nil || len(report.TestCases) == 0 {
		return "", ErrNoTestCases
	}

	if err := simulate.Wait(ctx, e.clock, e.delay); err != nil {
		return "", fmt.Errorf("packaging interrupted: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("test-cases-%s.zip", uuid.NewString()[:8])
	path := filepath.Join(e.dir, name)

	tmp, err := os.CreateTemp(e.dir, ".tcgen-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create package: %w", err)
	}
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmp.Name())
	}()

	if err := WriteArchive(tmp, report); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close package: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to finalize package: %w", err)
	}

	e.logger.InfoWithFields("package written", []logger.Field{
		logger.F("path", path),
		logger.Count(len(report.TestCases)),
	})
	return path, nil
}

// WriteArchive streams the ZIP package for report to w
func WriteArchive(w io.Writer, report *formatter.Report) error {
	zw := zip.NewWriter(w)

	for _, tc := range report.TestCases {
		if err := addEntry(zw, tc.FileName(), []byte(tc.SQL+"\n"), report.GeneratedAt); err != nil {
			return err
		}
	}

	summaryFormatter, summaryName := formatter.ForOutputFormat(report.Config.OutputFormat)
	summary, err := summaryFormatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := addEntry(zw, summaryName, summary, report.GeneratedAt); err != nil {
		return err
	}

	brief := generator.Brief(report.Analysis, report.Config)
	if err := addEntry(zw, BriefFileName, []byte(brief), report.GeneratedAt); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

func addEntry(zw *zip.Writer, name string, content []byte, modified time.Time) error {
	if modified.IsZero() {
		modified = time.Now()
	}
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := fw.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
