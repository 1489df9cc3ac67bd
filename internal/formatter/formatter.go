// Package formatter renders a generation run as text, JSON, Markdown, CSV or PDF.
package formatter

import (
	"errors"
	"fmt"
	"time"

	"github.com/yildizm/tcgen/internal/common"
)

// ErrUnknownFormat is returned for a format name New does not know
var ErrUnknownFormat = errors.New("unknown format")

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Report is everything known about one generation run
type Report struct {
	GeneratedAt time.Time              `json:"generated_at"`
	User        string                 `json:"user,omitempty"`
	Files       common.UploadedFiles   `json:"files"`
	Analysis    *common.AnalysisResult `json:"-"`
	Config      common.TestConfig      `json:"config"`
	TestCases   []common.TestCase      `json:"test_cases"`
}

// Names lists the formats New accepts
var Names = []string{"text", "json", "markdown", "csv", "pdf"}

// New returns the formatter registered under name
func New(name string, color bool) (Formatter, error) {
	switch name {
	case "text", "terminal":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	case "pdf":
		return NewPDF(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ForOutputFormat picks the summary formatter and file name for a configured output format.
// Spreadsheets are approximated by CSV and documents by Markdown.
func ForOutputFormat(outputFormat string) (Formatter, string) {
	switch outputFormat {
	case "csv":
		return NewCSV(), "summary.csv"
	case "excel":
		return NewCSV(), "summary-sheet.csv"
	case "word":
		return NewMarkdown(), "summary.md"
	default:
		return NewPlainText(), "summary.txt"
	}
}
