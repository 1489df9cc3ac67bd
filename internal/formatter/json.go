package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/tcgen/internal/common"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	output := &JSONOutput{
		Summary:   createSummary(report),
		Files:     report.Files,
		Config:    report.Config,
		TestCases: report.TestCases,
	}
	if output.TestCases == nil {
		output.TestCases = []common.TestCase{}
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the document emitted by the JSON formatter
type JSONOutput struct {
	Summary   *SummaryOutput       `json:"summary"`
	Files     common.UploadedFiles `json:"files"`
	Config    common.TestConfig    `json:"config"`
	TestCases []common.TestCase    `json:"test_cases"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	GeneratedAt      time.Time `json:"generated_at"`
	User             string    `json:"user,omitempty"`
	TestCaseCount    int       `json:"test_case_count"`
	TotalMappings    int       `json:"total_mappings"`
	SourceTables     int       `json:"source_tables"`
	TargetTables     int       `json:"target_tables"`
	TemplateSections []string  `json:"template_sections,omitempty"`
}

// createSummary collects the run counters
func createSummary(report *Report) *SummaryOutput {
	summary := &SummaryOutput{
		GeneratedAt:   report.GeneratedAt,
		User:          report.User,
		TestCaseCount: len(report.TestCases),
	}

	if report.Analysis != nil {
		summary.TotalMappings = report.Analysis.TotalMappings
		summary.SourceTables = report.Analysis.SourceTables
		summary.TargetTables = report.Analysis.TargetTables
		summary.TemplateSections = report.Analysis.TemplateSections
	}

	return summary
}
