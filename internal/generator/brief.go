package generator

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-promptfmt"
	"github.com/yildizm/tcgen/internal/common"
)

// briefSampleRows caps the mapping rows quoted in a brief
const briefSampleRows = 10

// BriefPattern describes a generation request the way a SQL-writing model would receive it
type BriefPattern struct {
	promptfmt.BasePattern
	Analysis   *common.AnalysisResult
	Config     common.TestConfig
	SampleSize int
}

// NewBriefPattern creates a pattern for analysis and cfg
func NewBriefPattern(analysis *common.AnalysisResult, cfg common.TestConfig) *BriefPattern {
	return &BriefPattern{
		BasePattern: promptfmt.BasePattern{
			Description: "Requests SQL validation test cases for a source-to-target data mapping",
			Tags:        []string{"sql", "data-testing", "etl"},
		},
		Analysis:   analysis,
		Config:     cfg,
		SampleSize: briefSampleRows,
	}
}

// WithSampleSize sets how many mapping rows are quoted
func (bp *BriefPattern) WithSampleSize(size int) *BriefPattern {
	bp.SampleSize = size
	return bp
}

// Build assembles the prompt
func (bp *BriefPattern) Build() *promptfmt.Prompt {
	catalog := defaultCatalog
	types := make([]string, 0, len(bp.Config.QueryTypes))
	for _, q := range bp.Config.QueryTypes {
		types = append(types, Label(catalog.QueryTypes, q))
	}

	pb := promptfmt.New().
		System("You are a data warehouse QA engineer. Write SQL validation queries that return a PASS or FAIL test_result column.").
		User("Generate %s test cases (%s) with %s for a mapping of %d columns. Deliver them as %s.",
			Label(catalog.Complexity, bp.Config.Complexity),
			strings.Join(types, ", "),
			strings.ToLower(Label(catalog.CommentLevels, bp.Config.CommentLevel)),
			bp.totalMappings(),
			Label(catalog.OutputFormats, bp.Config.OutputFormat))

	if bp.Analysis != nil {
		pb.AddContext("tables", fmt.Sprintf("%d source tables, %d target tables",
			bp.Analysis.SourceTables, bp.Analysis.TargetTables))
		if len(bp.Analysis.TemplateSections) > 0 {
			pb.AddContext("template_sections", strings.Join(bp.Analysis.TemplateSections, "; "))
		}
		bp.addMappingSample(pb)
	}

	type briefResponse struct {
		TestCases []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			QueryType   string `json:"query_type"`
			Description string `json:"description"`
			SQL         string `json:"sql"`
		} `json:"test_cases"`
	}

	return pb.ExpectJSON(&briefResponse{}).Build()
}

func (bp *BriefPattern) totalMappings() int {
	if bp.Analysis == nil {
		return 0
	}
	return bp.Analysis.TotalMappings
}

func (bp *BriefPattern) addMappingSample(pb *promptfmt.PromptBuilder) {
	n := min(bp.SampleSize, len(bp.Analysis.MappingPreview))
	if n <= 0 {
		return
	}

	var b strings.Builder
	b.WriteString("Sample mappings:\n")
	for _, row := range bp.Analysis.MappingPreview[:n] {
		fmt.Fprintf(&b, "- %s.%s -> %s.%s (%s)\n",
			row.SourceTable, row.SourceColumn, row.TargetTable, row.TargetColumn, row.TransformationType)
	}
	pb.AddContext("mapping_sample", b.String())
}

// Brief renders the generation brief as plain text
func Brief(analysis *common.AnalysisResult, cfg common.TestConfig) string {
	prompt := NewBriefPattern(analysis, cfg).Build()

	var b strings.Builder
	if prompt.SystemPrompt != "" {
		b.WriteString("# System\n")
		b.WriteString(prompt.SystemPrompt)
		b.WriteString("\n\n# Request\n")
	}
	b.WriteString(prompt.String())
	b.WriteByte('\n')
	return b.String()
}
