package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/tcgen/internal/generator"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Test Case Generation Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.writeTableOfContents(&b)
	f.writeSummaryTable(&b, report)
	f.writeConfiguration(&b, report)
	f.writeTestCases(&b, report)
	f.writeNextSteps(&b, report)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Summary](#summary)\n")
	b.WriteString("- [Configuration](#configuration)\n")
	b.WriteString("- [Test Cases](#test-cases)\n")
	b.WriteString("- [Next Steps](#next-steps)\n\n")
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	b.WriteString("## Summary\n\n")

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Test Cases | %d |\n", len(report.TestCases))
	if report.Analysis != nil {
		fmt.Fprintf(b, "| Mappings Processed | %s |\n", formatNumber(report.Analysis.TotalMappings))
		fmt.Fprintf(b, "| Source Tables | %d |\n", report.Analysis.SourceTables)
		fmt.Fprintf(b, "| Target Tables | %d |\n", report.Analysis.TargetTables)
	}
	fmt.Fprintf(b, "| Mapping File | %s |\n", fileLabel(report.Files.Mapping))
	fmt.Fprintf(b, "| Template File | %s |\n\n", fileLabel(report.Files.Template))
}

func (f *markdownFormatter) writeConfiguration(b *strings.Builder, report *Report) {
	catalog := generator.DefaultCatalog()
	b.WriteString("## Configuration\n\n")
	fmt.Fprintf(b, "- **Output Format**: %s\n", generator.Label(catalog.OutputFormats, report.Config.OutputFormat))
	fmt.Fprintf(b, "- **Query Complexity**: %s\n", generator.Label(catalog.Complexity, report.Config.Complexity))
	fmt.Fprintf(b, "- **Comments Level**: %s\n", generator.Label(catalog.CommentLevels, report.Config.CommentLevel))
	fmt.Fprintf(b, "- **Query Types**: %s\n\n", strings.Join(queryTypeLabels(report.Config.QueryTypes), ", "))
}

func (f *markdownFormatter) writeTestCases(b *strings.Builder, report *Report) {
	b.WriteString("## Test Cases\n\n")

	for _, tc := range report.TestCases {
		fmt.Fprintf(b, "### %s\n", tc.Name)
		fmt.Fprintf(b, "**Type**: %s | **File**: `%s`\n\n", tc.Type, tc.FileName())
		fmt.Fprintf(b, "%s\n\n", tc.Description)
		b.WriteString("```sql\n")
		b.WriteString(tc.SQL)
		b.WriteString("\n```\n\n")
	}
}

func (f *markdownFormatter) writeNextSteps(b *strings.Builder, report *Report) {
	b.WriteString("## Next Steps\n\n")

	for i, step := range nextSteps(report) {
		fmt.Fprintf(b, "%d. %s\n", i+1, step)
	}

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by tcgen*\n")
}
