package formatter

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/yildizm/tcgen/internal/generator"
)

// pdfFormatter renders the report as a printable PDF document
type pdfFormatter struct{}

// NewPDF creates a new PDF formatter. The output is binary and belongs in a file.
func NewPDF() Formatter {
	return &pdfFormatter{}
}

func (f *pdfFormatter) Format(report *Report) ([]byte, error) {
	m := maroto.New()

	m.AddRows(
		row.New(20).Add(
			col.New(12).Add(
				text.New("TEST CASE GENERATION REPORT", props.Text{
					Align: align.Center,
					Size:  18,
					Style: fontstyle.Bold,
				}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New("Generated "+report.GeneratedAt.Format("2006-01-02 15:04:05"), props.Text{
					Align: align.Center,
					Size:  10,
				}),
			),
		),
	)

	m.AddRows(section("SUMMARY"))
	m.AddRows(pair("Test Cases", fmt.Sprintf("%d", len(report.TestCases))))
	if report.Analysis != nil {
		m.AddRows(
			pair("Mappings Processed", formatNumber(report.Analysis.TotalMappings)),
			pair("Source Tables", fmt.Sprintf("%d", report.Analysis.SourceTables)),
			pair("Target Tables", fmt.Sprintf("%d", report.Analysis.TargetTables)),
		)
	}
	m.AddRows(
		pair("Mapping File", fileLabel(report.Files.Mapping)),
		pair("Template File", fileLabel(report.Files.Template)),
	)

	catalog := generator.DefaultCatalog()
	m.AddRows(
		section("CONFIGURATION"),
		pair("Output Format", generator.Label(catalog.OutputFormats, report.Config.OutputFormat)),
		pair("Query Complexity", generator.Label(catalog.Complexity, report.Config.Complexity)),
		pair("Comments Level", generator.Label(catalog.CommentLevels, report.Config.CommentLevel)),
		pair("Query Types", strings.Join(queryTypeLabels(report.Config.QueryTypes), ", ")),
	)

	m.AddRows(section("TEST CASES"))
	for _, tc := range report.TestCases {
		m.AddRows(
			row.New(8).Add(
				col.New(5).Add(text.New(tc.Name, props.Text{Style: fontstyle.Bold})),
				col.New(2).Add(text.New(tc.Type)),
				col.New(5).Add(text.New(tc.FileName(), props.Text{Size: 8})),
			),
			row.New(8).Add(
				col.New(12).Add(text.New(tc.Description, props.Text{Size: 8})),
			),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func section(title string) core.Row {
	return row.New(15).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Top: 5}),
		),
	)
}

func pair(label, value string) core.Row {
	return row.New(8).Add(
		col.New(5).Add(text.New(label)),
		col.New(7).Add(text.New(value, props.Text{Style: fontstyle.Bold})),
	)
}
