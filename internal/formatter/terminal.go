package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

// NewPlainText creates a terminal formatter without color or emoji, for files
func NewPlainText() Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = false
	opts.Emoji = false
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeStatistics(&b, report)
	f.writeFiles(&b, report)
	f.writeTestCases(&b, report)
	f.writeConfiguration(&b, report)
	f.writeNextSteps(&b, report)

	return []byte(b.String()), nil
}

// writeHeader writes the boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Test Case Generation Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeStatistics writes run counters with tree-style formatting using go-termfmt
func (f *terminalFormatter) writeStatistics(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Statistics\n")

	mappings := "N/A"
	if report.Analysis != nil {
		mappings = formatNumber(report.Analysis.TotalMappings)
	}

	items := []termfmt.TreeItem{
		{Label: "Test Cases Generated", Value: fmt.Sprintf("%d", len(report.TestCases))},
		{Label: "Mappings Processed", Value: mappings},
		{Label: "Query Types Used", Value: fmt.Sprintf("%d", len(report.Config.QueryTypes))},
		{Label: "Output Format", Value: strings.ToUpper(report.Config.OutputFormat), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeFiles writes the uploaded file pair
func (f *terminalFormatter) writeFiles(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("info", f.opts)
	b.WriteString(symbol + " Files\n")

	items := []termfmt.TreeItem{
		{Label: "Mapping", Value: fileLabel(report.Files.Mapping)},
		{Label: "Template", Value: fileLabel(report.Files.Template), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeTestCases lists the generated cases in generation order
func (f *terminalFormatter) writeTestCases(b *strings.Builder, report *Report) {
	opts := termfmt.DefaultOptions()
	opts.Emoji = false
	symbol := termfmt.GetEmoji("help", opts)
	b.WriteString(symbol + " Generated Test Cases\n")

	for i, tc := range report.TestCases {
		marker := getQueryTypeEmoji(tc.QueryType, f.opts)
		branch := "├─"
		if i == len(report.TestCases)-1 {
			branch = "└─"
		}
		fmt.Fprintf(b, "%s %s %s [%s] %s\n", branch, marker, tc.Name, tc.Type, tc.FileName())
	}
	b.WriteString("\n")
}

// writeConfiguration writes the settings the run used
func (f *terminalFormatter) writeConfiguration(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Configuration Used\n")

	catalog := generator.DefaultCatalog()
	items := []termfmt.TreeItem{
		{Label: "Output Format", Value: generator.Label(catalog.OutputFormats, report.Config.OutputFormat)},
		{Label: "Query Complexity", Value: generator.Label(catalog.Complexity, report.Config.Complexity)},
		{Label: "Comments Level", Value: generator.Label(catalog.CommentLevels, report.Config.CommentLevel)},
		{
			Label: "Query Types",
			Value: fmt.Sprintf("%d selected", len(report.Config.QueryTypes)),
			Children: func() []termfmt.TreeItem {
				labels := queryTypeLabels(report.Config.QueryTypes)
				children := make([]termfmt.TreeItem, len(labels))
				for i, l := range labels {
					children[i] = termfmt.TreeItem{Label: l, Last: i == len(labels)-1}
				}
				return children
			}(),
			Last: true,
		},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeNextSteps writes the follow-up list
func (f *terminalFormatter) writeNextSteps(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " Next Steps\n")

	for _, step := range nextSteps(report) {
		b.WriteString("• " + step + "\n")
	}
}
