package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/go-termfmt"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// queryTypeLabels resolves selected query type ids to their catalog labels
func queryTypeLabels(ids []string) []string {
	catalog := generator.DefaultCatalog()
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = generator.Label(catalog.QueryTypes, id)
	}
	return labels
}

// getQueryTypeEmoji returns a marker per query type using go-termfmt
func getQueryTypeEmoji(queryType string, opts *termfmt.TerminalOptions) string {
	switch queryType {
	case "count":
		return termfmt.GetEmoji("statistics", opts)
	case "quality", "null":
		return termfmt.GetEmoji("warning", opts)
	case "business":
		return termfmt.GetEmoji("insight", opts)
	default:
		return termfmt.GetEmoji("info", opts)
	}
}

// fileLabel renders a file handle for summaries
func fileLabel(h *common.FileHandle) string {
	if h == nil {
		return "not uploaded"
	}
	return fmt.Sprintf("%s (%s)", h.Name, h.SizeKB())
}

// nextSteps lists follow-up actions for a finished run
func nextSteps(report *Report) []string {
	steps := []string{
		fmt.Sprintf("Run the %d generated queries against the target warehouse", len(report.TestCases)),
		"Investigate every query whose test_result is FAIL",
	}
	if report.Config.CommentLevel == "none" {
		steps = append(steps, "Regenerate with comments enabled before sharing with reviewers")
	}
	return steps
}

// flatten collapses a multi-line value onto one line
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
