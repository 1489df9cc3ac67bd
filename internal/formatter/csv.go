package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// csvFormatter formats test cases as CSV, one row per case
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Test Case ID",
		"Name",
		"Type",
		"Query Type",
		"Description",
		"Complexity",
		"File",
		"SQL",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, tc := range report.TestCases {
		record := []string{
			tc.ID,
			tc.Name,
			tc.Type,
			tc.QueryType,
			escapeCSVString(tc.Description),
			report.Config.Complexity,
			tc.FileName(),
			strings.TrimSpace(tc.SQL),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// escapeCSVString flattens and truncates free text for a single cell
func escapeCSVString(s string) string {
	s = flatten(s)
	if len(s) > 100 {
		s = s[:97] + "..."
	}
	return s
}
