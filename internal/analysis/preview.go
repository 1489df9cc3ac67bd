package analysis

import (
	"fmt"

	"github.com/yildizm/tcgen/internal/common"
)

// Preview returns at most limit rows of the mapping preview and the caption shown above them.
// A limit of zero or less uses PreviewLimit.
func Preview(result *common.AnalysisResult, limit int) ([]common.MappingRow, string) {
	if result == nil {
		return nil, ""
	}
	if limit <= 0 {
		limit = PreviewLimit
	}

	rows := result.MappingPreview
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, fmt.Sprintf("Showing %d of %d mappings", len(rows), result.TotalMappings)
}

// TransformationCounts tallies preview rows per transformation type, in catalog order
func TransformationCounts(result *common.AnalysisResult) []TypeCount {
	counts := make(map[string]int, len(TransformationTypes))
	if result != nil {
		for _, row := range result.MappingPreview {
			counts[row.TransformationType]++
		}
	}

	out := make([]TypeCount, 0, len(TransformationTypes))
	for _, t := range TransformationTypes {
		out = append(out, TypeCount{Type: t, Count: counts[t]})
	}
	return out
}

// TypeCount is one entry of TransformationCounts
type TypeCount struct {
	Type  string
	Count int
}
