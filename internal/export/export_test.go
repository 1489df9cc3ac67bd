package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/formatter"
	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/tcgen/internal/simulate"
)

func testReport(format string) *formatter.Report {
	cfg := common.TestConfig{
		OutputFormat: format,
		QueryTypes:   []string{"count", "quality", "null"},
		Complexity:   "advanced",
		CommentLevel: "detailed",
	}
	return &formatter.Report{
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Analysis:    &common.AnalysisResult{TotalMappings: 1200, SourceTables: 8, TargetTables: 8},
		Config:      cfg,
		TestCases:   generator.Build(cfg),
	}
}

func archiveEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(content)
	}
	return entries
}

func TestWriteTestCase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := New(dir, simulate.Instant(), 0, nil)
	tc := generator.Build(testReport("text").Config)[0]

	path, err := e.WriteTestCase(tc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "count-validation-001.sql"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, tc.SQL+"\n", string(content))

	_, err = e.WriteTestCase(common.TestCase{})
	assert.Error(t, err)
}

func TestWriteArchiveSummaryPerFormat(t *testing.T) {
	tests := []struct {
		format      string
		summaryName string
		contains    string
	}{
		{format: "csv", summaryName: "summary.csv", contains: "Test Case ID"},
		{format: "excel", summaryName: "summary-sheet.csv", contains: "Test Case ID"},
		{format: "word", summaryName: "summary.md", contains: "# Test Case Generation Report"},
		{format: "text", summaryName: "summary.txt", contains: "Test Case Generation Summary"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteArchive(&buf, testReport(tt.format)))

			entries := archiveEntries(t, buf.Bytes())
			names := make([]string, 0, len(entries))
			for name := range entries {
				names = append(names, name)
			}
			sort.Strings(names)

			want := []string{
				"count-validation-001.sql",
				"data-quality-001.sql",
				BriefFileName,
				"null-validation-001.sql",
				tt.summaryName,
			}
			sort.Strings(want)
			assert.Equal(t, want, names)
			assert.Contains(t, entries[tt.summaryName], tt.contains)
			assert.Contains(t, entries[BriefFileName], "Null Validation")
			assert.True(t, strings.HasPrefix(entries["count-validation-001.sql"], "-- Count Validation Test Case"))
		})
	}
}

func TestPackage(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, simulate.Instant(), DefaultDelay, nil)

	path, err := e.Package(context.Background(), testReport("csv"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "test-cases-"))
	assert.Equal(t, ".zip", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, archiveEntries(t, data), 5)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".tcgen-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestPackageRejectsEmptyReport(t *testing.T) {
	e := New(t.TempDir(), simulate.Instant(), 0, nil)

	_, err := e.Package(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoTestCases)

	report := testReport("csv")
	report.TestCases = nil
	_, err = e.Package(context.Background(), report)
	assert.ErrorIs(t, err, ErrNoTestCases)
}

func TestPackageHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, simulate.Real(), 1<<40, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Package(ctx, testReport("csv"))
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
