package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"
)

// FormatText renders stats as one tree per operation
func FormatText(stats []OperationStats, color bool) string {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = false

	var b strings.Builder
	b.WriteString("Operation Timings\n")
	if len(stats) == 0 {
		b.WriteString("  no operations recorded\n")
		return b.String()
	}

	for _, s := range stats {
		b.WriteString("\n" + strings.ToUpper(string(s.Operation)[:1]) + string(s.Operation)[1:] + "\n")
		items := []termfmt.TreeItem{
			{Label: "Runs", Value: fmt.Sprintf("%d (%d ok, %d failed)", s.Count, s.SuccessCount, s.ErrorCount)},
			{Label: "Last", Value: round(s.LastTime)},
			{Label: "Average", Value: round(s.AvgTime)},
			{Label: "Range", Value: round(s.MinTime) + " - " + round(s.MaxTime), Last: true},
		}
		b.WriteString(termfmt.TreeViewWithOptions(items, opts) + "\n")
	}
	return b.String()
}

func round(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}
