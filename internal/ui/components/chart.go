package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/analysis"
)

// BarChart renders labeled horizontal bars
type BarChart struct {
	Title  string
	Labels []string
	Values []int
	Width  int
}

// NewBarChart creates an empty chart
func NewBarChart(title string, width int) *BarChart {
	return &BarChart{Title: title, Width: width}
}

// Add appends one bar
func (c *BarChart) Add(label string, value int) {
	c.Labels = append(c.Labels, label)
	c.Values = append(c.Values, value)
}

// Render renders the chart
func (c *BarChart) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)
	barStyle := lipgloss.NewStyle().Foreground(successColor)

	content := []string{headerStyle.Render(c.Title), ""}
	if len(c.Values) == 0 {
		content = append(content, mutedStyle.Render("No data to display"))
		return c.box(content)
	}

	maxValue, labelWidth := 0, 0
	for i, v := range c.Values {
		maxValue = max(maxValue, v)
		labelWidth = max(labelWidth, len(c.Labels[i]))
	}

	// label, value column and border
	barWidth := max(1, c.Width-labelWidth-12)
	for i, v := range c.Values {
		n := 0
		if maxValue > 0 {
			n = v * barWidth / maxValue
		}
		line := fmt.Sprintf("%-*s │", labelWidth, c.Labels[i])
		content = append(content, mutedStyle.Render(line)+barStyle.Render(strings.Repeat("█", n))+fmt.Sprintf(" %d", v))
	}
	return c.box(content)
}

func (c *BarChart) box(content []string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1).
		Width(c.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// NewTransformationChart charts the transformation mix of a mapping preview
func NewTransformationChart(counts []analysis.TypeCount, width int) *BarChart {
	chart := NewBarChart("Transformation Types", width)
	for _, tc := range counts {
		chart.Add(tc.Type, tc.Count)
	}
	return chart
}

// Sparkline renders values as a single line of block characters
func Sparkline(values []int) string {
	chars := []rune("▁▂▃▄▅▆▇█")
	maxValue := 0
	for _, v := range values {
		maxValue = max(maxValue, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if maxValue > 0 {
			idx = v * (len(chars) - 1) / maxValue
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}
