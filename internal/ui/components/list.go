package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/common"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      string
	Icon        string
}

// List represents a navigable, scrolling list component
type List struct {
	Title       string
	Caption     string
	Items       []ListItem
	Selected    int
	Focused     bool
	Width       int
	Height      int
	ShowNumbers bool
}

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
	}
}

// SetItems sets all items in the list
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Selected = 0
}

// GetSelectedItem returns the currently selected item
func (l *List) GetSelectedItem() *ListItem {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Selected]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
	}
}

// PageDown moves selection by one visible page
func (l *List) PageDown() {
	l.Selected = min(len(l.Items)-1, l.Selected+l.visible())
	if l.Selected < 0 {
		l.Selected = 0
	}
}

// PageUp moves selection back by one visible page
func (l *List) PageUp() {
	l.Selected = max(0, l.Selected-l.visible())
}

func (l *List) visible() int {
	// title, caption and spacing
	return max(1, l.Height-4)
}

// Render renders the list
func (l *List) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	content := []string{headerStyle.Render(l.Title)}
	if l.Caption != "" {
		content = append(content, mutedStyle.Render(l.Caption))
	}
	content = append(content, "")

	if len(l.Items) == 0 {
		content = append(content, mutedStyle.Render("Nothing to show"))
	}

	maxVisible := l.visible()
	start := 0
	if l.Selected >= maxVisible {
		start = l.Selected - maxVisible + 1
	}
	end := min(start+maxVisible, len(l.Items))

	for i := start; i < end; i++ {
		content = append(content, l.renderItem(&l.Items[i], i+1, l.Focused && i == l.Selected))
	}

	if len(l.Items) > maxVisible {
		content = append(content, "", mutedStyle.Render(fmt.Sprintf("(%d-%d of %d)", start+1, end, len(l.Items))))
	}

	border := secondaryColor
	if l.Focused {
		border = primaryColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(l.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// renderItem renders a single list item
func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	var parts []string
	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}
	if item.Icon != "" {
		parts = append(parts, item.Icon)
	}

	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)
	line := strings.Join(parts, " ")

	style := lipgloss.NewStyle().Foreground(statusColor(item.Status))
	if selected {
		style = lipgloss.NewStyle().Background(selectedColor).Foreground(primaryColor).Bold(true)
	}
	return style.Width(max(10, l.Width-4)).MaxHeight(1).Render(line)
}

// NewTestCaseList creates a list of generated test cases
func NewTestCaseList(cases []common.TestCase, icon string, width, height int) *List {
	list := NewList("Generated Test Cases", width, height)
	list.Caption = fmt.Sprintf("%d test cases", len(cases))

	items := make([]ListItem, 0, len(cases))
	for _, tc := range cases {
		items = append(items, ListItem{
			ID:          tc.ID,
			Title:       tc.Name,
			Description: tc.Type,
			Status:      "info",
			Icon:        icon,
		})
	}
	list.SetItems(items)
	return list
}

// NewMappingList creates a list of mapping rows under caption
func NewMappingList(rows []common.MappingRow, caption string, width, height int) *List {
	list := NewList("Mapping Preview", width, height)
	list.Caption = caption
	list.ShowNumbers = false

	items := make([]ListItem, 0, len(rows))
	for i, row := range rows {
		items = append(items, ListItem{
			ID: fmt.Sprintf("mapping-%d", i),
			Title: fmt.Sprintf("%-20s %-24s → %-24s %-26s",
				row.SourceTable, row.SourceColumn, row.TargetTable, row.TargetColumn),
			Description: row.TransformationType,
			Status:      transformationStatus(row.TransformationType),
		})
	}
	list.SetItems(items)
	return list
}

func transformationStatus(t string) string {
	switch t {
	case "Direct":
		return "success"
	case "Lookup", "Transformed":
		return "info"
	case "Calculated", "Aggregated":
		return "warning"
	default:
		return ""
	}
}
