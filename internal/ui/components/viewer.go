package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CodeViewer shows a scrollable block of SQL with line numbers
type CodeViewer struct {
	Title  string
	Lines  []string
	Offset int
	Width  int
	Height int
}

// NewCodeViewer creates a viewer for text
func NewCodeViewer(title, text string, width, height int) *CodeViewer {
	return &CodeViewer{
		Title:  title,
		Lines:  strings.Split(strings.TrimRight(text, "\n"), "\n"),
		Width:  width,
		Height: height,
	}
}

// ScrollDown moves the window one line down
func (v *CodeViewer) ScrollDown() {
	if v.Offset < len(v.Lines)-v.visible() {
		v.Offset++
	}
}

// ScrollUp moves the window one line up
func (v *CodeViewer) ScrollUp() {
	if v.Offset > 0 {
		v.Offset--
	}
}

func (v *CodeViewer) visible() int {
	return max(1, v.Height-2)
}

// Render renders the visible lines
func (v *CodeViewer) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	numberStyle := lipgloss.NewStyle().Foreground(secondaryColor)
	commentStyle := lipgloss.NewStyle().Foreground(secondaryColor).Italic(true)
	codeStyle := lipgloss.NewStyle().Foreground(successColor)

	content := []string{headerStyle.Render(v.Title)}
	end := min(v.Offset+v.visible(), len(v.Lines))
	for i := v.Offset; i < end; i++ {
		line := v.Lines[i]
		style := codeStyle
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			style = commentStyle
		}
		content = append(content, numberStyle.Render(fmt.Sprintf("%3d ", i+1))+style.Render(line))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1).
		Width(v.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// DetailViewer represents a detailed view of a specific item
type DetailViewer struct {
	Title    string
	Sections []DetailSection
	Width    int
}

// DetailSection represents a section in the detail view
type DetailSection struct {
	Title   string
	Content []string
	Style   string // "info", "warning", "error", "success"
}

// NewDetailViewer creates a new detail viewer
func NewDetailViewer(title string, width int) *DetailViewer {
	return &DetailViewer{Title: title, Width: width}
}

// AddSection adds a section to the detail view
func (d *DetailViewer) AddSection(section DetailSection) {
	d.Sections = append(d.Sections, section)
}

// Render renders the detail viewer
func (d *DetailViewer) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	content := []string{headerStyle.Render(d.Title), ""}
	for _, section := range d.Sections {
		content = append(content, lipgloss.NewStyle().Foreground(statusColor(section.Style)).Bold(true).Render(section.Title))
		for _, line := range section.Content {
			content = append(content, bodyStyle.Render("  "+line))
		}
		content = append(content, "")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1).
		Width(d.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
