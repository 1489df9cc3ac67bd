package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	spinner := lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(spinnerFrames[s.Frame])
	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}
	return spinner
}

// BusyBar is an indeterminate progress bar driven by spinner ticks
type BusyBar struct {
	Width int
	Frame int
	Label string
}

// NewBusyBar creates a busy bar
func NewBusyBar(width int) *BusyBar {
	return &BusyBar{Width: width}
}

// Tick moves the highlighted segment
func (b *BusyBar) Tick() {
	b.Frame++
}

// Render renders the busy bar
func (b *BusyBar) Render() string {
	progressStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	width := b.Width
	if width < 4 {
		width = 4
	}
	head := b.Frame % width

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i >= head && i < head+3 {
			bar.WriteString(progressStyle.Render("█"))
		} else {
			bar.WriteString(mutedStyle.Render("░"))
		}
	}

	result := "[" + bar.String() + "]"
	if b.Label != "" {
		result = b.Label + "\n" + result
	}
	return result
}

// StepBadge is one entry of the progress header
type StepBadge struct {
	Number    int
	Title     string
	Completed bool
	Current   bool
	Viewed    bool
}

// StepHeader renders the workflow progress with per-step completion badges
type StepHeader struct {
	Steps []StepBadge
	Width int
}

// Render renders the header as a row of numbered tabs
func (h *StepHeader) Render() string {
	tabs := make([]string, 0, len(h.Steps)*2)

	for i, step := range h.Steps {
		badge := "○"
		color := secondaryColor
		switch {
		case step.Completed:
			badge = "✓"
			color = successColor
		case step.Current:
			badge = "●"
			color = primaryColor
		}

		style := lipgloss.NewStyle().Foreground(color).Padding(0, 1)
		if step.Viewed {
			style = style.Background(selectedColor).Bold(true).Underline(true)
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%s %d %s", badge, step.Number, step.Title)))

		if i < len(h.Steps)-1 {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(secondaryColor).Render("─"))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, false, true, false).
		BorderForeground(secondaryColor).
		Width(h.Width).
		Render(row)
}

// CompletedCount returns how many steps are complete
func (h *StepHeader) CompletedCount() int {
	n := 0
	for _, s := range h.Steps {
		if s.Completed {
			n++
		}
	}
	return n
}
