package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/emoji"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Icon        string
	Width       int
	Height      int
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Status:      "info",
		Width:       20,
		Height:      4,
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetIcon sets the icon for the card
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// SetSize sets the size of the card
func (s *StatsCard) SetSize(width, height int) *StatsCard {
	s.Width = width
	s.Height = height
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(statusColor(s.Status)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	title := titleStyle.Render(s.Title)
	if s.Icon != "" {
		title = s.Icon + " " + title
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		valueStyle.Render(s.Value),
		mutedStyle.Render(s.Description),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Align(lipgloss.Center).
		Width(s.Width).
		Height(s.Height).
		Render(content)
}

// StatsDashboard lays out cards in rows
type StatsDashboard struct {
	cards      []*StatsCard
	columns    int
	cardWidth  int
	cardHeight int
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int) *StatsDashboard {
	if columns < 1 {
		columns = 1
	}
	return &StatsDashboard{
		columns:    columns,
		cardWidth:  20,
		cardHeight: 3,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.SetSize(d.cardWidth, d.cardHeight)
	d.cards = append(d.cards, card)
}

// Cards returns the cards in insertion order
func (d *StatsDashboard) Cards() []*StatsCard {
	return d.cards
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := min(i+d.columns, len(d.cards))
		rowCards := make([]string, 0, end-i)
		for _, card := range d.cards[i:end] {
			rowCards = append(rowCards, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// NewAnalysisStats creates the cards shown on the analysis step
func NewAnalysisStats(result *common.AnalysisResult) *StatsDashboard {
	dashboard := NewStatsDashboard(4)
	if result == nil {
		return dashboard
	}

	dashboard.AddCard(NewStatsCard("Mappings", formatNumber(result.TotalMappings), "column mappings").
		SetStatus("success").SetIcon(emoji.GetEmoji("sql")))
	dashboard.AddCard(NewStatsCard("Source", strconv.Itoa(result.SourceTables), "staging tables").
		SetIcon(emoji.GetEmoji("upload")))
	dashboard.AddCard(NewStatsCard("Target", strconv.Itoa(result.TargetTables), "warehouse tables").
		SetIcon(emoji.GetEmoji("package")))
	dashboard.AddCard(NewStatsCard("Template", strconv.Itoa(len(result.TemplateSections)), "sections found").
		SetStatus("warning").SetIcon(emoji.GetEmoji("file")))
	return dashboard
}

// formatNumber groups thousands: 1200 -> "1,200"
func formatNumber(n int) string {
	digits := strconv.Itoa(n)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	groups := []string{digits[:head]}
	for i := head; i < len(digits); i += 3 {
		groups = append(groups, digits[i:i+3])
	}
	return strings.Join(groups, ",")
}

// SummaryBox is a titled box of lines and key-value pairs
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int) *SummaryBox {
	return &SummaryBox{
		Title: title,
		Width: width,
	}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-15s: %s", key, value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	content := make([]string, 0, len(s.Content)+2)
	content = append(content, headerStyle.Render(s.Title), "")
	for _, line := range s.Content {
		content = append(content, bodyStyle.Render(line))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1).
		Width(s.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
