package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// DefaultTheme is the only palette; light and dark variants are picked by lipgloss
var DefaultTheme = Theme{
	Name:      "default",
	Primary:   adaptive("#1E40AF", "#3B82F6"),
	Secondary: adaptive("#6B7280", "#9CA3AF"),
	Accent:    adaptive("#7C3AED", "#A855F7"),
	Success:   adaptive("#059669", "#10B981"),
	Warning:   adaptive("#D97706", "#F59E0B"),
	Error:     adaptive("#DC2626", "#EF4444"),
	Border:    adaptive("#D1D5DB", "#374151"),
	Muted:     adaptive("#6B7280", "#9CA3AF"),
	Selected:  adaptive("#DBEAFE", "#1E3A8A"),
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// ApplyColorMode configures lipgloss for "auto", "always" or "never"
func ApplyColorMode(mode string) {
	switch {
	case mode == "never" || (mode != "always" && IsColorDisabled()):
		lipgloss.SetColorProfile(termenv.Ascii)
	case mode == "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// ApplyThemeMode forces the light or dark variants. "auto" keeps terminal detection.
func ApplyThemeMode(mode string) {
	switch mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// Styles contains the styles used by the views
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Key   lipgloss.Style
	Box   lipgloss.Style
	Panel lipgloss.Style
}

// NewStyles derives the view styles from theme
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subheader: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(theme.Muted),

		Success: lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(theme.Error).Bold(true),

		Key: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}
