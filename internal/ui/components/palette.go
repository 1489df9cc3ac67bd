package components

import "github.com/charmbracelet/lipgloss"

// Colors shared by the components. The ui package owns the full theme.
var (
	primaryColor   = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	selectedColor  = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}
	successColor   = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor   = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor     = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
)

// statusColor maps "success", "warning", "error" and "info" to a color
func statusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "success":
		return successColor
	case "warning":
		return warningColor
	case "error":
		return errorColor
	case "info":
		return primaryColor
	default:
		return secondaryColor
	}
}
