package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field is a single-line text input
type Field struct {
	Label       string
	Placeholder string
	Value       string
	Masked      bool
}

// Form is a vertical stack of fields with one focused field
type Form struct {
	Title  string
	Fields []Field
	Focus  int
	Width  int
	Active bool
}

// NewForm creates an active form focused on the first field
func NewForm(title string, fields ...Field) *Form {
	return &Form{
		Title:  title,
		Fields: fields,
		Width:  50,
		Active: true,
	}
}

// Value returns the value of field i
func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	return f.Fields[i].Value
}

// SetValue replaces the value of field i
func (f *Form) SetValue(i int, value string) {
	if i >= 0 && i < len(f.Fields) {
		f.Fields[i].Value = value
	}
}

// Reset empties every field and focuses the first
func (f *Form) Reset() {
	for i := range f.Fields {
		f.Fields[i].Value = ""
	}
	f.Focus = 0
}

// Next moves focus down, wrapping around
func (f *Form) Next() {
	if len(f.Fields) > 0 {
		f.Focus = (f.Focus + 1) % len(f.Fields)
	}
}

// Prev moves focus up, wrapping around
func (f *Form) Prev() {
	if len(f.Fields) > 0 {
		f.Focus = (f.Focus - 1 + len(f.Fields)) % len(f.Fields)
	}
}

// HandleKey applies an editing or focus key. It reports whether the key was consumed.
func (f *Form) HandleKey(msg tea.KeyMsg) bool {
	if len(f.Fields) == 0 {
		return false
	}
	field := &f.Fields[f.Focus]

	switch msg.Type {
	case tea.KeyRunes:
		field.Value += string(msg.Runes)
	case tea.KeySpace:
		field.Value += " "
	case tea.KeyBackspace:
		if r := []rune(field.Value); len(r) > 0 {
			field.Value = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		field.Value = ""
	case tea.KeyTab, tea.KeyDown:
		f.Next()
	case tea.KeyShiftTab, tea.KeyUp:
		f.Prev()
	default:
		return false
	}
	return true
}

// Render renders the form
func (f *Form) Render() string {
	labelStyle := lipgloss.NewStyle().Foreground(secondaryColor)
	focusedLabel := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	placeholderStyle := lipgloss.NewStyle().Foreground(secondaryColor).Italic(true)
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1).
		Width(f.Width)
	focusedInput := inputStyle.BorderForeground(primaryColor)

	var content []string
	if f.Title != "" {
		content = append(content, lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render(f.Title), "")
	}

	for i, field := range f.Fields {
		focused := f.Active && i == f.Focus

		text := field.Value
		if field.Masked {
			text = strings.Repeat("•", len([]rune(text)))
		}
		if focused {
			text += "▏"
		}
		if field.Value == "" && !focused && field.Placeholder != "" {
			text = placeholderStyle.Render(field.Placeholder)
		}

		if focused {
			content = append(content, focusedLabel.Render(field.Label), focusedInput.Render(text))
		} else {
			content = append(content, labelStyle.Render(field.Label), inputStyle.Render(text))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}
