package components

import (
	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the toast color
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// Toast is a transient notification
type Toast struct {
	ID          int
	Kind        ToastKind
	Title       string
	Description string
}

// ToastStack keeps the most recent toasts, newest last
type ToastStack struct {
	items  []Toast
	nextID int
	Max    int
}

// NewToastStack creates a stack holding at most limit toasts
func NewToastStack(limit int) *ToastStack {
	if limit < 1 {
		limit = 1
	}
	return &ToastStack{Max: limit}
}

// Push adds a toast and returns its id
func (s *ToastStack) Push(kind ToastKind, title, description string) int {
	s.nextID++
	s.items = append(s.items, Toast{ID: s.nextID, Kind: kind, Title: title, Description: description})
	if len(s.items) > s.Max {
		s.items = s.items[len(s.items)-s.Max:]
	}
	return s.nextID
}

// Dismiss removes the toast with id
func (s *ToastStack) Dismiss(id int) {
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear removes every toast
func (s *ToastStack) Clear() {
	s.items = nil
}

// Items returns the visible toasts
func (s *ToastStack) Items() []Toast {
	return s.items
}

// Latest returns the newest toast
func (s *ToastStack) Latest() (Toast, bool) {
	if len(s.items) == 0 {
		return Toast{}, false
	}
	return s.items[len(s.items)-1], true
}

// Render renders the toasts stacked vertically
func (s *ToastStack) Render(width int) string {
	if len(s.items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(s.items))
	for _, t := range s.items {
		color := primaryColor
		switch t.Kind {
		case ToastSuccess:
			color = successColor
		case ToastError:
			color = errorColor
		}

		body := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(t.Title),
			lipgloss.NewStyle().Foreground(secondaryColor).Render(t.Description),
		)
		rendered = append(rendered, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Width(width).
			Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
