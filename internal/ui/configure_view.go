package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/controller"
	"github.com/yildizm/tcgen/internal/emoji"
	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/tcgen/internal/ui/components"
)

const (
	rowFormat = iota
	rowQueryTypes
	rowComplexity
	rowComments
	rowSubmit
	rowCount
)

// configForm edits a TestConfig against the option catalog
type configForm struct {
	catalog     generator.Catalog
	cfg         common.TestConfig
	row         int
	queryCursor int
}

func newConfigForm(defaults common.TestConfig) configForm {
	defaults.QueryTypes = append([]string(nil), defaults.QueryTypes...)
	return configForm{catalog: generator.DefaultCatalog(), cfg: defaults}
}

// Config returns a copy of the edited configuration
func (f *configForm) Config() common.TestConfig {
	cfg := f.cfg
	cfg.QueryTypes = append([]string(nil), f.cfg.QueryTypes...)
	return cfg
}

func (f *configForm) options(row int) ([]generator.Option, *string) {
	switch row {
	case rowFormat:
		return f.catalog.OutputFormats, &f.cfg.OutputFormat
	case rowComplexity:
		return f.catalog.Complexity, &f.cfg.Complexity
	case rowComments:
		return f.catalog.CommentLevels, &f.cfg.CommentLevel
	}
	return nil, nil
}

// cycle moves the selection of the focused row by delta
func (f *configForm) cycle(delta int) {
	if f.row == rowQueryTypes {
		n := len(f.catalog.QueryTypes)
		f.queryCursor = (f.queryCursor + delta + n) % n
		return
	}

	options, value := f.options(f.row)
	if value == nil || len(options) == 0 {
		return
	}
	idx := -1
	for i, o := range options {
		if o.Value == *value {
			idx = i
		}
	}
	if idx < 0 {
		if delta < 0 {
			idx = 0
		} else {
			idx = len(options) - 1
		}
	}
	*value = options[(idx+delta+len(options))%len(options)].Value
}

// toggle flips the query type under the cursor
func (f *configForm) toggle() {
	if f.row != rowQueryTypes {
		return
	}
	f.cfg.ToggleQueryType(f.catalog.QueryTypes[f.queryCursor].Value)
}

func (m *AppModel) handleConfigureKey(msg tea.KeyMsg) tea.Cmd {
	f := &m.config
	switch msg.String() {
	case "up", "k", "shift+tab":
		f.row = (f.row - 1 + rowCount) % rowCount
	case "down", "j", "tab":
		f.row = (f.row + 1) % rowCount
	case "left", "h":
		f.cycle(-1)
	case "right", "l":
		f.cycle(1)
	case " ":
		f.toggle()
	case "enter", "g":
		return m.startGeneration()
	}
	return nil
}

func (m *AppModel) startGeneration() tea.Cmd {
	task, err := m.ctrl.BeginGeneration(m.config.Config())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingRequiredField):
			return m.toast(components.ToastError, "Missing Required Field", "Please complete every option: "+err.Error())
		case errors.Is(err, controller.ErrBusy):
			return m.toast(components.ToastInfo, "Generation Running", "Test cases are already being generated.")
		}
		return m.toastError("Generation Not Started", err)
	}
	return tea.Batch(generationCmd(m.ctx, m.ctrl, task), m.startTicking())
}

func (m *AppModel) handleGenerationDone(msg generationDoneMsg) tea.Cmd {
	applied, err := m.ctrl.FinishGeneration(msg.task, msg.cases, msg.err)
	if err != nil {
		return m.toastError("Generation Failed", err)
	}
	if !applied {
		return nil
	}
	m.buildResults()
	return m.toast(components.ToastSuccess, "Test Cases Generated", "Your test cases have been generated successfully!")
}

func (m *AppModel) renderConfigure() string {
	s := m.styles
	f := &m.config
	title := s.Header.Render(emoji.GetEmoji("configure") + " Configure Test Generation")

	if m.ctrl.Wizard().Generating() {
		m.spinner.SetLabel("Generating test cases...")
		return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.spinner.Render(), m.busyBar.Render()))
	}

	rows := []string{title, ""}
	rows = append(rows, m.renderChoiceRow("Output Format", rowFormat))
	rows = append(rows, m.renderQueryTypes())
	rows = append(rows, m.renderChoiceRow("Query Complexity", rowComplexity))
	rows = append(rows, m.renderChoiceRow("Comment Level", rowComments))

	button := "[ Generate Test Cases ]"
	if f.row == rowSubmit {
		button = s.Key.Render("▸ " + button)
	} else {
		button = s.Muted.Render("  " + button)
	}
	rows = append(rows, "", button)
	return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *AppModel) renderChoiceRow(label string, row int) string {
	s := m.styles
	options, value := m.config.options(row)

	parts := make([]string, 0, len(options))
	var description string
	for _, o := range options {
		if o.Value == *value {
			parts = append(parts, s.Success.Render("(•) "+o.Label))
			description = o.Description
		} else {
			parts = append(parts, s.Muted.Render("( ) "+o.Label))
		}
	}

	head := s.Subheader.Render(label)
	if m.config.row == row {
		head = s.Key.Render("▸ " + label)
	}
	line := head + "\n  " + strings.Join(parts, "  ")
	if description != "" {
		line += "\n  " + s.Muted.Render(description)
	}
	return line
}

func (m *AppModel) renderQueryTypes() string {
	s := m.styles
	f := &m.config

	head := s.Subheader.Render("Query Types")
	if f.row == rowQueryTypes {
		head = s.Key.Render("▸ Query Types")
	}

	lines := []string{head}
	for i, o := range f.catalog.QueryTypes {
		box := emoji.GetEmoji("unchecked")
		style := s.Muted
		if f.cfg.HasQueryType(o.Value) {
			box = emoji.GetEmoji("check")
			style = s.Body
		}
		line := fmt.Sprintf("  %s %s  %s", box, style.Render(o.Label), s.Muted.Render(o.Description))
		if f.row == rowQueryTypes && i == f.queryCursor {
			line = s.Key.Render("›") + line[1:]
		}
		lines = append(lines, line)
	}
	if len(f.cfg.QueryTypes) == 0 {
		lines = append(lines, s.Warning.Render("  Select at least one query type"))
	}
	return strings.Join(lines, "\n")
}
