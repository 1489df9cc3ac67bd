package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/analysis"
	"github.com/yildizm/tcgen/internal/emoji"
	"github.com/yildizm/tcgen/internal/ui/components"
	"github.com/yildizm/tcgen/internal/wizard"
)

func (m *AppModel) handleAnalysisDone(msg analysisDoneMsg) tea.Cmd {
	applied, err := m.ctrl.FinishAnalysis(msg.task, msg.result, msg.err)
	if err != nil {
		return m.toastError("Analysis Failed", err)
	}
	if !applied {
		return nil
	}
	m.buildPreview()
	return m.toast(components.ToastSuccess, "Analysis Complete", "File analysis completed. Configure your test case generation settings.")
}

func (m *AppModel) buildPreview() {
	result := m.ctrl.Wizard().Store().Analysis()
	if result == nil {
		m.preview = nil
		return
	}
	rows, caption := analysis.Preview(result, m.opts.PreviewLimit)
	m.preview = components.NewMappingList(rows, caption, max(60, m.width-4), max(8, m.height-24))
	m.preview.Focused = true
}

func (m *AppModel) handleAnalysisKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r":
		if !m.ctrl.Analyzing() {
			return m.startAnalysis()
		}
	case "enter":
		m.ctrl.SelectStep(wizard.StepConfigure)
	case "up", "k":
		if m.preview != nil {
			m.preview.MoveUp()
		}
	case "down", "j":
		if m.preview != nil {
			m.preview.MoveDown()
		}
	case "pgup":
		if m.preview != nil {
			m.preview.PageUp()
		}
	case "pgdown":
		if m.preview != nil {
			m.preview.PageDown()
		}
	}
	return nil
}

func (m *AppModel) renderAnalysis() string {
	s := m.styles
	title := s.Header.Render(emoji.GetEmoji("analysis") + " File Analysis")

	if m.ctrl.Analyzing() {
		m.spinner.SetLabel("Analyzing mapping and template files...")
		m.busyBar.Label = ""
		return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.spinner.Render(), m.busyBar.Render()))
	}

	result := m.ctrl.Wizard().Store().Analysis()
	if result == nil || m.preview == nil {
		return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, "",
			s.Muted.Render("No analysis yet. Press r to analyze the uploaded files.")))
	}

	counts := analysis.TransformationCounts(result)
	values := make([]int, 0, len(counts))
	for _, c := range counts {
		values = append(values, c.Count)
	}

	sections := components.NewSummaryBox("Template Sections", 40)
	for _, name := range result.TemplateSections {
		sections.AddLine(emoji.GetEmoji("check") + " " + name)
	}

	side := lipgloss.JoinHorizontal(lipgloss.Top,
		components.NewTransformationChart(counts, 50).Render(),
		sections.Render(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		components.NewAnalysisStats(result).Render(),
		side,
		s.Muted.Render("Mix "+components.Sparkline(values)),
		m.preview.Render(),
	)
}
