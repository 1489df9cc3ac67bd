package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/emoji"
	"github.com/yildizm/tcgen/internal/ui/components"
	"github.com/yildizm/tcgen/internal/wizard"
)

func (m *AppModel) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	if m.upload.editing {
		return m.handleUploadEditKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return nil
	case "1", "2", "3", "4":
		step := wizard.Steps[msg.Runes[0]-'1']
		m.ctrl.SelectStep(step)
		return nil
	case "c":
		m.ctrl.ClearFiles()
		m.resetWorkflowViews()
		return m.toast(components.ToastInfo, "Files Cleared", "Start again by uploading a mapping and a template file.")
	case "o":
		m.ctrl.Logout()
		m.resetWorkflowViews()
		m.showHelp = false
		return m.toast(components.ToastInfo, "Signed Out", "See you next time.")
	}

	switch m.ctrl.Wizard().Viewed() {
	case wizard.StepUpload:
		return m.handleUploadKey(msg)
	case wizard.StepAnalysis:
		return m.handleAnalysisKey(msg)
	case wizard.StepConfigure:
		return m.handleConfigureKey(msg)
	case wizard.StepResults:
		return m.handleResultsKey(msg)
	}
	return nil
}

func (m *AppModel) renderDashboard() string {
	s := m.styles
	w := m.ctrl.Wizard()
	width := max(60, m.width-2)

	user := m.ctrl.Gate().Session().UserIdentifier
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Title.Render(emoji.GetEmoji("rocket")+" Data Test Case Generator"),
		s.Muted.Render("  "+emoji.GetEmoji("user")+" "+user),
	)

	header := &components.StepHeader{Width: width}
	for i, step := range wizard.Steps {
		header.Steps = append(header.Steps, components.StepBadge{
			Number:    i + 1,
			Title:     step.Title(),
			Completed: w.Completed(step),
			Current:   step == w.Current(),
			Viewed:    step == w.Viewed(),
		})
	}
	progress := s.Muted.Render(fmt.Sprintf("Step %d of %d · %d%% complete",
		int(w.Viewed())+1, len(wizard.Steps), header.CompletedCount()*100/len(wizard.Steps)))

	var body string
	if m.showHelp {
		body = m.renderHelp()
	} else {
		body = m.renderStep()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		header.Render(),
		progress,
		"",
		body,
		"",
		m.renderFooter(),
	)
}

func (m *AppModel) renderStep() string {
	w := m.ctrl.Wizard()
	viewed := w.Viewed()
	if viewed > w.Current() && !w.CanEnter(viewed) {
		return m.renderLocked(viewed)
	}

	switch viewed {
	case wizard.StepUpload:
		return m.renderUpload()
	case wizard.StepAnalysis:
		return m.renderAnalysis()
	case wizard.StepConfigure:
		return m.renderConfigure()
	case wizard.StepResults:
		return m.renderResults()
	}
	return ""
}

func (m *AppModel) renderLocked(step wizard.Step) string {
	prev := step - 1
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Warning.Render(emoji.GetEmoji("lock")+" "+step.Title()+" is locked"),
		m.styles.Muted.Render("Complete "+prev.Title()+" first."),
	))
}

func (m *AppModel) renderFooter() string {
	s := m.styles
	if m.upload.editing {
		return keyHints(s, "enter", "upload", "esc", "cancel", "ctrl+u", "clear input")
	}

	var step []string
	switch m.ctrl.Wizard().Viewed() {
	case wizard.StepUpload:
		step = []string{"m", "mapping file", "t", "template file", "x/X", "remove", "a", "analyze"}
	case wizard.StepAnalysis:
		step = []string{"↑/↓", "scroll", "pgup/pgdn", "page", "r", "re-run", "enter", "configure"}
	case wizard.StepConfigure:
		step = []string{"↑/↓", "field", "←/→", "option", "space", "toggle", "enter", "generate"}
	case wizard.StepResults:
		step = []string{"↑/↓", "select", "j/k", "scroll sql", "d", "download", "a", "download all"}
	}
	global := []string{"1-4", "steps", "c", "clear files", "o", "sign out", "?", "help", "q", "quit"}
	return keyHints(s, append(step, global...)...)
}

func (m *AppModel) renderHelp() string {
	s := m.styles
	lines := []string{
		s.Header.Render("Keyboard Shortcuts"),
		"",
		s.Subheader.Render("Everywhere"),
		"  1-4      jump to a step (locked steps show what is missing)",
		"  c        clear files and start over",
		"  o        sign out",
		"  q        quit",
		"",
		s.Subheader.Render("Upload"),
		"  m / t    enter the mapping or template path",
		"  x / X    remove the mapping or template file",
		"  a        analyze both files",
		"",
		s.Subheader.Render("Configure"),
		"  ←/→      change the highlighted option",
		"  space    toggle a query type",
		"  enter    generate test cases",
		"",
		s.Subheader.Render("Results"),
		"  d        write the selected test case as .sql",
		"  a        package every test case into a ZIP",
		"",
	}
	if stats := m.ctrl.Stats(); len(stats) > 0 {
		lines = append(lines, s.Subheader.Render("Timings"))
		for _, st := range stats {
			lines = append(lines, fmt.Sprintf("  %-11s %d run(s), last %s", st.Operation, st.Count, st.LastTime.Round(time.Millisecond)))
		}
		lines = append(lines, "")
	}
	lines = append(lines, s.Muted.Render("Press ? to close"))
	return s.Box.Render(strings.Join(lines, "\n"))
}

// keyHints renders "key action" pairs on one line
func keyHints(s *Styles, pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.Key.Render(pairs[i])+" "+s.Muted.Render(pairs[i+1]))
	}
	return strings.Join(parts, s.Muted.Render(" • "))
}
