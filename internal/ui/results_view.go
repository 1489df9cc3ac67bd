package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/emoji"
	"github.com/yildizm/tcgen/internal/generator"
	"github.com/yildizm/tcgen/internal/ui/components"
)

type resultsPanel struct {
	list        *components.List
	viewer      *components.CodeViewer
	lastPackage string
}

func (m *AppModel) buildResults() {
	cases := m.ctrl.Wizard().Store().TestCases()
	m.results = resultsPanel{
		list: components.NewTestCaseList(cases, emoji.GetEmoji("sql"), 50, max(8, len(cases)+5)),
	}
	m.results.list.Focused = true
	m.syncViewer()
}

// syncViewer shows the SQL of the selected test case
func (m *AppModel) syncViewer() {
	m.results.viewer = nil
	if m.results.list == nil {
		return
	}
	item := m.results.list.GetSelectedItem()
	if item == nil {
		return
	}
	tc, ok := m.ctrl.TestCase(item.ID)
	if !ok {
		return
	}
	m.results.viewer = components.NewCodeViewer(tc.FileName(), tc.SQL, max(50, m.width-58), max(10, m.height-16))
}

func (m *AppModel) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	if m.results.list == nil {
		m.buildResults()
	}

	switch msg.String() {
	case "up":
		m.results.list.MoveUp()
		m.syncViewer()
	case "down":
		m.results.list.MoveDown()
		m.syncViewer()
	case "k":
		if m.results.viewer != nil {
			m.results.viewer.ScrollUp()
		}
	case "j":
		if m.results.viewer != nil {
			m.results.viewer.ScrollDown()
		}
	case "d":
		return m.downloadSelected()
	case "a":
		return m.startDownloadAll()
	}
	return nil
}

func (m *AppModel) downloadSelected() tea.Cmd {
	item := m.results.list.GetSelectedItem()
	if item == nil {
		return nil
	}
	path, err := m.ctrl.Download(item.ID)
	if err != nil {
		return m.toastError("Download Failed", err)
	}
	return m.toast(components.ToastSuccess, "Download Started", fmt.Sprintf("Downloading %s... saved to %s", item.Title, path))
}

func (m *AppModel) startDownloadAll() tea.Cmd {
	task, err := m.ctrl.BeginDownloadAll()
	if err != nil {
		return m.toastError("Download Failed", err)
	}
	return tea.Batch(packageCmd(m.ctx, m.ctrl, task), m.startTicking())
}

func (m *AppModel) handlePackageDone(msg packageDoneMsg) tea.Cmd {
	applied, err := m.ctrl.FinishDownloadAll(msg.task, msg.path, msg.err)
	if err != nil {
		return m.toastError("Download Failed", err)
	}
	if !applied {
		return nil
	}
	m.results.lastPackage = msg.path
	return m.toast(components.ToastSuccess, "All Files Downloaded", "All test cases have been packaged and downloaded.")
}

func (m *AppModel) renderResults() string {
	s := m.styles
	store := m.ctrl.Wizard().Store()
	title := s.Header.Render(emoji.GetEmoji("results") + " Generated Test Cases")

	if m.results.list == nil || len(store.TestCases()) == 0 {
		return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, "",
			s.Muted.Render("No test cases yet. Configure and generate them first.")))
	}

	cfg := store.Config()
	catalog := generator.DefaultCatalog()
	summary := components.NewSummaryBox("Configuration Used", 50)
	summary.AddKeyValue("Output Format", generator.Label(catalog.OutputFormats, cfg.OutputFormat))
	summary.AddKeyValue("Complexity", generator.Label(catalog.Complexity, cfg.Complexity))
	summary.AddKeyValue("Comments", generator.Label(catalog.CommentLevels, cfg.CommentLevel))
	summary.AddKeyValue("Output Folder", m.ctrl.OutputDir())

	left := lipgloss.JoinVertical(lipgloss.Left, m.results.list.Render(), summary.Render())

	right := ""
	if item := m.results.list.GetSelectedItem(); item != nil && m.results.viewer != nil {
		tc, _ := m.ctrl.TestCase(item.ID)
		detail := components.NewDetailViewer(tc.Name, m.results.viewer.Width)
		detail.AddSection(components.DetailSection{
			Title:   tc.Type,
			Content: []string{tc.Description, generator.Preview(tc, cfg.Complexity)},
			Style:   "info",
		})
		right = lipgloss.JoinVertical(lipgloss.Left, detail.Render(), m.results.viewer.Render())
	}

	rows := []string{title, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)}
	if m.ctrl.DownloadingAll() {
		m.spinner.SetLabel("Packaging test cases...")
		rows = append(rows, m.spinner.Render())
	} else if m.results.lastPackage != "" {
		rows = append(rows, s.Success.Render(emoji.GetEmoji("package")+" Package: ")+filepath.Base(m.results.lastPackage))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
