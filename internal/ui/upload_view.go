package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/analysis"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/emoji"
	"github.com/yildizm/tcgen/internal/ui/components"
	"github.com/yildizm/tcgen/internal/upload"
)

// form field index per slot
var uploadSlots = []common.FileSlot{common.SlotMapping, common.SlotTemplate}

type uploadPanel struct {
	form    *components.Form
	editing bool
}

func newUploadPanel() uploadPanel {
	form := components.NewForm("",
		components.Field{Label: "Source-to-target mapping file", Placeholder: "path/to/mapping.xlsx"},
		components.Field{Label: "Test case template file", Placeholder: "path/to/template.txt"},
	)
	form.Active = false
	form.Width = 60
	return uploadPanel{form: form}
}

func (m *AppModel) startEditing(slot common.FileSlot) {
	m.upload.editing = true
	m.upload.form.Active = true
	m.upload.form.Focus = int(slot)
}

func (m *AppModel) stopEditing() {
	m.upload.editing = false
	m.upload.form.Active = false
}

func (m *AppModel) handleUploadKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "m":
		m.startEditing(common.SlotMapping)
	case "t":
		m.startEditing(common.SlotTemplate)
	case "x":
		return m.removeFile(common.SlotMapping)
	case "X":
		return m.removeFile(common.SlotTemplate)
	case "a", "enter":
		return m.startAnalysis()
	}
	return nil
}

func (m *AppModel) handleUploadEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopEditing()
		return nil
	case tea.KeyEnter:
		slot := uploadSlots[m.upload.form.Focus]
		m.stopEditing()
		return m.uploadFile(slot, m.upload.form.Value(int(slot)))
	}
	m.upload.form.HandleKey(msg)
	return nil
}

func (m *AppModel) uploadFile(slot common.FileSlot, path string) tea.Cmd {
	_, err := m.ctrl.UploadFile(slot, path)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidFileType) {
			return m.toast(components.ToastError, "Invalid File Type", "Please upload Excel, CSV, or Text files only.")
		}
		return m.toastError("Upload Failed", err)
	}

	if m.ctrl.Wizard().Store().Files().Complete() {
		return m.toast(components.ToastSuccess, "Files Uploaded Successfully", "Both files have been uploaded. You can now analyze them.")
	}
	return m.toast(components.ToastSuccess, "File Uploaded", slot.Title()+" file uploaded successfully.")
}

func (m *AppModel) removeFile(slot common.FileSlot) tea.Cmd {
	if !m.ctrl.RemoveFile(slot) {
		return nil
	}
	m.upload.form.SetValue(int(slot), "")
	return m.toast(components.ToastInfo, "File Removed", slot.Title()+" file has been removed.")
}

func (m *AppModel) startAnalysis() tea.Cmd {
	task, err := m.ctrl.BeginAnalysis()
	if err != nil {
		if errors.Is(err, analysis.ErrMissingFiles) {
			return m.toast(components.ToastError, "Files Missing", "Upload both the mapping and the template file first.")
		}
		return m.toastError("Analysis Not Started", err)
	}
	m.preview = nil
	return tea.Batch(analysisCmd(m.ctx, m.ctrl, task), m.startTicking())
}

func (m *AppModel) renderUpload() string {
	s := m.styles
	files := m.ctrl.Wizard().Store().Files()

	rows := []string{s.Header.Render(emoji.GetEmoji("upload") + " Upload Files"), ""}
	for _, slot := range uploadSlots {
		status := s.Muted.Render(emoji.GetEmoji("unchecked") + " " + slot.Title() + ": no file")
		if h := files.Get(slot); h != nil {
			status = s.Success.Render(emoji.GetEmoji("check")+" "+slot.Title()+": ") +
				h.Name + s.Muted.Render(" ("+h.SizeKB()+")")
		}
		rows = append(rows, status)
	}
	rows = append(rows, "", m.upload.form.Render(), "",
		s.Muted.Render("Accepted types: "+upload.Accept()))

	if files.Complete() {
		rows = append(rows, "", s.Success.Render("Ready to analyze. Press a."))
	}
	return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
