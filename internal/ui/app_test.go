package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/config"
	"github.com/yildizm/tcgen/internal/controller"
	"github.com/yildizm/tcgen/internal/wizard"
)

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"esc":       tea.KeyEsc,
	"backspace": tea.KeyBackspace,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+r":    tea.KeyCtrlR,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	" ":         tea.KeySpace,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// drain runs cmd and feeds every resulting message back into m
func drain(m *AppModel, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case tickMsg, toastExpiredMsg, tea.QuitMsg:
	default:
		_, next := m.Update(msg)
		drain(m, next)
	}
}

func press(m *AppModel, keys ...string) {
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drain(m, cmd)
	}
}

func typeText(m *AppModel, text string) {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	drain(m, cmd)
}

func newTestApp(t *testing.T, defaults common.TestConfig) (*AppModel, *controller.Controller, string) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Workflow.NoDelay = true
	cfg.Output.Directory = t.TempDir()

	ctrl, err := controller.FromConfig(cfg, nil)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Animate = false
	opts.Defaults = defaults
	return NewAppModel(context.Background(), ctrl, opts), ctrl, cfg.Output.Directory
}

func latestToast(t *testing.T, m *AppModel) string {
	t.Helper()
	toast, ok := m.Toasts().Latest()
	require.True(t, ok, "expected a toast")
	return toast.Title
}

func login(t *testing.T, m *AppModel) {
	t.Helper()
	typeText(m, "qa@example.com")
	press(m, "tab")
	typeText(m, "secret")
	press(m, "enter")
	require.Equal(t, "Login Successful", latestToast(t, m))
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("col_a,col_b\n"), 0o600))
	return path
}

func uploadBoth(t *testing.T, m *AppModel) {
	t.Helper()
	press(m, "m")
	typeText(m, writeFile(t, "data.csv"))
	press(m, "enter")
	press(m, "t")
	typeText(m, writeFile(t, "template.txt"))
	press(m, "enter")
	require.Equal(t, "Files Uploaded Successfully", latestToast(t, m))
}

func TestLoginScreen(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)
	assert.Contains(t, m.View(), "Sign In")

	login(t, m)
	assert.True(t, ctrl.Gate().Authenticated())
	assert.Equal(t, "qa@example.com", ctrl.Gate().Session().UserIdentifier)
	assert.Contains(t, m.View(), "Upload Files")
}

func TestLoginWithEmptyCredentials(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)

	press(m, "enter")
	assert.Equal(t, "Login Failed", latestToast(t, m))
	assert.False(t, ctrl.Gate().Authenticated())
	assert.False(t, ctrl.Gate().Pending())
}

func TestSignupPasswordMismatch(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)

	press(m, "ctrl+n")
	assert.Contains(t, m.View(), "Create Account")

	typeText(m, "QA")
	press(m, "tab")
	typeText(m, "qa@example.com")
	press(m, "tab")
	typeText(m, "a")
	press(m, "tab")
	typeText(m, "b")
	press(m, "enter")

	assert.Equal(t, "Password Mismatch", latestToast(t, m))
	assert.False(t, ctrl.Gate().Authenticated())

	press(m, "backspace")
	typeText(m, "a")
	press(m, "enter")
	assert.Equal(t, "Account Created", latestToast(t, m))
	assert.True(t, ctrl.Gate().Authenticated())
}

func TestPasswordReset(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)

	press(m, "ctrl+r")
	assert.Contains(t, m.View(), "Reset Password")

	press(m, "enter")
	assert.Equal(t, "Email Required", latestToast(t, m))

	typeText(m, "qa@example.com")
	press(m, "enter")
	assert.Equal(t, "Reset Email Sent", latestToast(t, m))
	assert.Contains(t, m.View(), "Sign In")
	assert.False(t, ctrl.Gate().Authenticated())
}

func TestFullWorkflow(t *testing.T) {
	m, ctrl, dir := newTestApp(t, common.TestConfig{
		OutputFormat: "csv",
		QueryTypes:   []string{"count"},
		Complexity:   "basic",
		CommentLevel: "none",
	})
	login(t, m)
	uploadBoth(t, m)

	press(m, "a")
	assert.Equal(t, "Analysis Complete", latestToast(t, m))
	assert.Equal(t, wizard.StepConfigure, ctrl.Wizard().Current())
	assert.NotNil(t, ctrl.Wizard().Store().Analysis())

	press(m, "1")
	assert.Contains(t, m.View(), "data.csv")
	press(m, "2")
	assert.Contains(t, m.View(), "Showing 1000 of 1200 mappings")
	press(m, "enter")
	assert.Equal(t, wizard.StepConfigure, ctrl.Wizard().Viewed())

	press(m, "enter")
	assert.Equal(t, "Test Cases Generated", latestToast(t, m))
	assert.Equal(t, wizard.StepResults, ctrl.Wizard().Current())
	assert.Len(t, ctrl.Wizard().Store().TestCases(), 1)
	assert.Contains(t, m.View(), "count-validation-001.sql")

	press(m, "d")
	assert.Equal(t, "Download Started", latestToast(t, m))
	assert.FileExists(t, filepath.Join(dir, "count-validation-001.sql"))

	press(m, "a")
	assert.Equal(t, "All Files Downloaded", latestToast(t, m))
	matches, err := filepath.Glob(filepath.Join(dir, "test-cases-*.zip"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.False(t, ctrl.DownloadingAll())
}

func TestUploadRejectsInvalidType(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)
	login(t, m)

	press(m, "m")
	typeText(m, writeFile(t, "data.pdf"))
	press(m, "enter")
	assert.Equal(t, "Invalid File Type", latestToast(t, m))
	assert.Nil(t, ctrl.Wizard().Store().Files().Mapping)

	press(m, "a")
	assert.Equal(t, "Files Missing", latestToast(t, m))
	assert.Equal(t, wizard.StepUpload, ctrl.Wizard().Current())
}

func TestRemoveFile(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)
	login(t, m)
	uploadBoth(t, m)

	press(m, "X")
	assert.Equal(t, "File Removed", latestToast(t, m))
	assert.NotNil(t, ctrl.Wizard().Store().Files().Mapping)
	assert.Nil(t, ctrl.Wizard().Store().Files().Template)
}

func TestEmptyQueryTypesRejected(t *testing.T) {
	m, ctrl, _ := newTestApp(t, common.TestConfig{
		OutputFormat: "csv",
		QueryTypes:   []string{"count"},
		Complexity:   "basic",
		CommentLevel: "none",
	})
	login(t, m)
	uploadBoth(t, m)
	press(m, "a")

	press(m, "down", " ")
	assert.Contains(t, m.View(), "Select at least one query type")

	press(m, "enter")
	assert.Equal(t, "Missing Required Field", latestToast(t, m))
	assert.False(t, ctrl.Wizard().Generating())
	assert.Equal(t, wizard.StepConfigure, ctrl.Wizard().Current())
	assert.Nil(t, ctrl.Wizard().Store().Config())
}

func TestLockedStep(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)
	login(t, m)

	press(m, "3")
	assert.Equal(t, wizard.StepConfigure, ctrl.Wizard().Viewed())
	assert.Equal(t, wizard.StepUpload, ctrl.Wizard().Current())
	assert.Contains(t, m.View(), "Configure is locked")
}

func TestClearDropsInflightAnalysis(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)
	login(t, m)
	uploadBoth(t, m)

	_, cmd := m.Update(keyMsg("a"))
	require.NotNil(t, cmd)
	assert.True(t, ctrl.Analyzing())

	press(m, "c")
	assert.Equal(t, "Files Cleared", latestToast(t, m))

	_, next := m.Update(cmd())
	assert.Nil(t, next)
	assert.Nil(t, ctrl.Wizard().Store().Analysis())
	assert.Equal(t, wizard.StepUpload, ctrl.Wizard().Current())
}

func TestAnalysisCompletesAfterSteppingBack(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)
	login(t, m)
	uploadBoth(t, m)

	_, cmd := m.Update(keyMsg("a"))
	require.NotNil(t, cmd)

	press(m, "1")
	assert.Equal(t, wizard.StepUpload, ctrl.Wizard().Current())
	assert.True(t, ctrl.Analyzing())

	m.Update(cmd())
	assert.Equal(t, "Analysis Complete", latestToast(t, m))
	assert.NotNil(t, ctrl.Wizard().Store().Analysis())
	assert.Equal(t, wizard.StepConfigure, ctrl.Wizard().Current())
}

func TestSignOut(t *testing.T) {
	m, ctrl, _ := newTestApp(t, config.DefaultConfig().Generation)
	login(t, m)
	uploadBoth(t, m)

	press(m, "o")
	assert.False(t, ctrl.Gate().Authenticated())
	assert.False(t, ctrl.Wizard().Store().Files().Complete())
	assert.Contains(t, m.View(), "Sign In")
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestApp(t, config.DefaultConfig().Generation)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "Thanks for using tcgen")
}

func TestConfigFormCycle(t *testing.T) {
	f := newConfigForm(common.TestConfig{OutputFormat: "text"})

	f.cycle(1)
	assert.Equal(t, "excel", f.Config().OutputFormat)
	f.cycle(-1)
	assert.Equal(t, "text", f.Config().OutputFormat)

	f.row = rowComplexity
	f.cycle(1)
	assert.Equal(t, "basic", f.Config().Complexity)

	f.row = rowQueryTypes
	f.cycle(-1)
	f.toggle()
	assert.Equal(t, []string{"null"}, f.Config().QueryTypes)
	f.toggle()
	assert.Empty(t, f.Config().QueryTypes)
}

func TestHelpShowsTimings(t *testing.T) {
	m, _, _ := newTestApp(t, config.DefaultConfig().Generation)
	login(t, m)

	press(m, "?")
	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "Timings")
	assert.Contains(t, view, "login")

	press(m, "?")
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}
