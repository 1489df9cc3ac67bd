// Package ui is the Bubble Tea front end: auth screens followed by the four-step dashboard.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/controller"
	"github.com/yildizm/tcgen/internal/ui/components"
)

// Options configures the app model
type Options struct {
	// Defaults prefill the configure form
	Defaults     common.TestConfig
	PreviewLimit int
	// Animate enables spinner ticks and toast expiry
	Animate  bool
	ToastTTL time.Duration
}

// DefaultOptions returns the options used by tcgen run
func DefaultOptions() Options {
	return Options{
		PreviewLimit: 1000,
		Animate:      true,
		ToastTTL:     4 * time.Second,
	}
}

// AppModel is the root model. All state changes go through the controller.
type AppModel struct {
	ctrl   *controller.Controller
	ctx    context.Context
	opts   Options
	styles *Styles

	width    int
	height   int
	quitting bool
	ticking  bool
	showHelp bool

	auth    authScreens
	upload  uploadPanel
	config  configForm
	results resultsPanel
	preview *components.List

	spinner *components.Spinner
	busyBar *components.BusyBar
	toasts  *components.ToastStack
}

// NewAppModel creates the root model
func NewAppModel(ctx context.Context, ctrl *controller.Controller, opts Options) *AppModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.ToastTTL <= 0 {
		opts.ToastTTL = DefaultOptions().ToastTTL
	}
	return &AppModel{
		ctrl:    ctrl,
		ctx:     ctx,
		opts:    opts,
		styles:  NewStyles(DefaultTheme),
		width:   100,
		height:  40,
		auth:    newAuthScreens(),
		upload:  newUploadPanel(),
		config:  newConfigForm(opts.Defaults),
		spinner: components.NewSpinner(),
		busyBar: components.NewBusyBar(30),
		toasts:  components.NewToastStack(3),
	}
}

// Init initializes the model
func (m *AppModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.ctrl.Gate().Authenticated() {
			return m, m.handleAuthKey(msg)
		}
		return m, m.handleDashboardKey(msg)
	case tickMsg:
		return m, m.handleTick()
	case toastExpiredMsg:
		m.toasts.Dismiss(msg.id)
		return m, nil
	case authDoneMsg:
		return m, m.handleAuthDone(msg)
	case analysisDoneMsg:
		return m, m.handleAnalysisDone(msg)
	case generationDoneMsg:
		return m, m.handleGenerationDone(msg)
	case packageDoneMsg:
		return m, m.handlePackageDone(msg)
	}
	return m, nil
}

// View renders the active screen
func (m *AppModel) View() string {
	if m.quitting {
		return m.styles.Success.Render("Thanks for using tcgen!") + "\n"
	}

	var body string
	if m.ctrl.Gate().Authenticated() {
		body = m.renderDashboard()
	} else {
		body = m.renderAuth()
	}

	if toasts := m.toasts.Render(min(50, m.width)); toasts != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", toasts)
	}
	return body
}

// Toasts exposes the notification stack
func (m *AppModel) Toasts() *components.ToastStack {
	return m.toasts
}

func (m *AppModel) busy() bool {
	return m.ctrl.Gate().Pending() || m.ctrl.Analyzing() || m.ctrl.Wizard().Generating() || m.ctrl.DownloadingAll()
}

// startTicking starts the spinner loop unless it is already running
func (m *AppModel) startTicking() tea.Cmd {
	if !m.opts.Animate || m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func (m *AppModel) handleTick() tea.Cmd {
	if !m.busy() {
		m.ticking = false
		return nil
	}
	m.spinner.Tick()
	m.busyBar.Tick()
	return tick()
}

func (m *AppModel) toast(kind components.ToastKind, title, description string) tea.Cmd {
	id := m.toasts.Push(kind, title, description)
	if !m.opts.Animate {
		return nil
	}
	return expireToast(id, m.opts.ToastTTL)
}

func (m *AppModel) toastError(title string, err error) tea.Cmd {
	return m.toast(components.ToastError, title, err.Error())
}

// resetWorkflowViews drops the per-run view state after a reset or sign-out
func (m *AppModel) resetWorkflowViews() {
	m.upload = newUploadPanel()
	m.config = newConfigForm(m.opts.Defaults)
	m.results = resultsPanel{}
	m.preview = nil
}

// RunContext runs the TUI until the user quits or ctx is done
func RunContext(ctx context.Context, ctrl *controller.Controller, opts Options) error {
	model := NewAppModel(ctx, ctrl, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
