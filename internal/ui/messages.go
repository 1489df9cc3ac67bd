package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/tcgen/internal/auth"
	"github.com/yildizm/tcgen/internal/common"
	"github.com/yildizm/tcgen/internal/controller"
)

// Each async task returns exactly one of these. Workflow messages carry the
// task, and with it the epoch the work started in.
type authDoneMsg struct {
	mode auth.Mode
	user string
	err  error
}

type analysisDoneMsg struct {
	task   controller.AnalysisTask
	result *common.AnalysisResult
	err    error
}

type generationDoneMsg struct {
	task  controller.GenerationTask
	cases []common.TestCase
	err   error
}

type packageDoneMsg struct {
	task controller.PackageTask
	path string
	err  error
}

type tickMsg time.Time

type toastExpiredMsg struct {
	id int
}

func loginCmd(ctx context.Context, c *controller.Controller, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := c.RunLogin(ctx, email, password)
		return authDoneMsg{mode: auth.ModeLogin, user: user, err: err}
	}
}

func signupCmd(ctx context.Context, c *controller.Controller, req auth.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		user, err := c.RunSignup(ctx, req)
		return authDoneMsg{mode: auth.ModeSignup, user: user, err: err}
	}
}

func analysisCmd(ctx context.Context, c *controller.Controller, task controller.AnalysisTask) tea.Cmd {
	return func() tea.Msg {
		result, err := c.RunAnalysis(ctx, task)
		return analysisDoneMsg{task: task, result: result, err: err}
	}
}

func generationCmd(ctx context.Context, c *controller.Controller, task controller.GenerationTask) tea.Cmd {
	return func() tea.Msg {
		cases, err := c.RunGeneration(ctx, task)
		return generationDoneMsg{task: task, cases: cases, err: err}
	}
}

func packageCmd(ctx context.Context, c *controller.Controller, task controller.PackageTask) tea.Cmd {
	return func() tea.Msg {
		path, err := c.RunDownloadAll(ctx, task)
		return packageDoneMsg{task: task, path: path, err: err}
	}
}

// tick drives the spinner
func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func expireToast(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
