package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/tcgen/internal/auth"
	"github.com/yildizm/tcgen/internal/emoji"
	"github.com/yildizm/tcgen/internal/ui/components"
)

// field indexes
const (
	loginEmail = iota
	loginPassword
)

const (
	signupName = iota
	signupEmail
	signupPassword
	signupConfirm
)

type authScreens struct {
	login     *components.Form
	signup    *components.Form
	reset     *components.Form
	resetting bool
}

func newAuthScreens() authScreens {
	return authScreens{
		login: components.NewForm("Sign In",
			components.Field{Label: "Email", Placeholder: "you@company.com"},
			components.Field{Label: "Password", Masked: true},
		),
		signup: components.NewForm("Create Account",
			components.Field{Label: "Full Name"},
			components.Field{Label: "Email", Placeholder: "you@company.com"},
			components.Field{Label: "Password", Masked: true},
			components.Field{Label: "Confirm Password", Masked: true},
		),
		reset: components.NewForm("Reset Password",
			components.Field{Label: "Email", Placeholder: "you@company.com"},
		),
	}
}

// activeForm returns the form shown for the current gate mode
func (m *AppModel) activeForm() *components.Form {
	switch {
	case m.auth.resetting:
		return m.auth.reset
	case m.ctrl.Gate().Mode() == auth.ModeSignup:
		return m.auth.signup
	default:
		return m.auth.login
	}
}

func (m *AppModel) handleAuthKey(msg tea.KeyMsg) tea.Cmd {
	if m.ctrl.Gate().Pending() {
		return nil
	}

	switch msg.String() {
	case "enter":
		return m.submitAuth()
	case "ctrl+n":
		if !m.auth.resetting {
			m.ctrl.ToggleMode()
		}
		return nil
	case "ctrl+r":
		if m.ctrl.Gate().Mode() == auth.ModeLogin {
			m.auth.resetting = true
			m.auth.reset.SetValue(0, m.auth.login.Value(loginEmail))
		}
		return nil
	case "esc":
		if m.auth.resetting {
			m.auth.resetting = false
			return nil
		}
		m.quitting = true
		return tea.Quit
	}

	m.activeForm().HandleKey(msg)
	return nil
}

func (m *AppModel) submitAuth() tea.Cmd {
	if m.auth.resetting {
		return m.submitReset()
	}

	if m.ctrl.Gate().Mode() == auth.ModeSignup {
		f := m.auth.signup
		req := auth.SignupRequest{
			Name:            f.Value(signupName),
			Email:           f.Value(signupEmail),
			Password:        f.Value(signupPassword),
			ConfirmPassword: f.Value(signupConfirm),
		}
		if err := m.ctrl.BeginSignup(req); err != nil {
			if errors.Is(err, auth.ErrPasswordMismatch) {
				return m.toast(components.ToastError, "Password Mismatch", "Passwords do not match")
			}
			return m.toastError("Signup Failed", err)
		}
		return tea.Batch(signupCmd(m.ctx, m.ctrl, req), m.startTicking())
	}

	f := m.auth.login
	if err := m.ctrl.BeginLogin(); err != nil {
		return m.toastError("Login Failed", err)
	}
	return tea.Batch(loginCmd(m.ctx, m.ctrl, f.Value(loginEmail), f.Value(loginPassword)), m.startTicking())
}

func (m *AppModel) submitReset() tea.Cmd {
	if err := m.ctrl.RequestPasswordReset(m.auth.reset.Value(0)); err != nil {
		return m.toast(components.ToastError, "Email Required", "Please enter your email address")
	}
	m.auth.resetting = false
	m.auth.reset.Reset()
	return m.toast(components.ToastSuccess, "Reset Email Sent", "Check your inbox for password reset instructions")
}

func (m *AppModel) handleAuthDone(msg authDoneMsg) tea.Cmd {
	_, err := m.ctrl.FinishAuth(msg.user, msg.err)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return m.toast(components.ToastError, "Login Failed", "Please enter valid credentials")
		}
		return m.toastError("Authentication Failed", err)
	}

	m.auth = newAuthScreens()
	m.resetWorkflowViews()
	if msg.mode == auth.ModeSignup {
		return m.toast(components.ToastSuccess, "Account Created", "Your account has been created successfully")
	}
	return m.toast(components.ToastSuccess, "Login Successful", "Welcome to Data Test Case Generator")
}

func (m *AppModel) renderAuth() string {
	s := m.styles
	form := m.activeForm()

	title := s.Title.Render(emoji.GetEmoji("lock") + " Data Test Case Generator")
	subtitle := s.Muted.Render("Generate SQL test cases from your data mappings")

	var status string
	if m.ctrl.Gate().Pending() {
		m.spinner.SetLabel("Please wait...")
		status = m.spinner.Render()
	}

	var hints string
	switch {
	case m.auth.resetting:
		hints = keyHints(s, "enter", "send reset link", "esc", "back to sign in")
	case m.ctrl.Gate().Mode() == auth.ModeSignup:
		hints = keyHints(s, "tab", "next field", "enter", "create account", "ctrl+n", "sign in instead")
	default:
		hints = keyHints(s, "tab", "next field", "enter", "sign in", "ctrl+n", "create account", "ctrl+r", "forgot password")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		form.Render(),
		"",
		status,
		hints,
	)
	return lipgloss.Place(m.width, max(20, m.height-8), lipgloss.Center, lipgloss.Center, s.Box.Render(content))
}
