// Package auth holds the mock authentication gate in front of the wizard.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/simulate"
)

// Mode selects which authentication screen is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

func (m Mode) String() string {
	if m == ModeSignup {
		return "signup"
	}
	return "login"
}

// Session is the authenticated user context
type Session struct {
	ID             string    `json:"id"`
	Authenticated  bool      `json:"authenticated"`
	UserIdentifier string    `json:"user_identifier"`
	StartedAt      time.Time `json:"started_at"`
}

// SignupRequest carries the signup form fields
type SignupRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Delays configures the simulated round trips
type Delays struct {
	Login  time.Duration
	Signup time.Duration
}

// Authenticator is the mocked backend. It never touches gate state.
type Authenticator struct {
	clock  simulate.Clock
	delays Delays
	log    *logger.Logger
}

// NewAuthenticator creates the mock backend
func NewAuthenticator(clock simulate.Clock, delays Delays, log *logger.Logger) *Authenticator {
	return &Authenticator{clock: clock, delays: delays, log: log}
}

// Login waits out the simulated delay, then accepts any non-empty email and password
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, error) {
	if err := simulate.Wait(ctx, a.clock, a.delays.Login); err != nil {
		return "", err
	}
	if email == "" || password == "" {
		a.debug("login rejected: empty credentials")
		return "", ErrInvalidCredentials
	}
	return email, nil
}

// Signup rejects mismatched passwords immediately, otherwise succeeds after the delay
func (a *Authenticator) Signup(ctx context.Context, req SignupRequest) (string, error) {
	if err := CheckSignup(req); err != nil {
		return "", err
	}
	if err := simulate.Wait(ctx, a.clock, a.delays.Signup); err != nil {
		return "", err
	}
	return req.Email, nil
}

// RequestPasswordReset pretends to send a reset link
func (a *Authenticator) RequestPasswordReset(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if a.log != nil {
		a.log.InfoWithFields("password reset requested", []logger.Field{logger.F("email", email)})
	}
	return nil
}

func (a *Authenticator) debug(msg string) {
	if a.log != nil {
		a.log.Debug(msg)
	}
}

// CheckSignup performs the synchronous part of signup validation
func CheckSignup(req SignupRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// Gate owns the session and the auth screen state
type Gate struct {
	session Session
	mode    Mode
	pending bool
}

// NewGate returns an unauthenticated gate on the login screen
func NewGate() *Gate {
	return &Gate{mode: ModeLogin}
}

// Session returns a copy of the current session
func (g *Gate) Session() Session {
	return g.session
}

// Authenticated reports whether a session is established
func (g *Gate) Authenticated() bool {
	return g.session.Authenticated
}

// Mode returns the active auth screen
func (g *Gate) Mode() Mode {
	return g.mode
}

// Pending reports whether a login or signup is in flight
func (g *Gate) Pending() bool {
	return g.pending
}

// ToggleMode switches between login and signup
func (g *Gate) ToggleMode() {
	if g.mode == ModeLogin {
		g.mode = ModeSignup
	} else {
		g.mode = ModeLogin
	}
}

// Begin marks an attempt as pending. It returns false while another attempt is in flight.
func (g *Gate) Begin() bool {
	if g.pending || g.session.Authenticated {
		return false
	}
	g.pending = true
	return true
}

// Finish applies the outcome of a pending attempt
func (g *Gate) Finish(email string, err error) (Session, error) {
	g.pending = false
	if err != nil {
		return g.session, err
	}
	g.session = Session{
		ID:             uuid.NewString(),
		Authenticated:  true,
		UserIdentifier: email,
		StartedAt:      time.Now(),
	}
	return g.session, nil
}

// Logout clears the session and returns to the login screen
func (g *Gate) Logout() {
	g.session = Session{}
	g.pending = false
	g.mode = ModeLogin
}

// Login runs a blocking login through the authenticator
func (g *Gate) Login(ctx context.Context, a *Authenticator, email, password string) (Session, error) {
	if !g.Begin() {
		return g.session, ErrBusy
	}
	user, err := a.Login(ctx, email, password)
	if err != nil {
		err = fmt.Errorf("login failed: %w", err)
	}
	return g.Finish(user, err)
}

// Signup runs a blocking signup through the authenticator
func (g *Gate) Signup(ctx context.Context, a *Authenticator, req SignupRequest) (Session, error) {
	if err := CheckSignup(req); err != nil {
		return g.session, fmt.Errorf("signup failed: %w", err)
	}
	if !g.Begin() {
		return g.session, ErrBusy
	}
	user, err := a.Signup(ctx, req)
	if err != nil {
		err = fmt.Errorf("signup failed: %w", err)
	}
	return g.Finish(user, err)
}
