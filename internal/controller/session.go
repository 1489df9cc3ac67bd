package controller

import (
	"context"
	"fmt"

	"github.com/yildizm/tcgen/internal/auth"
	"github.com/yildizm/tcgen/internal/logger"
	"github.com/yildizm/tcgen/internal/monitor"
)

// BeginLogin marks a login attempt as pending
func (c *Controller) BeginLogin() error {
	if !c.gate.Begin() {
		return auth.ErrBusy
	}
	return nil
}

// RunLogin performs the mock round trip. Safe to call off the owner goroutine.
func (c *Controller) RunLogin(ctx context.Context, email, password string) (string, error) {
	user, err := track(c.svc.Monitor, monitor.OperationLogin, func() (string, error) {
		return c.svc.Auth.Login(ctx, email, password)
	})
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	return user, nil
}

// BeginSignup checks the form and marks a signup attempt as pending.
// A password mismatch fails here without any delay.
func (c *Controller) BeginSignup(req auth.SignupRequest) error {
	if err := auth.CheckSignup(req); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	if !c.gate.Begin() {
		return auth.ErrBusy
	}
	return nil
}

// RunSignup performs the mock signup round trip
func (c *Controller) RunSignup(ctx context.Context, req auth.SignupRequest) (string, error) {
	user, err := track(c.svc.Monitor, monitor.OperationSignup, func() (string, error) {
		return c.svc.Auth.Signup(ctx, req)
	})
	if err != nil {
		return "", fmt.Errorf("signup failed: %w", err)
	}
	return user, nil
}

// FinishAuth applies the outcome of a login or signup attempt
func (c *Controller) FinishAuth(user string, err error) (auth.Session, error) {
	session, err := c.gate.Finish(user, err)
	if err != nil {
		c.log.WarnWithFields("authentication failed", []logger.Field{logger.Error(err)})
		return session, err
	}
	c.log.InfoWithFields("signed in", []logger.Field{
		logger.F("user", session.UserIdentifier),
		logger.F("session", session.ID),
	})
	return session, nil
}

// Login signs in on the caller's goroutine
func (c *Controller) Login(ctx context.Context, email, password string) (auth.Session, error) {
	if err := c.BeginLogin(); err != nil {
		return c.gate.Session(), err
	}
	user, err := c.RunLogin(ctx, email, password)
	return c.FinishAuth(user, err)
}

// Signup creates an account and signs in on the caller's goroutine
func (c *Controller) Signup(ctx context.Context, req auth.SignupRequest) (auth.Session, error) {
	if err := c.BeginSignup(req); err != nil {
		return c.gate.Session(), err
	}
	user, err := c.RunSignup(ctx, req)
	return c.FinishAuth(user, err)
}
