package controller

import "errors"

var (
	// ErrNotAuthenticated is returned for workflow actions before sign-in
	ErrNotAuthenticated = errors.New("sign in required")

	// ErrStepUnavailable is returned when the wizard rejects a transition
	ErrStepUnavailable = errors.New("step not available yet")

	// ErrBusy is returned while the same workflow action is already running
	ErrBusy = errors.New("operation already in progress")

	// ErrUnknownTestCase is returned when a download names no generated case
	ErrUnknownTestCase = errors.New("unknown test case")
)
