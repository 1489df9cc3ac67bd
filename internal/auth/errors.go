package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when login is attempted with an empty email or password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch is returned when signup passwords differ
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrEmailRequired is returned by a password reset request without an address
	ErrEmailRequired = errors.New("email address required")

	// ErrBusy is returned while another login or signup is pending
	ErrBusy = errors.New("authentication already in progress")
)
