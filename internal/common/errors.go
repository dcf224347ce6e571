// Package common defines the error taxonomy shared by the session store, the
// fetch controllers and the forms. Every failure that reaches a view is one
// of AuthError, FetchError or SubmitError, each wrapping its cause so callers
// can still use errors.Is against transport sentinels.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a local validation failure that never reached
	// the network.
	ErrInvalidInput = errors.New("invalid input")

	ErrConsentRequired = errors.New("consent is required")
)

// AuthError is a failed login, signup or a signup form rejected locally.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError is a failed read.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SubmitError is a failed create, update or post. The form that produced it
// keeps its data.
type SubmitError struct {
	Action string
	Err    error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Invalid wraps ErrInvalidInput with a field-specific message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
