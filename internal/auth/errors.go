// Package auth owns browser sessions: who is signed in, how they signed in,
// and how that state survives a reload.
package auth

import "errors"

// ErrLoginInProgress is returned when a login is already running for the
// same browser session. Concurrent attempts are rejected, not queued.
var ErrLoginInProgress = errors.New("login already in progress")

// ErrSessionRetired is returned by a Manager that the Registry has already
// swept. The caller should fetch the current Manager from the Registry and
// retry there.
var ErrSessionRetired = errors.New("session manager retired")

// ValidationError reports login input that was refused before any
// authentication was attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// AuthenticationError reports credentials that were rejected.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}
