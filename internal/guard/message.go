package guard

import (
	"context"
	"errors"

	"github.com/repeatharmony/repeatharmony/internal/auth"
)

// FailureMessage turns a login error into a toast title and a message
// safe to show the user.
func FailureMessage(err error) (title, message string) {
	var validationErr *auth.ValidationError
	var authErr *auth.AuthenticationError

	switch {
	case errors.As(err, &validationErr):
		return "Check your details", validationErr.Error()
	case errors.As(err, &authErr):
		return "Sign in failed", authErr.Reason
	case errors.Is(err, auth.ErrLoginInProgress):
		return "Sign in already in progress", "Please wait for the current sign in to finish."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Sign in interrupted", "The request ended before sign in completed. Please try again."
	default:
		return "Something went wrong", "We could not sign you in. Please try again."
	}
}
