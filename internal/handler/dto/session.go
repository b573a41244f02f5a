// Package dto provides Data Transfer Objects for API responses.
package dto

import (
	"time"

	"github.com/repeatharmony/repeatharmony/internal/model"
)

// SessionResponse describes the caller's browser session.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Loading       bool          `json:"loading"`
	User          *UserResponse `json:"user"`
}

// UserResponse is the signed-in user.
type UserResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Initials string    `json:"initials"`
	JoinedAt time.Time `json:"joined_at"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ToSessionResponse converts a session snapshot.
func ToSessionResponse(state model.SessionState) SessionResponse {
	resp := SessionResponse{
		Authenticated: state.Authenticated(),
		Loading:       state.Loading,
	}
	if u := state.User; u != nil {
		resp.User = &UserResponse{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Initials: u.Initials,
			JoinedAt: u.JoinedAt,
		}
	}
	return resp
}
