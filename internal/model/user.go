// Package model defines domain entities for the application.
package model

import "time"

// User is the signed-in identity held by a browser session.
// A User exists if and only if the session is authenticated.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Initials string    `json:"initials"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Account is a credential-backed user stored in PostgreSQL.
// Only used when the site runs in credentials mode.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
