package model

// SessionState is a point-in-time view of one browser's auth session.
type SessionState struct {
	User      *User
	Loading   bool
	LastError error
}

// Authenticated reports whether a user record is present.
func (s SessionState) Authenticated() bool {
	return s.User != nil
}
