package auth

import (
	"context"
	"time"
)

// DefaultSimulatedLatency mirrors a network round trip in simulated mode.
const DefaultSimulatedLatency = time.Second

// Credentials are the values submitted by a login or signup form.
type Credentials struct {
	Email    string
	Password string
	Name     string
	Signup   bool
}

// Identity is what an Authenticator vouches for.
// An empty Name lets the caller derive one from the email.
type Identity struct {
	Email string
	Name  string
}

// Authenticator checks credentials.
// Rejections are reported as *AuthenticationError or *ValidationError.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Identity, error)
}

// Simulated accepts every credential after a fixed delay.
// It performs no verification and must not guard anything sensitive.
type Simulated struct {
	Latency time.Duration
}

// Authenticate waits for the configured latency, then accepts creds.
// Returns ctx.Err() if the context ends first.
func (s Simulated) Authenticate(ctx context.Context, creds Credentials) (Identity, error) {
	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Identity{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Identity{}, err
	}

	return Identity{Email: creds.Email, Name: creds.Name}, nil
}
