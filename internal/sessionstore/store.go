// Package sessionstore persists the signed-in user record of each browser.
//
// Every browser owns a namespace in a key-value backend and holds at most
// one entry in it, under UserKey. The Auth Session Manager is the only
// reader and writer, so last writer wins.
package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/repeatharmony/repeatharmony/internal/model"
)

// UserKey is the fixed key of the user record inside a browser namespace.
const UserKey = "repeatharmony_user"

var (
	// ErrNotFound is returned by a Backend when a key does not exist.
	ErrNotFound = errors.New("key not found")
	// ErrNoSession indicates the browser has no stored user record.
	ErrNoSession = errors.New("no stored session")
)

// Backend is a minimal key-value store with optional expiry.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store reads and writes user records in per-browser namespaces.
type Store struct {
	backend Backend
	ttl     time.Duration
}

// New creates a Store. A zero ttl keeps records until they are cleared.
func New(backend Backend, ttl time.Duration) *Store {
	return &Store{backend: backend, ttl: ttl}
}

// Key returns the backend key holding the user record for browserID.
func Key(browserID string) string {
	return "browser:" + browserID + ":" + UserKey
}

// Load returns the stored user for browserID.
// Returns ErrNoSession when nothing is stored and a *SchemaError when the
// stored value does not match the record schema.
func (s *Store) Load(ctx context.Context, browserID string) (*model.User, error) {
	data, err := s.backend.Get(ctx, Key(browserID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return Decode(data)
}

// Save writes user as the record for browserID, replacing any previous one.
func (s *Store) Save(ctx context.Context, browserID string, user *model.User) error {
	data, err := Encode(user)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, Key(browserID), data, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the record for browserID. Clearing an absent record is not an error.
func (s *Store) Clear(ctx context.Context, browserID string) error {
	if err := s.backend.Delete(ctx, Key(browserID)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
