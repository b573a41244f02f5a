package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/repeatharmony/repeatharmony/internal/identity"
	"github.com/repeatharmony/repeatharmony/internal/metrics"
	"github.com/repeatharmony/repeatharmony/internal/model"
	"github.com/repeatharmony/repeatharmony/internal/sessionstore"
)

// Deps are the collaborators shared by every Manager.
type Deps struct {
	Store         *sessionstore.Store
	Authenticator Authenticator
	Logger        *slog.Logger
	Metrics       metrics.Recorder
	// Now and NewID default to time.Now and ulid.Make.
	Now   func() time.Time
	NewID func() string
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewNoop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = func() string { return ulid.Make().String() }
	}
	if d.Authenticator == nil {
		d.Authenticator = Simulated{Latency: DefaultSimulatedLatency}
	}
	return d
}

// Manager is the single source of truth for one browser's session.
// It is safe for concurrent use by the requests of that browser.
type Manager struct {
	browserID string
	deps      Deps

	mu       sync.Mutex
	user     *model.User
	loading  bool
	inFlight bool
	lastErr  error
	lastSeen time.Time
	// retired is set by the Registry sweep. A retired Manager refuses new
	// logins so that no Save races the restore of its replacement.
	retired bool
}

// NewManager creates the Manager for browserID and restores its session
// from the store before returning.
func NewManager(ctx context.Context, browserID string, deps Deps) *Manager {
	deps = deps.withDefaults()
	m := &Manager{
		browserID: browserID,
		deps:      deps,
		loading:   true,
		lastSeen:  deps.Now(),
	}
	m.restore(ctx)
	return m
}

// BrowserID returns the browser this Manager belongs to.
func (m *Manager) BrowserID() string {
	return m.browserID
}

// restore loads the persisted user. A record failing schema validation is
// deleted so the next restore starts clean.
func (m *Manager) restore(ctx context.Context) {
	logger := m.deps.Logger.With(slog.String("browser_id", m.browserID))

	user, err := m.deps.Store.Load(ctx, m.browserID)
	var schemaErr *sessionstore.SchemaError
	switch {
	case err == nil:
		m.deps.Metrics.IncSessionRestore(metrics.RestoreRestored)
	case errors.Is(err, sessionstore.ErrNoSession):
		m.deps.Metrics.IncSessionRestore(metrics.RestoreEmpty)
	case errors.As(err, &schemaErr):
		logger.Warn("discarding corrupt session record", slog.String("reason", schemaErr.Reason))
		if clearErr := m.deps.Store.Clear(ctx, m.browserID); clearErr != nil {
			logger.Error("failed to clear corrupt session record", slog.String("error", clearErr.Error()))
		}
		m.deps.Metrics.IncSessionRestore(metrics.RestoreRepaired)
	default:
		logger.Error("failed to restore session", slog.String("error", err.Error()))
		m.deps.Metrics.IncSessionRestore(metrics.RestoreError)
	}

	m.mu.Lock()
	m.user = user
	m.loading = false
	m.mu.Unlock()
}

// Login authenticates, derives the display identity, persists the new
// user record and makes it current.
//
// name overrides the name derived from email when non-blank. A second
// Login while one is running fails with ErrLoginInProgress. If ctx ends
// before authentication completes the result is discarded and ctx.Err()
// is returned.
func (m *Manager) Login(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		m.deps.Metrics.IncLogin(metrics.LoginInvalid)
		m.mu.Lock()
		m.lastErr = err
		m.mu.Unlock()
		return nil, err
	}

	m.mu.Lock()
	if m.retired {
		m.mu.Unlock()
		return nil, ErrSessionRetired
	}
	if m.inFlight {
		m.mu.Unlock()
		m.deps.Metrics.IncLogin(metrics.LoginInProgress)
		return nil, ErrLoginInProgress
	}
	m.inFlight = true
	m.loading = true
	m.mu.Unlock()

	user, err := m.authenticate(ctx, Credentials{
		Email:    email,
		Password: password,
		Name:     name,
		Signup:   strings.TrimSpace(name) != "",
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight = false
	m.loading = false
	m.lastSeen = m.deps.Now()

	switch {
	case err == nil:
		m.user = user
		m.lastErr = nil
		m.deps.Metrics.IncLogin(metrics.LoginSuccess)
		m.deps.Logger.Info("login succeeded",
			slog.String("browser_id", m.browserID),
			slog.String("user_id", user.ID),
		)
		return user, nil
	case ctx.Err() != nil:
		m.deps.Metrics.IncLogin(metrics.LoginCancelled)
		return nil, ctx.Err()
	case isRejection(err):
		m.lastErr = err
		m.deps.Metrics.IncLogin(metrics.LoginRejected)
		m.deps.Logger.Warn("login rejected",
			slog.String("browser_id", m.browserID),
			slog.String("reason", err.Error()),
		)
		return nil, err
	default:
		m.deps.Metrics.IncLogin(metrics.LoginError)
		m.deps.Logger.Error("login failed",
			slog.String("browser_id", m.browserID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
}

// authenticate runs the Authenticator and persists the resulting record.
// It holds no lock.
func (m *Manager) authenticate(ctx context.Context, creds Credentials) (*model.User, error) {
	ident, err := m.deps.Authenticator.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	email := ident.Email
	if email == "" {
		email = creds.Email
	}
	name := ident.Name
	if strings.TrimSpace(name) == "" {
		name = creds.Name
	}
	name = identity.ResolveName(email, name)

	user := &model.User{
		ID:       m.deps.NewID(),
		Name:     name,
		Email:    email,
		Initials: identity.Initials(name),
		JoinedAt: m.deps.Now().UTC(),
	}

	if err := m.deps.Store.Save(ctx, m.browserID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the stored record and the current user.
// Store failures are logged; the in-memory session is cleared regardless.
// A retired Manager still clears the record and returns ErrSessionRetired
// so the caller can sign out the current Manager too.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.deps.Store.Clear(ctx, m.browserID); err != nil {
		m.deps.Logger.Error("failed to clear session record",
			slog.String("browser_id", m.browserID),
			slog.String("error", err.Error()),
		)
	}

	m.mu.Lock()
	m.user = nil
	m.lastErr = nil
	m.lastSeen = m.deps.Now()
	retired := m.retired
	m.mu.Unlock()

	if retired {
		return ErrSessionRetired
	}
	m.deps.Metrics.IncLogout()
	return nil
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// IsLoading reports whether a restore or login is in progress.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// User returns a copy of the current user, or nil.
func (m *Manager) User() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyUser(m.user)
}

// LastError returns the error of the most recent failed login attempt,
// cleared by a successful login or a logout.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Snapshot returns the whole session state read under one lock.
func (m *Manager) Snapshot() model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSeen = m.deps.Now()
	return model.SessionState{
		User:      copyUser(m.user),
		Loading:   m.loading,
		LastError: m.lastErr,
	}
}

// retireIfIdle retires the Manager when it was last used before cutoff and
// no login is running. The check and the retirement happen under one lock.
func (m *Manager) retireIfIdle(cutoff time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight || m.lastSeen.After(cutoff) {
		return false
	}
	m.retired = true
	return true
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if identity.LocalPart(email) == "" {
		return &ValidationError{Field: "email", Reason: "is missing the part before @"}
	}
	return nil
}

func isRejection(err error) bool {
	var authErr *AuthenticationError
	var validationErr *ValidationError
	return errors.As(err, &authErr) || errors.As(err, &validationErr)
}

func copyUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
