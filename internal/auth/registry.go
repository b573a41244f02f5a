package auth

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Registry owns one Manager per browser. It is built once at startup and
// handed to every component that needs session state.
type Registry struct {
	cookie *BrowserCookie
	deps   Deps

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	once    sync.Once
	manager atomic.Pointer[Manager]
}

// NewRegistry creates a Registry issuing browser cookies with cookie.
func NewRegistry(cookie *BrowserCookie, deps Deps) *Registry {
	return &Registry{
		cookie:  cookie,
		deps:    deps.withDefaults(),
		entries: make(map[string]*registryEntry),
	}
}

// Manager returns the Manager for browserID, creating and restoring it on
// first use. Concurrent first callers wait for the single restore.
func (r *Registry) Manager(ctx context.Context, browserID string) *Manager {
	r.mu.Lock()
	entry, ok := r.entries[browserID]
	if !ok {
		entry = &registryEntry{}
		r.entries[browserID] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		// The restore outlives the request that happened to trigger it.
		entry.manager.Store(NewManager(context.WithoutCancel(ctx), browserID, r.deps))
	})
	return entry.manager.Load()
}

// Resolve identifies the browser behind r, issuing a new browser cookie
// when none is valid, and returns its Manager.
func (r *Registry) Resolve(w http.ResponseWriter, req *http.Request) (*Manager, error) {
	browserID, err := r.cookie.Resolve(w, req)
	if err != nil {
		return nil, err
	}
	return r.Manager(req.Context(), browserID), nil
}

// Forget drops the in-memory Manager for browserID. The stored record is
// untouched, so the next request restores it.
func (r *Registry) Forget(browserID string) {
	r.mu.Lock()
	delete(r.entries, browserID)
	r.mu.Unlock()
}

// Len returns the number of in-memory sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep forgets Managers idle for longer than idle and retires them.
// Sessions with a login in flight are kept. Returns the number of
// sessions dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.deps.Now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, entry := range r.entries {
		m := entry.manager.Load()
		if m == nil {
			continue
		}
		if !m.retireIfIdle(cutoff) {
			continue
		}
		delete(r.entries, id)
		dropped++
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				r.deps.Logger.Debug("swept idle sessions", slog.Int("count", n))
			}
		}
	}
}
