package metrics

import (
	"maps"
	"sync"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Restores         map[string]uint64
	Logins           map[string]uint64
	Logouts          uint64
	GuardDecisions   map[string]uint64
	LoginRateLimited uint64
}

// InMemoryRecorder keeps counters in process memory and serves them through Snapshot.
type InMemoryRecorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{snap: Snapshot{
		Restores:       make(map[string]uint64),
		Logins:         make(map[string]uint64),
		GuardDecisions: make(map[string]uint64),
	}}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Restores:         maps.Clone(m.snap.Restores),
		Logins:           maps.Clone(m.snap.Logins),
		Logouts:          m.snap.Logouts,
		GuardDecisions:   maps.Clone(m.snap.GuardDecisions),
		LoginRateLimited: m.snap.LoginRateLimited,
	}
}

// IncSessionRestore counts a restore by outcome.
func (m *InMemoryRecorder) IncSessionRestore(outcome string) {
	m.mu.Lock()
	m.snap.Restores[outcome]++
	m.mu.Unlock()
}

// IncLogin counts a login attempt by outcome.
func (m *InMemoryRecorder) IncLogin(outcome string) {
	m.mu.Lock()
	m.snap.Logins[outcome]++
	m.mu.Unlock()
}

// IncLogout counts a logout.
func (m *InMemoryRecorder) IncLogout() {
	m.mu.Lock()
	m.snap.Logouts++
	m.mu.Unlock()
}

// IncGuardDecision counts a route guard decision.
func (m *InMemoryRecorder) IncGuardDecision(decision string) {
	m.mu.Lock()
	m.snap.GuardDecisions[decision]++
	m.mu.Unlock()
}

// IncLoginRateLimited counts a login refused by the rate limiter.
func (m *InMemoryRecorder) IncLoginRateLimited() {
	m.mu.Lock()
	m.snap.LoginRateLimited++
	m.mu.Unlock()
}
