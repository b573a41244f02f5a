// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Login outcomes.
const (
	LoginSuccess    = "success"
	LoginInvalid    = "invalid"
	LoginRejected   = "rejected"
	LoginInProgress = "in_progress"
	LoginCancelled  = "cancelled"
	LoginError      = "error"
)

// Restore outcomes.
const (
	RestoreRestored = "restored"
	RestoreEmpty    = "empty"
	RestoreRepaired = "repaired"
	RestoreError    = "error"
)

// Recorder captures session and routing events.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncSessionRestore(outcome string)
	IncLogin(outcome string)
	IncLogout()
	IncGuardDecision(decision string)
	IncLoginRateLimited()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
