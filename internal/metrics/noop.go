package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSessionRestore is a no-op.
func (n *NoopRecorder) IncSessionRestore(string) {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(string) {}

// IncLogout is a no-op.
func (n *NoopRecorder) IncLogout() {}

// IncGuardDecision is a no-op.
func (n *NoopRecorder) IncGuardDecision(string) {}

// IncLoginRateLimited is a no-op.
func (n *NoopRecorder) IncLoginRateLimited() {}
