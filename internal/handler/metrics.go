package handler

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/repeatharmony/repeatharmony/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeLabeled(w, "repeatharmony_session_restores_total", "outcome", snap.Restores)
	writeLabeled(w, "repeatharmony_logins_total", "outcome", snap.Logins)
	writeMetric(w, "repeatharmony_logouts_total %d\n", snap.Logouts)
	writeLabeled(w, "repeatharmony_guard_decisions_total", "decision", snap.GuardDecisions)
	writeMetric(w, "repeatharmony_login_rate_limited_total %d\n", snap.LoginRateLimited)
}

// writeLabeled writes one sample per label value, sorted for stable output.
func writeLabeled(w http.ResponseWriter, name, label string, counts map[string]uint64) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		writeMetric(w, "%s{%s=%q} %d\n", name, label, k, counts[k])
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
