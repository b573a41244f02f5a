package handler

import (
	"log/slog"
	"net/http"

	"github.com/repeatharmony/repeatharmony/internal/auth"
	"github.com/repeatharmony/repeatharmony/internal/handler/dto"
)

// SessionHandler exposes the session state as JSON.
type SessionHandler struct {
	registry *auth.Registry
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(registry *auth.Registry, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{registry: registry, logger: logger}
}

// Get handles GET /api/v1/session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	manager, err := h.registry.Resolve(w, r)
	if err != nil {
		h.logger.Error("failed to resolve browser session", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, dto.ToSessionResponse(manager.Snapshot()))
}
