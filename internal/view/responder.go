package view

import (
	"log/slog"
	"net/http"

	"github.com/repeatharmony/repeatharmony/internal/flash"
)

// Responder renders pages for a request, attaching any pending toast.
type Responder struct {
	Renderer *Renderer
	Flash    flash.Writer
	Logger   *slog.Logger
}

// Write renders page name. A render failure is logged and answered with a
// plain 500.
func (rs *Responder) Write(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	if notice, ok := rs.Flash.ReadAndClear(w, r); ok {
		page.Toast = &notice
	}
	if page.Path == "" {
		page.Path = r.URL.Path
	}

	if err := rs.Renderer.Render(w, status, name, page); err != nil {
		rs.Logger.Error("failed to render page",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
