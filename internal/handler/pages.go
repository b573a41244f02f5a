package handler

import (
	"net/http"

	"github.com/repeatharmony/repeatharmony/internal/guard"
	"github.com/repeatharmony/repeatharmony/internal/view"
)

// ProtectedPage is a route that requires a signed-in user.
type ProtectedPage struct {
	Path        string
	Title       string
	Description string
}

// ProtectedPages are the guarded application pages.
var ProtectedPages = []ProtectedPage{
	{"/mood-input", "Mood Check-in", "How are you feeling today? Log your mood to see patterns over time."},
	{"/mood-music", "Mood Music", "Playlists matched to how you feel right now."},
	{"/dashboard", "Dashboard", "Your wellness analytics and progress at a glance."},
	{"/therapy", "AI Therapy", "Guided sessions tailored to what you are going through."},
	{"/forum", "Community Forum", "Share your journey and support others on theirs."},
}

// Protected renders page for the user the guard let through.
func (h *Handler) Protected(page ProtectedPage) guard.PageFunc {
	return func(w http.ResponseWriter, r *http.Request, access guard.Access) {
		h.pages.Write(w, r, http.StatusOK, view.PageProtected, view.Page{
			Title: page.Title,
			User:  access.State.User,
			Body: view.Protected{
				Heading:     page.Title,
				Description: page.Description,
				Assistant:   access.Assistant(),
			},
		})
	}
}
