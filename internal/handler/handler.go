// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/repeatharmony/repeatharmony/internal/auth"
	"github.com/repeatharmony/repeatharmony/internal/flash"
	"github.com/repeatharmony/repeatharmony/internal/guard"
	"github.com/repeatharmony/repeatharmony/internal/handler/dto"
	"github.com/repeatharmony/repeatharmony/internal/view"
)

// featureRoutes maps an explorable feature to its page.
var featureRoutes = map[string]string{
	"mood-tracking": "/mood-input",
	"ai-therapy":    "/therapy",
	"music-healing": "/mood-music",
	"community":     "/forum",
}

// Handler serves the public pages and their actions.
type Handler struct {
	registry *auth.Registry
	pages    *view.Responder
	flash    flash.Writer
	logger   *slog.Logger
}

// New creates a new Handler instance.
func New(registry *auth.Registry, pages *view.Responder, flashWriter flash.Writer, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		pages:    pages,
		flash:    flashWriter,
		logger:   logger,
	}
}

// Landing renders the landing page. ?t= selects the testimonial window.
// GET /
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request, access guard.Access) {
	index, _ := strconv.Atoi(r.URL.Query().Get("t"))
	h.pages.Write(w, r, http.StatusOK, view.PageLanding, view.Page{
		User: access.State.User,
		Body: view.NewLanding(index, access.State.Authenticated(), h.flash.ReadLikes(r)),
	})
}

// ToggleLike likes or unlikes a testimonial and returns to the carousel.
// POST /testimonials/{id}/like
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || !view.TestimonialExists(id) {
		h.NotFound(w, r)
		return
	}
	likes := h.flash.ReadLikes(r)
	likes.Toggle(id)
	h.flash.WriteLikes(w, likes)

	index, _ := strconv.Atoi(r.PostFormValue("t"))
	carousel := view.NewCarousel(view.Testimonials, view.TestimonialsPerPage, index)
	http.Redirect(w, r, "/?t="+strconv.Itoa(carousel.Index())+"#testimonial-"+strconv.Itoa(id), http.StatusSeeOther)
}

// GetStarted sends signed-in users to mood input.
// GET /get-started
func (h *Handler) GetStarted(w http.ResponseWriter, r *http.Request) {
	manager, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if manager.IsAuthenticated() {
		http.Redirect(w, r, "/mood-input", http.StatusSeeOther)
		return
	}
	h.redirectWithToast(w, r, "/", flash.Info(
		"Authentication Required",
		"Please create an account or sign in to access RepeatHarmony features.",
	))
}

// LearnMore jumps to the feature overview.
// GET /learn-more
func (h *Handler) LearnMore(w http.ResponseWriter, r *http.Request) {
	h.redirectWithToast(w, r, "/#features", flash.Info(
		"Learn about our features",
		"Discover how RepeatHarmony can help improve your mental wellness.",
	))
}

// Explore opens the page behind a feature card.
// GET /explore/{feature}
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	manager, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if !manager.IsAuthenticated() {
		h.redirectWithToast(w, r, "/", flash.Destructive(
			"Sign in Required",
			"Create a free account to explore this feature.",
		))
		return
	}

	feature := chi.URLParam(r, "feature")
	target, found := featureRoutes[feature]
	if !found {
		target = "/dashboard"
	}
	h.redirectWithToast(w, r, target, flash.Info(
		"Feature Access",
		"Exploring "+strings.Replace(feature, "-", " ", 1)+" features.",
	))
}

// ViewDashboard opens the dashboard for signed-in users.
// GET /view-dashboard
func (h *Handler) ViewDashboard(w http.ResponseWriter, r *http.Request) {
	manager, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if !manager.IsAuthenticated() {
		h.redirectWithToast(w, r, "/", flash.Destructive(
			"Authentication Required",
			"Sign in to view your personalized dashboard.",
		))
		return
	}
	h.redirectWithToast(w, r, "/dashboard", flash.Info(
		"Dashboard Preview",
		"View your wellness analytics and progress.",
	))
}

// Newsletter acknowledges a newsletter signup.
// POST /newsletter
func (h *Handler) Newsletter(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.PostFormValue("email")) == "" {
		h.redirectWithToast(w, r, "/", flash.Destructive(
			"Newsletter Subscription",
			"Please enter your email address.",
		))
		return
	}
	h.redirectWithToast(w, r, "/", flash.Info(
		"Newsletter Subscription",
		"Thank you for subscribing to RepeatHarmony updates!",
	))
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("page not found", slog.String("path", r.URL.Path))
	h.pages.Write(w, r, http.StatusNotFound, view.PageNotFound, view.Page{
		Title: "Page not found",
		Body:  view.NotFound{Path: r.URL.Path},
	})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(http.StatusText(http.StatusMethodNotAllowed)))
}

// resolve returns the caller's session, answering with the error page on failure.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*auth.Manager, bool) {
	manager, err := h.registry.Resolve(w, r)
	if err != nil {
		h.logger.Error("failed to resolve browser session", slog.String("error", err.Error()))
		h.pages.Write(w, r, http.StatusInternalServerError, view.PageError, view.Page{Body: view.SessionUnavailable})
		return nil, false
	}
	return manager, true
}

func (h *Handler) redirectWithToast(w http.ResponseWriter, r *http.Request, target string, notice flash.Notice) {
	h.flash.Write(w, notice)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, Code: code})
}
