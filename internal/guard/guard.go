// Package guard decides what a protected page shows for the current
// session and renders that branch.
package guard

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/repeatharmony/repeatharmony/internal/auth"
	"github.com/repeatharmony/repeatharmony/internal/metrics"
	"github.com/repeatharmony/repeatharmony/internal/model"
	"github.com/repeatharmony/repeatharmony/internal/view"
)

// Decision is the branch a guarded route renders.
type Decision string

const (
	Loading       Decision = "loading"
	Content       Decision = "content"
	Authenticated Decision = "authenticated"
	Redirect      Decision = "redirect"
	Error         Decision = "error"
	Prompt        Decision = "prompt"
)

// Options configure one guarded route.
type Options struct {
	RequireAuth    bool
	RedirectTo     string
	ShowAuthPrompt bool
}

// DefaultOptions require a signed-in user and prompt for credentials.
func DefaultOptions() Options {
	return Options{RequireAuth: true, RedirectTo: "/", ShowAuthPrompt: true}
}

// Decide picks the branch for state. Checks run in order: loading,
// auth not required, authenticated, redirect, failed login, prompt.
func Decide(state model.SessionState, opts Options) Decision {
	switch {
	case state.Loading:
		return Loading
	case !opts.RequireAuth:
		return Content
	case state.Authenticated():
		return Authenticated
	case !opts.ShowAuthPrompt:
		return Redirect
	case state.LastError != nil:
		return Error
	default:
		return Prompt
	}
}

// Access is what a guarded page is allowed to render.
type Access struct {
	State    model.SessionState
	Decision Decision
}

// Assistant reports whether the support assistant is offered.
func (a Access) Assistant() bool {
	return a.Decision == Authenticated
}

// PageFunc renders the content of a guarded route.
type PageFunc func(w http.ResponseWriter, r *http.Request, access Access)

// Guard wraps pages with the session decision.
type Guard struct {
	registry *auth.Registry
	pages    *view.Responder
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// New creates a Guard.
func New(registry *auth.Registry, pages *view.Responder, recorder metrics.Recorder, logger *slog.Logger) *Guard {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{registry: registry, pages: pages, metrics: recorder, logger: logger}
}

// Protect returns a handler rendering page when opts allow it and the
// matching placeholder, prompt or redirect otherwise.
func (g *Guard) Protect(opts Options, page PageFunc) http.Handler {
	if opts.RedirectTo == "" {
		opts.RedirectTo = "/"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		manager, err := g.registry.Resolve(w, r)
		if err != nil {
			g.logger.Error("failed to resolve browser session", slog.String("error", err.Error()))
			g.pages.Write(w, r, http.StatusInternalServerError, view.PageError, view.Page{Body: view.SessionUnavailable})
			return
		}

		state := manager.Snapshot()
		decision := Decide(state, opts)
		g.metrics.IncGuardDecision(string(decision))

		w.Header().Set("Cache-Control", "no-store")

		switch decision {
		case Loading:
			w.Header().Set("Refresh", "1")
			g.pages.Write(w, r, http.StatusOK, view.PageLoading, view.Page{Title: "Loading"})
		case Content, Authenticated:
			page(w, r, Access{State: state, Decision: decision})
		case Redirect:
			http.Redirect(w, r, redirectTarget(opts.RedirectTo, r.URL.Path), http.StatusSeeOther)
		case Error:
			prompt := g.prompt(w, r)
			if prompt.Mode == "" {
				prompt.Mode = view.ModeLogin
			}
			_, prompt.Error = FailureMessage(state.LastError)
			g.pages.Write(w, r, http.StatusOK, view.PagePrompt, view.Page{Title: "Sign in", Body: prompt})
		default:
			g.pages.Write(w, r, http.StatusOK, view.PagePrompt, view.Page{Title: "Sign in", Body: g.prompt(w, r)})
		}
	})
}

// prompt builds the sign-in prompt, refilled with the fields of a rejected
// form when one is pending.
func (g *Guard) prompt(w http.ResponseWriter, r *http.Request) view.Prompt {
	prompt := view.NewPrompt(r.URL.Query().Get("auth"))
	if form, ok := g.pages.Flash.ReadForm(w, r); ok {
		prompt.Email = form.Email
		prompt.Name = form.Name
	}
	return prompt
}

// redirectTarget appends the original path as next to target.
func redirectTarget(target, path string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "/"
	}
	q := u.Query()
	q.Set("next", path)
	u.RawQuery = q.Encode()
	return u.String()
}
