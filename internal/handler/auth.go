package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/repeatharmony/repeatharmony/internal/auth"
	"github.com/repeatharmony/repeatharmony/internal/flash"
	"github.com/repeatharmony/repeatharmony/internal/guard"
	"github.com/repeatharmony/repeatharmony/internal/identity"
	"github.com/repeatharmony/repeatharmony/internal/view"
)

// AuthHandler handles the login, signup and logout forms.
type AuthHandler struct {
	registry *auth.Registry
	flash    flash.Writer
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(registry *auth.Registry, flashWriter flash.Writer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{registry: registry, flash: flashWriter, logger: logger}
}

// Login signs the browser in and resumes at next.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	next := SafeNext(r.PostFormValue("next"))
	manager, ok := h.resolve(w, r, next)
	if !ok {
		return
	}

	if err := h.login(r.Context(), manager, r.PostFormValue("email"), r.PostFormValue("password"), ""); err != nil {
		h.fail(w, r, next, view.ModeLogin, err)
		return
	}

	h.flash.Write(w, flash.Info("Welcome back!", "You now have access to all RepeatHarmony features."))
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Signup creates the account, signs the browser in and resumes at next.
// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	next := SafeNext(r.PostFormValue("next"))

	name := strings.TrimSpace(r.PostFormValue("name"))
	password := r.PostFormValue("password")
	if err := validateSignupForm(name, password, r.PostFormValue("confirm"), r.PostFormValue("terms")); err != nil {
		h.fail(w, r, next, view.ModeSignup, err)
		return
	}

	manager, ok := h.resolve(w, r, next)
	if !ok {
		return
	}
	if err := h.login(r.Context(), manager, r.PostFormValue("email"), password, name); err != nil {
		h.fail(w, r, next, view.ModeSignup, err)
		return
	}

	h.flash.Write(w, flash.Info("Welcome to RepeatHarmony!", "Your account has been created. Enjoy all our features!"))
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout signs the browser out.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	manager, ok := h.resolve(w, r, "/")
	if !ok {
		return
	}
	if err := manager.Logout(r.Context()); errors.Is(err, auth.ErrSessionRetired) {
		_ = h.registry.Manager(r.Context(), manager.BrowserID()).Logout(r.Context())
	}

	h.flash.Write(w, flash.Info("Signed out", "Take care. We will be here when you come back."))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RateLimited answers a login or signup refused by the rate limiter.
func (h *AuthHandler) RateLimited(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	mode := view.ModeLogin
	if strings.HasSuffix(r.URL.Path, "/signup") {
		mode = view.ModeSignup
	}
	h.flash.Write(w, flash.Destructive(
		"Too many attempts",
		fmt.Sprintf("Please wait %d seconds before trying again.", int(retryAfter.Seconds())),
	))
	h.flash.WriteForm(w, submittedForm(r))
	http.Redirect(w, r, withAuthMode(SafeNext(r.PostFormValue("next")), mode), http.StatusSeeOther)
}

func (h *AuthHandler) resolve(w http.ResponseWriter, r *http.Request, next string) (*auth.Manager, bool) {
	manager, err := h.registry.Resolve(w, r)
	if err != nil {
		h.logger.Error("failed to resolve browser session", slog.String("error", err.Error()))
		h.flash.Write(w, flash.Destructive("Something went wrong", "Please try again in a moment."))
		http.Redirect(w, r, next, http.StatusSeeOther)
		return nil, false
	}
	return manager, true
}

// login signs in through manager, moving to the browser's current Manager
// when manager was swept after the request resolved it.
func (h *AuthHandler) login(ctx context.Context, manager *auth.Manager, email, password, name string) error {
	_, err := manager.Login(ctx, email, password, name)
	if errors.Is(err, auth.ErrSessionRetired) {
		_, err = h.registry.Manager(ctx, manager.BrowserID()).Login(ctx, email, password, name)
	}
	return err
}

// fail reports err as a toast and reopens the form that was submitted.
func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, next, mode string, err error) {
	if r.Context().Err() != nil {
		return
	}
	title, message := guard.FailureMessage(err)
	h.flash.Write(w, flash.Destructive(title, message))
	h.flash.WriteForm(w, submittedForm(r))
	http.Redirect(w, r, withAuthMode(next, mode), http.StatusSeeOther)
}

// submittedForm keeps the fields of r worth showing again.
func submittedForm(r *http.Request) flash.Form {
	return flash.Form{Email: r.PostFormValue("email"), Name: r.PostFormValue("name")}
}

// minSignupStrength is the lowest PasswordStrength score accepted at signup.
const minSignupStrength = 50

func validateSignupForm(name, password, confirm, terms string) error {
	switch {
	case name == "":
		return &auth.ValidationError{Field: "name", Reason: "is required"}
	case password != confirm:
		return &auth.ValidationError{Field: "password", Reason: "does not match the confirmation"}
	case terms != "on":
		return &auth.ValidationError{Field: "terms", Reason: "must be accepted"}
	}
	if score := identity.PasswordStrength(password); score < minSignupStrength {
		return &auth.ValidationError{
			Field:  "password",
			Reason: "is " + strings.ToLower(identity.StrengthLabel(score)) + ", mix upper and lower case letters with digits",
		}
	}
	return nil
}
