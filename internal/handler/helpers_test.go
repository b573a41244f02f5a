package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/repeatharmony/repeatharmony/internal/auth"
	"github.com/repeatharmony/repeatharmony/internal/flash"
	"github.com/repeatharmony/repeatharmony/internal/sessionstore"
	"github.com/repeatharmony/repeatharmony/internal/view"
)

const testBrowser = "01HZX3Q6V7Y8Z9ABCDEFGHJKMN"

var testSecret = []byte("handler-test-secret-at-least-32-bytes")

type testApp struct {
	registry *auth.Registry
	cookie   *auth.BrowserCookie
	pages    *view.Responder
	handler  *Handler
	auth     *AuthHandler
	session  *SessionHandler
}

func newTestApp(t *testing.T, authenticator auth.Authenticator) *testApp {
	t.Helper()

	renderer, err := view.New()
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cookie := auth.NewBrowserCookie(testSecret, false, 0)
	registry := auth.NewRegistry(cookie, auth.Deps{
		Store:         sessionstore.New(sessionstore.NewMemory(), 0),
		Authenticator: authenticator,
		Logger:        logger,
	})
	fw := flash.Writer{}
	pages := &view.Responder{Renderer: renderer, Flash: fw, Logger: logger}

	return &testApp{
		registry: registry,
		cookie:   cookie,
		pages:    pages,
		handler:  New(registry, pages, fw, logger),
		auth:     NewAuthHandler(registry, fw, logger),
		session:  NewSessionHandler(registry, logger),
	}
}

// signIn logs testBrowser in directly through its manager.
func (a *testApp) signIn(t *testing.T, email, name string) {
	t.Helper()
	ctx := context.Background()
	if _, err := a.registry.Manager(ctx, testBrowser).Login(ctx, email, "Abcdefg1", name); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}

// request builds a request carrying the browser cookie for testBrowser.
func (a *testApp) request(t *testing.T, method, target string, form url.Values) *http.Request {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	token, err := a.cookie.Issue(testBrowser)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: auth.BrowserCookieName, Value: token})
	return req
}

// toastFrom decodes the flash cookie set on rec.
func toastFrom(t *testing.T, rec *httptest.ResponseRecorder) flash.Notice {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name != flash.CookieName || c.Value == "" {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(c.Value)
		if err != nil {
			t.Fatalf("decode flash: %v", err)
		}
		var notice flash.Notice
		if err := json.Unmarshal(raw, &notice); err != nil {
			t.Fatalf("unmarshal flash: %v", err)
		}
		return notice
	}
	t.Fatal("no flash cookie set")
	return flash.Notice{}
}
