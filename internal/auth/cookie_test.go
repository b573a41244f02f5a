package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

var testSecret = []byte("test-secret-at-least-32-bytes-long!!")

func TestBrowserCookie_IssueParse(t *testing.T) {
	t.Parallel()

	c := NewBrowserCookie(testSecret, false, time.Hour)
	id := ulid.Make().String()

	token, err := c.Issue(id)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	got, err := c.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != id {
		t.Errorf("Parse() = %q, want %q", got, id)
	}
}

func TestBrowserCookie_ParseRejects(t *testing.T) {
	t.Parallel()

	c := NewBrowserCookie(testSecret, false, time.Hour)
	id := ulid.Make().String()

	otherKey, err := NewBrowserCookie([]byte("a-completely-different-secret-value"), false, time.Hour).Issue(id)
	if err != nil {
		t.Fatal(err)
	}
	notULID, err := c.Issue("not-a-ulid")
	if err != nil {
		t.Fatal(err)
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:  browserIssuer,
		Subject: id,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	expired := NewBrowserCookie(testSecret, false, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := expired.Issue(id)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"wrong secret", otherKey},
		{"subject not a ULID", notULID},
		{"alg none", unsigned},
		{"expired", stale},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := c.Parse(tt.token); !errors.Is(err, ErrInvalidBrowserToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidBrowserToken", err)
			}
		})
	}
}

func TestBrowserCookie_ResolveIssuesCookie(t *testing.T) {
	t.Parallel()

	c := NewBrowserCookie(testSecret, true, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	id, err := c.Resolve(rec, req)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != BrowserCookieName {
		t.Fatalf("Set-Cookie = %v, want one %s cookie", cookies, BrowserCookieName)
	}
	if !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Error("browser cookie should be HttpOnly and Secure")
	}

	// A second lookup within the same request sees the same browser.
	again, err := c.Resolve(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatal(err)
	}
	if again != id {
		t.Errorf("second Resolve() = %q, want %q", again, id)
	}
}

func TestBrowserCookie_ResolveKeepsValidCookie(t *testing.T) {
	t.Parallel()

	c := NewBrowserCookie(testSecret, false, time.Hour)
	id := ulid.Make().String()
	token, err := c.Issue(id)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: BrowserCookieName, Value: token})
	rec := httptest.NewRecorder()

	got, err := c.Resolve(rec, req)
	if err != nil {
		t.Fatal(err)
	}
	if got != id {
		t.Errorf("Resolve() = %q, want %q", got, id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("valid cookie should not be reissued")
	}
}

func TestBrowserCookie_ResolveReplacesInvalidCookie(t *testing.T) {
	t.Parallel()

	c := NewBrowserCookie(testSecret, false, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "other", Value: "kept"})
	req.AddCookie(&http.Cookie{Name: BrowserCookieName, Value: "tampered"})

	id, err := c.Resolve(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatal(err)
	}

	cookie, err := req.Cookie(BrowserCookieName)
	if err != nil {
		t.Fatal(err)
	}
	if parsed, err := c.Parse(cookie.Value); err != nil || parsed != id {
		t.Errorf("request cookie resolves to %q (%v), want %q", parsed, err, id)
	}
	if other, err := req.Cookie("other"); err != nil || other.Value != "kept" {
		t.Error("unrelated cookies should survive")
	}
}
