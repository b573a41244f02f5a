package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// BrowserCookieName is the cookie identifying a browser.
const BrowserCookieName = "rh_browser"

const browserIssuer = "repeatharmony"

// ErrInvalidBrowserToken indicates a browser cookie that failed verification.
var ErrInvalidBrowserToken = errors.New("invalid browser token")

// BrowserCookie issues and verifies the signed browser identifier.
// The browser ID names the namespace holding that browser's session record.
type BrowserCookie struct {
	secret []byte
	secure bool
	ttl    time.Duration
	now    func() time.Time
}

// NewBrowserCookie creates a BrowserCookie signing with secret (HS256).
// secure sets the cookie Secure flag. A zero ttl issues tokens that never expire.
func NewBrowserCookie(secret []byte, secure bool, ttl time.Duration) *BrowserCookie {
	return &BrowserCookie{secret: secret, secure: secure, ttl: ttl, now: time.Now}
}

// Issue returns a signed token for browserID.
func (c *BrowserCookie) Issue(browserID string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:   browserIssuer,
		Subject:  browserID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign browser token: %w", err)
	}
	return token, nil
}

// Parse verifies token and returns the browser ID it carries.
func (c *BrowserCookie) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(browserIssuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidBrowserToken
	}
	if _, err := ulid.ParseStrict(claims.Subject); err != nil {
		return "", ErrInvalidBrowserToken
	}
	return claims.Subject, nil
}

// Resolve returns the browser ID from the request cookie. A missing or
// invalid cookie is replaced by a freshly issued one.
func (c *BrowserCookie) Resolve(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(BrowserCookieName); err == nil {
		if id, err := c.Parse(strings.TrimSpace(cookie.Value)); err == nil {
			return id, nil
		}
	}

	id := ulid.Make().String()
	token, err := c.Issue(id)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, c.cookie(token))
	replaceRequestCookie(r, BrowserCookieName, token)
	return id, nil
}

// replaceRequestCookie rewrites the request's Cookie header so later
// lookups within the same request see value instead of a rejected cookie.
func replaceRequestCookie(r *http.Request, name, value string) {
	kept := make([]string, 0, len(r.Cookies())+1)
	for _, c := range r.Cookies() {
		if c.Name != name {
			kept = append(kept, c.String())
		}
	}
	kept = append(kept, (&http.Cookie{Name: name, Value: value}).String())
	r.Header.Set("Cookie", strings.Join(kept, "; "))
}

func (c *BrowserCookie) cookie(token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     BrowserCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.ttl > 0 {
		cookie.MaxAge = int(c.ttl.Seconds())
	}
	return cookie
}
