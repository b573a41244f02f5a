// Package flash keeps browser UI state in cookies across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"
)

// CookieName is the cookie carrying the pending toast.
const CookieName = "rh_flash"

// FormCookieName is the cookie carrying the fields of a rejected auth form.
const FormCookieName = "rh_form"

// Field limits keep the form cookie well under browser cookie size limits.
const (
	maxEmailLen = 254
	maxNameLen  = 100
)

// Kind selects toast presentation.
type Kind string

const (
	KindDefault     Kind = "default"
	KindDestructive Kind = "destructive"
)

// Notice is one toast.
type Notice struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Info creates a default toast.
func Info(title, description string) Notice {
	return Notice{Kind: KindDefault, Title: title, Description: description}
}

// Destructive creates an error toast.
func Destructive(title, description string) Notice {
	return Notice{Kind: KindDestructive, Title: title, Description: description}
}

// Form holds the fields of a rejected login or signup form that are shown
// again when the form reopens. Passwords are never carried.
type Form struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Writer sets and clears the flash cookies.
type Writer struct {
	Secure bool
}

// Write stores notice for the next page render. Invalid notices are dropped.
func (fw Writer) Write(w http.ResponseWriter, notice Notice) {
	normalized, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, fw.cookie(CookieName, base64.RawURLEncoding.EncodeToString(payload), 0))
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func (fw Writer) ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	http.SetCookie(w, fw.cookie(CookieName, "", -1))
	return decode(cookie.Value)
}

// WriteForm stores form for the next render of the auth prompt.
// An empty form sets nothing.
func (fw Writer) WriteForm(w http.ResponseWriter, form Form) {
	form = normalizeForm(form)
	if form == (Form{}) {
		return
	}
	payload, err := json.Marshal(form)
	if err != nil {
		return
	}
	http.SetCookie(w, fw.cookie(FormCookieName, base64.RawURLEncoding.EncodeToString(payload), 0))
}

// ReadForm returns the pending form, if any, and expires its cookie.
func (fw Writer) ReadForm(w http.ResponseWriter, r *http.Request) (Form, bool) {
	cookie, err := r.Cookie(FormCookieName)
	if err != nil {
		return Form{}, false
	}
	http.SetCookie(w, fw.cookie(FormCookieName, "", -1))

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cookie.Value))
	if err != nil {
		return Form{}, false
	}
	var form Form
	if err := json.Unmarshal(decoded, &form); err != nil {
		return Form{}, false
	}
	form = normalizeForm(form)
	return form, form != (Form{})
}

func normalizeForm(form Form) Form {
	form.Email = truncate(strings.TrimSpace(form.Email), maxEmailLen)
	form.Name = truncate(strings.TrimSpace(form.Name), maxNameLen)
	return form
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func (fw Writer) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   fw.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func decode(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.Title = strings.TrimSpace(notice.Title)
	notice.Description = strings.TrimSpace(notice.Description)
	if notice.Title == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case "":
		notice.Kind = KindDefault
	case KindDefault, KindDestructive:
	default:
		return Notice{}, false
	}
	return notice, true
}
