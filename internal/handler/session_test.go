package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/repeatharmony/repeatharmony/internal/auth"
	"github.com/repeatharmony/repeatharmony/internal/handler/dto"
)

func TestSessionHandler_Get(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, auth.Simulated{})

	rec := httptest.NewRecorder()
	app.session.Get(rec, app.request(t, http.MethodGet, "/api/v1/session", nil))

	var resp dto.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Authenticated || resp.User != nil {
		t.Errorf("signed out response = %+v", resp)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("session response must not be cached")
	}

	app.signIn(t, "jane.doe@example.com", "")
	rec = httptest.NewRecorder()
	app.session.Get(rec, app.request(t, http.MethodGet, "/api/v1/session", nil))

	resp = dto.SessionResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Authenticated || resp.User == nil {
		t.Fatalf("signed in response = %+v", resp)
	}
	if resp.User.Name != "Jane Doe" || resp.User.Initials != "JD" || resp.User.Email != "jane.doe@example.com" {
		t.Errorf("user = %+v", resp.User)
	}
}
