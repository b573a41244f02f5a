package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLikesToggle(t *testing.T) {
	t.Parallel()

	likes := Likes{}
	if !likes.Toggle(3) {
		t.Error("first toggle should like")
	}
	if likes.Toggle(3) {
		t.Error("second toggle should unlike")
	}
	if len(likes) != 0 {
		t.Errorf("likes = %v, want empty", likes)
	}
}

func TestWriteLikesAndReadLikesRoundTrip(t *testing.T) {
	t.Parallel()

	fw := Writer{Secure: true}
	rr := httptest.NewRecorder()
	fw.WriteLikes(rr, Likes{5: true, 2: true})

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LikesCookieName {
		t.Fatalf("expected one %s cookie, got %v", LikesCookieName, cookies)
	}
	if cookies[0].Value != "2.5" {
		t.Errorf("value = %q, want sorted ids", cookies[0].Value)
	}
	if cookies[0].MaxAge <= 0 || !cookies[0].Secure || !cookies[0].HttpOnly {
		t.Errorf("unexpected cookie attributes: %+v", cookies[0])
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	likes := fw.ReadLikes(req)
	if len(likes) != 2 || !likes[2] || !likes[5] {
		t.Errorf("likes = %v", likes)
	}
}

func TestReadLikesSkipsMalformedEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  []int
	}{
		{"empty", "", nil},
		{"garbage", "abc", nil},
		{"mixed", "1.x.-4.0.7", []int{1, 7}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: LikesCookieName, Value: tt.value})
			likes := (Writer{}).ReadLikes(req)
			if len(likes) != len(tt.want) {
				t.Fatalf("likes = %v, want %v", likes, tt.want)
			}
			for _, id := range tt.want {
				if !likes[id] {
					t.Errorf("missing id %d in %v", id, likes)
				}
			}
		})
	}
}

func TestWriteLikesEmptyExpiresCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	(Writer{}).WriteLikes(rr, Likes{})

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expiring Set-Cookie, got %v", cookies)
	}
}
