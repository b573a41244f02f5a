package flash

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// LikesCookieName is the cookie carrying the testimonials this browser liked.
const LikesCookieName = "rh_likes"

const (
	likesMaxAge = 365 * 24 * 60 * 60
	maxLikes    = 64
)

// Likes is a set of liked testimonial IDs.
type Likes map[int]bool

// Toggle flips id and reports whether it is now liked.
func (l Likes) Toggle(id int) bool {
	if l[id] {
		delete(l, id)
		return false
	}
	l[id] = true
	return true
}

// ReadLikes returns the liked IDs stored on r. Malformed entries are skipped.
func (fw Writer) ReadLikes(r *http.Request) Likes {
	likes := Likes{}
	cookie, err := r.Cookie(LikesCookieName)
	if err != nil {
		return likes
	}
	for _, part := range strings.Split(cookie.Value, ".") {
		id, err := strconv.Atoi(part)
		if err != nil || id < 1 {
			continue
		}
		if len(likes) == maxLikes {
			break
		}
		likes[id] = true
	}
	return likes
}

// WriteLikes stores likes, or expires the cookie when none remain.
func (fw Writer) WriteLikes(w http.ResponseWriter, likes Likes) {
	if len(likes) == 0 {
		http.SetCookie(w, fw.cookie(LikesCookieName, "", -1))
		return
	}
	ids := make([]int, 0, len(likes))
	for id, liked := range likes {
		if liked && id > 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	if len(ids) > maxLikes {
		ids = ids[:maxLikes]
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	http.SetCookie(w, fw.cookie(LikesCookieName, strings.Join(parts, "."), likesMaxAge))
}
