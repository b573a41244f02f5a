// Package identity derives display identity fields from an email address.
// All functions are pure.
package identity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxInitials is the number of runes kept in derived initials.
const maxInitials = 2

// LocalPart returns the substring before the first "@".
// The whole input is returned when there is no "@".
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// DisplayName derives a display name from the local part of an email:
// every dot-separated segment gets its first letter upper-cased and the
// segments are joined with single spaces.
//
//	DisplayName("jane.doe@example.com") == "Jane Doe"
func DisplayName(email string) string {
	segments := strings.Split(LocalPart(email), ".")
	for i, seg := range segments {
		segments[i] = capitalize(seg)
	}
	return strings.Join(segments, " ")
}

// Initials returns the first character of every space-separated word of
// name, concatenated and truncated to two characters.
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
		count++
		if count == maxInitials {
			break
		}
	}
	return b.String()
}

// ResolveName returns name when it is non-blank, otherwise the name
// derived from email.
func ResolveName(email, name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return DisplayName(email)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
