package handler

import (
	"net/url"
	"strings"
)

// SafeNext returns raw when it is a same-site absolute path, otherwise "/".
// Query and fragment are dropped.
func SafeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.EscapedPath()
}

// withAuthMode appends ?auth=mode to a path from SafeNext.
func withAuthMode(path, mode string) string {
	return path + "?" + url.Values{"auth": {mode}}.Encode()
}
