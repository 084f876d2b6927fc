// Package identity turns the free-text GitHub field of an application into
// a canonical username.
package identity

import (
	"strings"
	"unicode"
)

const githubHost = "github.com/"

// emptyValues are spreadsheet placeholders for "no answer".
var emptyValues = map[string]bool{
	"na":  true,
	"n/a": true,
	"nan": true,
}

// sentinels are usernames that must never reach the profile API.
var sentinels = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"none": true,
}

// Normalize converts a raw identity value into a canonical username.
// It returns an empty string when no identity was supplied. Values that are
// neither a profile URL, a mention nor a bare username are returned trimmed
// but otherwise unchanged; those are low-confidence and may fail lookup.
func Normalize(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || emptyValues[strings.ToLower(v)] {
		return ""
	}

	if _, after, ok := strings.Cut(v, githubHost); ok {
		after = strings.Trim(after, "/")
		name, _, _ := strings.Cut(after, "/")
		return name
	}

	if rest, ok := strings.CutPrefix(v, "@"); ok {
		return rest
	}

	return v
}

// IsSentinel reports whether username is a placeholder that callers must
// treat as "no identity" without issuing a request.
func IsSentinel(username string) bool {
	return sentinels[strings.ToLower(strings.TrimSpace(username))]
}

// IsCanonical reports whether username is shaped like a GitHub login:
// non-empty, no path separators and no whitespace.
func IsCanonical(username string) bool {
	if username == "" || strings.Contains(username, "/") {
		return false
	}
	return strings.IndexFunc(username, unicode.IsSpace) < 0
}
