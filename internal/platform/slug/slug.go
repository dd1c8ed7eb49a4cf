package slug

import (
	"regexp"
	"strings"
)

var nonFileSafe = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and collapses every run of characters that are not
// safe in a file name into one dash.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonFileSafe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Join slugs each part and joins the non-empty ones with dashes. An input
// with nothing usable yields "session".
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := Make(part); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return "session"
	}
	return strings.Join(out, "-")
}
