package slug

import (
	"regexp"
	"strings"
)

var reSlug = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,39}$`)

// IsSlug reports whether s is a lowercase hyphenated identifier of 2 to 40
// characters, the shape preset keys and period keys use.
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// Slugify converts s to a slug: lowercase, non [a-z0-9] runs collapse to a
// single '-', trimmed to 40 characters and stripped of edge hyphens.
func Slugify(s string) string {
	if s == "" {
		return s
	}
	out := make([]rune, 0, len(s))
	prevHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
			prevHyphen = false
		} else if !prevHyphen {
			out = append(out, '-')
			prevHyphen = true
		}
		if len(out) >= 40 {
			break
		}
	}
	return strings.Trim(string(out), "-")
}
