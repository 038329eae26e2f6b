package utils

import (
	"regexp"
	"strings"
)

var (
	slugDisallowed  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugMultiHyphen = regexp.MustCompile(`-{2,}`)
	slugWhitespace  = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-friendly slug from a category name: lowercase,
// special characters stripped, whitespace collapsed to single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = slugMultiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
