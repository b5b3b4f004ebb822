package utils

import (
	"regexp"
	"strings"
)

var (
	slugStripPattern    = regexp.MustCompile(`[*+~.()'"!:@]`)
	slugInvalidPattern  = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRunPattern = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a title into a URL-safe token. Total and
// deterministic; an empty or punctuation-only title yields "" and the
// caller must treat that as invalid input.
func GenerateSlug(input string) string {
	// Drop the punctuation set entirely, without leaving separators
	slug := slugStripPattern.ReplaceAllString(input, "")

	slug = strings.ToLower(slug)

	// Everything else that is not a-z0-9 becomes a hyphen
	slug = slugInvalidPattern.ReplaceAllString(slug, "-")

	// Collapse runs and trim the edges
	slug = slugHyphenRunPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	return slug
}
