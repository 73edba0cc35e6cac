// Package slug generates URL-safe identifiers from free text.
package slug

import (
	"regexp"
	"strings"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	separators = regexp.MustCompile(`[-\s]+`)
)

// Make converts text into a URL-friendly slug: lowercase, with anything
// outside alphanumerics/whitespace/hyphens stripped and whitespace or
// hyphen runs collapsed to a single hyphen. The result never starts or
// ends with a hyphen. Make is idempotent: Make(Make(x)) == Make(x).
//
// Uniqueness is the caller's concern; Make is a pure function.
func Make(text string) string {
	s := strings.ToLower(text)
	s = disallowed.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
