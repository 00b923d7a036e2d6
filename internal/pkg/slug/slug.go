package slug

import (
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Derive builds a URL slug from an entity name. Pure, called by the service
// layer before constructing the entity, so entity construction stays free of
// save-time mutation hooks.
func Derive(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespace.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
