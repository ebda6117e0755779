package editor

import (
	"regexp"
	"strings"
)

var (
	reSlugDrop   = regexp.MustCompile(`[^a-z0-9\s-]+`)
	reSlugSpaces = regexp.MustCompile(`[\s-]+`)
)

// Slugify derives a URL-safe identifier from a display name: lowercased,
// non-alphanumerics stripped, whitespace collapsed to single hyphens,
// hyphens trimmed. "Valley of Flowers!" becomes "valley-of-flowers".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = reSlugDrop.ReplaceAllString(s, "")
	s = reSlugSpaces.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
