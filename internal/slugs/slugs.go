// Package slugs provides the canonical slugification used for note
// reference matching, built on gosimple/slug.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// ComponentSlug converts one path component to a URL-safe slug. A trailing
// ".md" is stripped first. Inputs that slug to nothing (all punctuation)
// fall back to a lower-cased dash form so matching stays possible.
func ComponentSlug(s string) string {
	s = strings.TrimSuffix(s, ".md")
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	}
	return slugged
}

// PathSlug slugifies each "/"-separated component of a vault-relative path,
// stripping a trailing ".md": "notes/My Trip!.md" -> "notes/my-trip".
func PathSlug(path string) string {
	path = strings.TrimSuffix(path, ".md")
	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = ComponentSlug(part)
	}
	return strings.Join(parts, "/")
}
