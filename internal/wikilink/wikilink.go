// Package wikilink provides canonical parsing/scanning of internal note links.
//
// Wikilink grammar:
//
//	[[target]]
//	[[target|display text]]
//
// The target is the vault-relative identity of another note. Both target and
// display text are trimmed of surrounding whitespace.
package wikilink

import (
	"regexp"
	"strings"
)

// Match represents a wikilink found in a string (typically a single line).
type Match struct {
	Target  string
	Display string // empty when no |alias was given
	Start   int
	End     int
}

// re matches [[target]] or [[target|display]].
// The target cannot contain brackets or a pipe.
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// ParseExact parses a string that is exactly a wikilink literal.
func ParseExact(s string) (Match, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		return Match{}, false
	}
	m := re.FindStringSubmatchIndex(s)
	if m == nil || m[0] != 0 || m[1] != len(s) {
		return Match{}, false
	}
	return matchAt(s, m), true
}

// FindAllInLine finds wikilinks in a single line of text.
func FindAllInLine(line string) []Match {
	var out []Match
	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		match := matchAt(line, m)
		if match.Target == "" {
			continue
		}
		out = append(out, match)
	}
	return out
}

func matchAt(s string, m []int) Match {
	match := Match{
		Start:  m[0],
		End:    m[1],
		Target: strings.TrimSpace(s[m[2]:m[3]]),
	}
	if len(m) >= 6 && m[4] >= 0 {
		match.Display = strings.TrimSpace(s[m[4]:m[5]])
	}
	return match
}
