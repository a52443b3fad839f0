// Package frontmatter splits and parses the YAML front-matter block of a
// note.
//
// Parsing degrades rather than fails: malformed YAML and unclosed blocks
// recover whatever key/value pairs are salvageable line by line. The only
// hard error is a well-delimited block whose document is not a mapping.
package frontmatter

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/quill/internal/apperr"
)

const delimiter = "---"

// kvLine matches a best-effort "key: value" line during recovery.
var kvLine = regexp.MustCompile(`^([A-Za-z0-9_][A-Za-z0-9_-]*)\s*:\s?(.*)$`)

// Extract splits raw note text into (metadata, body).
//
// Text that does not begin with the delimiter returns an empty map and the
// text unchanged. A well-formed block is parsed as YAML; a malformed one
// (no closing delimiter, or a syntax error) degrades to line-by-line
// recovery and never fails the load. The returned body is always a line
// suffix of raw.
func Extract(raw string) (map[string]any, string, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return map[string]any{}, raw, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}

	if end == -1 {
		// Unclosed block: recover the contiguous key/value run after the
		// opening delimiter; everything past it is body.
		meta, consumed := recoverPrefix(lines[1:])
		slog.Warn("front matter block not closed, recovered partial metadata",
			slog.Int("keys", len(meta)))
		return meta, strings.Join(lines[1+consumed:], "\n"), nil
	}

	block := strings.Join(lines[1:end], "\n")
	body := strings.Join(lines[end+1:], "\n")

	var doc any
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		meta := recoverBlock(lines[1:end])
		slog.Warn("front matter is not valid YAML, recovered partial metadata",
			slog.Int("keys", len(meta)), slog.String("error", err.Error()))
		return meta, body, nil
	}

	if doc == nil {
		return map[string]any{}, body, nil
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, "", fmt.Errorf("%w: parsed to %T", apperr.ErrNotMapping, doc)
	}
	return m, body, nil
}

// recoverBlock salvages key/value pairs from a malformed but closed block,
// skipping unparseable lines.
func recoverBlock(lines []string) map[string]any {
	meta := make(map[string]any)
	for _, line := range lines {
		if k, v, ok := recoverLine(line); ok {
			meta[k] = v
		}
	}
	return meta
}

// recoverPrefix salvages the contiguous run of key/value lines at the start
// of an unclosed block, returning how many lines it consumed.
func recoverPrefix(lines []string) (map[string]any, int) {
	meta := make(map[string]any)
	for i, line := range lines {
		k, v, ok := recoverLine(line)
		if !ok {
			return meta, i
		}
		meta[k] = v
	}
	return meta, len(lines)
}

func recoverLine(line string) (string, any, bool) {
	m := kvLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return "", nil, false
	}
	key := m[1]
	rest := strings.TrimSpace(m[2])
	if rest == "" {
		return key, nil, true
	}

	// Let YAML interpret the scalar (numbers, bools, dates); fall back to
	// the raw string when it does not parse on its own.
	var v any
	if err := yaml.Unmarshal([]byte(rest), &v); err != nil {
		return key, rest, true
	}
	return key, v, true
}

// Render serializes metadata into a front-matter block including both
// delimiters and a trailing newline. Empty metadata renders nothing.
func Render(meta map[string]any) (string, error) {
	if len(meta) == 0 {
		return "", nil
	}
	out, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}
	return delimiter + "\n" + string(out) + delimiter + "\n", nil
}

// Merge combines two metadata maps. The "tags" key gets union-with-dedup
// semantics; every other key is override-wins. Neither input is modified.
func Merge(existing, updates map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		if k == "tags" {
			merged[k] = unionTags(existing[k], v)
			continue
		}
		merged[k] = v
	}
	return merged
}

func unionTags(a, b any) []string {
	tags := NormalizeTags(a)
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		seen[t] = struct{}{}
	}
	for _, t := range NormalizeTags(b) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}

// NormalizeTags converts a metadata tag value (list or comma-separated
// string) into a deduplicated, lower-cased, #-stripped, order-stable slice.
func NormalizeTags(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(t, ",")
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			raw = append(raw, fmt.Sprint(item))
		}
	default:
		raw = []string{fmt.Sprint(t)}
	}
	return CleanTags(raw)
}

// CleanTags normalizes an already-split tag list.
func CleanTags(raw []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
