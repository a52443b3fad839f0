// Package filter provides pure, stateless predicates and sorting over an
// in-memory collection of parsed notes. Nothing here touches storage.
package filter

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/aidanlsb/quill/internal/frontmatter"
	"github.com/aidanlsb/quill/internal/note"
)

// TagMode is the combinator for tag filters.
type TagMode string

const (
	// TagModeOr keeps a note whose tag set intersects the filter tags.
	TagModeOr TagMode = "or"

	// TagModeAnd requires every filter tag to be present on the note.
	TagModeAnd TagMode = "and"
)

// Spec is an immutable query object combining the optional predicates a
// caller can ask for. Zero-value fields are inactive.
type Spec struct {
	Tags    []string
	TagMode TagMode

	// From/Until bound an inclusive date range over the note's recognized
	// date fields.
	From  *time.Time
	Until *time.Time

	// Properties is exact-value metadata equality, AND across keys.
	Properties map[string]any

	// HasPending is a tri-state pending-task predicate: nil means no
	// constraint.
	HasPending *bool
}

// Query layers ad-hoc filters on top of an optional Spec. Apply runs the
// spec first, then tags, date range, properties, pending flag, search, and
// finally the sort.
type Query struct {
	Tags    []string
	TagMode TagMode

	From  *time.Time
	Until *time.Time

	// DateFields names extra metadata keys to consult for the date range,
	// on top of the standard recognized set.
	DateFields []string

	Properties map[string]any
	HasPending *bool

	Search        string
	CaseSensitive bool

	SortBy  SortField
	Reverse bool
}

// ByTags filters notes by tag membership. An empty tag list is a no-op and
// returns the input unchanged. An unknown mode is a caller error.
func ByTags(notes []*note.Note, tags []string, mode TagMode) ([]*note.Note, error) {
	if mode == "" {
		mode = TagModeOr
	}
	if mode != TagModeOr && mode != TagModeAnd {
		return nil, fmt.Errorf("invalid tag mode: %q", mode)
	}

	tags = frontmatter.CleanTags(tags)
	if len(tags) == 0 {
		return notes, nil
	}

	var out []*note.Note
	for _, n := range notes {
		if matchTags(n, tags, mode) {
			out = append(out, n)
		}
	}
	return out, nil
}

func matchTags(n *note.Note, tags []string, mode TagMode) bool {
	for _, tag := range tags {
		has := n.HasTag(tag)
		if mode == TagModeOr && has {
			return true
		}
		if mode == TagModeAnd && !has {
			return false
		}
	}
	return mode == TagModeAnd
}

// ByDateRange keeps notes where any recognized date field (plus any
// extraFields) falls inclusively within [start, end]. Notes without date
// fields never match.
func ByDateRange(notes []*note.Note, start, end time.Time, extraFields ...string) []*note.Note {
	fields := append(append([]string{}, note.DateKeys...), extraFields...)

	var out []*note.Note
	for _, n := range notes {
		for _, field := range fields {
			t, ok := n.DateField(field)
			if !ok {
				continue
			}
			if !t.Before(start) && !t.After(end) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// ByProperties keeps notes whose metadata matches every given key/value
// pair exactly.
func ByProperties(notes []*note.Note, props map[string]any) []*note.Note {
	if len(props) == 0 {
		return notes
	}

	var out []*note.Note
	for _, n := range notes {
		if matchProperties(n, props) {
			out = append(out, n)
		}
	}
	return out
}

func matchProperties(n *note.Note, props map[string]any) bool {
	for k, want := range props {
		got, ok := n.Metadata[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// ByPendingTasks keeps notes whose has-pending-tasks flag equals want.
func ByPendingTasks(notes []*note.Note, want bool) []*note.Note {
	var out []*note.Note
	for _, n := range notes {
		if n.HasPendingTasks() == want {
			out = append(out, n)
		}
	}
	return out
}

// Search keeps notes whose title or body contains the given substring.
func Search(notes []*note.Note, text string, caseSensitive bool) []*note.Note {
	if text == "" {
		return notes
	}
	needle := text
	if !caseSensitive {
		needle = strings.ToLower(text)
	}

	var out []*note.Note
	for _, n := range notes {
		title, body := n.Title, n.Body
		if !caseSensitive {
			title = strings.ToLower(title)
			body = strings.ToLower(body)
		}
		if strings.Contains(title, needle) || strings.Contains(body, needle) {
			out = append(out, n)
		}
	}
	return out
}

// Apply runs spec and query predicates in a fixed order: spec first, then
// the query's tags, date range, properties, pending flag, search, and sort.
func Apply(notes []*note.Note, spec *Spec, q Query) ([]*note.Note, error) {
	var err error

	if spec != nil {
		notes, err = applySpec(notes, spec)
		if err != nil {
			return nil, err
		}
	}

	notes, err = ByTags(notes, q.Tags, q.TagMode)
	if err != nil {
		return nil, err
	}
	if q.From != nil || q.Until != nil {
		notes = ByDateRange(notes, rangeBound(q.From, false), rangeBound(q.Until, true), q.DateFields...)
	}
	notes = ByProperties(notes, q.Properties)
	if q.HasPending != nil {
		notes = ByPendingTasks(notes, *q.HasPending)
	}
	notes = Search(notes, q.Search, q.CaseSensitive)

	if q.SortBy != "" {
		notes, err = SortNotes(notes, q.SortBy, q.Reverse)
		if err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func applySpec(notes []*note.Note, spec *Spec) ([]*note.Note, error) {
	notes, err := ByTags(notes, spec.Tags, spec.TagMode)
	if err != nil {
		return nil, err
	}
	if spec.From != nil || spec.Until != nil {
		notes = ByDateRange(notes, rangeBound(spec.From, false), rangeBound(spec.Until, true))
	}
	notes = ByProperties(notes, spec.Properties)
	if spec.HasPending != nil {
		notes = ByPendingTasks(notes, *spec.HasPending)
	}
	return notes, nil
}

// rangeBound substitutes an open bound with the extreme of the time axis.
func rangeBound(t *time.Time, upper bool) time.Time {
	if t != nil {
		return *t
	}
	if upper {
		return time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	}
	return time.Time{}
}
