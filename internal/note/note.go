// Package note defines the parsed note model shared across the vault
// subsystem.
//
// A Note is assembled fresh on every load by composing the file manager,
// metadata extractor, and markdown parser; it is never mutated in place.
// Mutations rewrite the file and discard or reload the cached instance.
package note

import (
	"time"

	"github.com/aidanlsb/quill/internal/dates"
)

// Metadata keys recognized as date-valued.
const (
	KeyDate      = "date"
	KeyStartDate = "start_date"
	KeyEndDate   = "end_date"
	KeyDueDate   = "due_date"
	KeyCreated   = "created"
	KeyModified  = "modified"
)

// DateKeys is the fixed set of metadata keys parsed as dates, in the order
// they are consulted by date-range filters.
var DateKeys = []string{KeyDate, KeyStartDate, KeyEndDate, KeyDueDate, KeyCreated, KeyModified}

// Note is one vault file, uniquely identified by its vault-relative path.
type Note struct {
	// Title comes from the metadata "title" key, else the filename stem.
	Title string

	// Path is the vault-relative file path and doubles as the primary key.
	Path string

	// Body is the markdown text without front matter.
	Body string

	// RawContent is the full on-disk text including front matter. Targeted
	// edits (task toggling) patch this rather than re-serializing Body.
	RawContent string

	// Metadata holds the parsed front-matter values.
	Metadata map[string]any

	// Tags is the deduplicated, lower-cased, #-stripped tag set derived
	// from both metadata and body, order-stable.
	Tags []string

	Tasks    []Task
	Headings []Heading
	Links    []Link

	// CreatedAt/ModifiedAt come from filesystem stat, not metadata.
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Task is a checkbox list item.
type Task struct {
	Text      string
	Completed bool

	// Line is the 1-based source line within the note body's file.
	Line int

	// ParentHeading is the nearest enclosing heading text, empty at top level.
	ParentHeading string

	// HeadingPath is the ordered ancestor heading texts, outermost first.
	HeadingPath []string

	// Indent is the raw leading-whitespace count. Deeper indentation implies
	// a descendant of the nearest shallower task; no parent reference is
	// stored, hierarchy is reconstructed by indentation comparison.
	Indent int
}

// Heading is a markdown heading.
type Heading struct {
	Level int // 1-6
	Text  string
	Line  int // 1-based
}

// Link is an internal (wiki-style) or external link.
type Link struct {
	Text     string
	URL      string // note identity for internal links, URL for external
	Internal bool
}

// DateField parses the named metadata key as a date. Missing or unparseable
// values return ok=false, never an error.
func (n *Note) DateField(key string) (time.Time, bool) {
	v, ok := n.Metadata[key]
	if !ok {
		return time.Time{}, false
	}
	return dates.ParseValue(v)
}

// StartDate returns the parsed start_date metadata field, if any.
func (n *Note) StartDate() (time.Time, bool) {
	return n.DateField(KeyStartDate)
}

// EndDate returns the parsed end_date metadata field, if any.
func (n *Note) EndDate() (time.Time, bool) {
	return n.DateField(KeyEndDate)
}

// PendingTasks returns the incomplete tasks in source order.
func (n *Note) PendingTasks() []Task {
	var out []Task
	for _, t := range n.Tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// CompletedTasks returns the completed tasks in source order.
func (n *Note) CompletedTasks() []Task {
	var out []Task
	for _, t := range n.Tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// HasPendingTasks reports whether any task is incomplete.
func (n *Note) HasPendingTasks() bool {
	for _, t := range n.Tasks {
		if !t.Completed {
			return true
		}
	}
	return false
}

// CompletionRatio is completed/total, or 0.0 for a note with no tasks.
func (n *Note) CompletionRatio() float64 {
	if len(n.Tasks) == 0 {
		return 0.0
	}
	return float64(len(n.CompletedTasks())) / float64(len(n.Tasks))
}

// HasTag reports whether the note carries the given normalized tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
