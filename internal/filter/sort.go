package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aidanlsb/quill/internal/note"
)

// SortField names a supported sort key.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByStartDate SortField = "start_date"
	SortByEndDate   SortField = "end_date"
	SortByCreated   SortField = "created"
	SortByModified  SortField = "modified"
	SortByPath      SortField = "path"
)

// SortNotes returns a sorted copy of notes. Title comparison is case-folded;
// notes missing a date key stay at the end whether or not the order is
// reversed. An unknown field is a caller error.
func SortNotes(notes []*note.Note, field SortField, reverse bool) ([]*note.Note, error) {
	less, err := lessFunc(field)
	if err != nil {
		return nil, err
	}

	out := make([]*note.Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		if reverse {
			i, j = j, i
		}
		return less(out[i], out[j])
	})

	if isDateField(field) {
		out = missingDatesLast(out, field)
	}
	return out, nil
}

func isDateField(field SortField) bool {
	switch field {
	case SortByStartDate, SortByEndDate, SortByCreated, SortByModified:
		return true
	}
	return false
}

func lessFunc(field SortField) (func(a, b *note.Note) bool, error) {
	switch field {
	case SortByTitle:
		return func(a, b *note.Note) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}, nil
	case SortByPath:
		return func(a, b *note.Note) bool {
			return a.Path < b.Path
		}, nil
	case SortByStartDate, SortByEndDate, SortByCreated, SortByModified:
		key := dateKey(field)
		return func(a, b *note.Note) bool {
			at, aok := key(a)
			bt, bok := key(b)
			if aok != bok {
				return aok // present before missing
			}
			if !aok {
				return false
			}
			return at.Before(bt)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported sort field: %q", field)
	}
}

func dateKey(field SortField) func(*note.Note) (time.Time, bool) {
	switch field {
	case SortByStartDate:
		return (*note.Note).StartDate
	case SortByEndDate:
		return (*note.Note).EndDate
	case SortByCreated:
		return func(n *note.Note) (time.Time, bool) {
			return n.CreatedAt, !n.CreatedAt.IsZero()
		}
	default:
		return func(n *note.Note) (time.Time, bool) {
			return n.ModifiedAt, !n.ModifiedAt.IsZero()
		}
	}
}

// missingDatesLast restores the missing-sorts-last invariant after a
// reversed comparison has moved keyless notes to the front.
func missingDatesLast(notes []*note.Note, field SortField) []*note.Note {
	key := dateKey(field)
	present := make([]*note.Note, 0, len(notes))
	var missing []*note.Note
	for _, n := range notes {
		if _, ok := key(n); ok {
			present = append(present, n)
		} else {
			missing = append(missing, n)
		}
	}
	return append(present, missing...)
}
