package filter

import (
	"testing"
	"time"

	"github.com/aidanlsb/quill/internal/note"
)

func mkNote(path, title string, tags ...string) *note.Note {
	return &note.Note{Path: path, Title: title, Tags: tags, Metadata: map[string]any{}}
}

func paths(notes []*note.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Path
	}
	return out
}

func assertPaths(t *testing.T, got []*note.Note, want ...string) {
	t.Helper()
	gotPaths := paths(got)
	if len(gotPaths) != len(want) {
		t.Fatalf("got %v, want %v", gotPaths, want)
	}
	for i := range want {
		if gotPaths[i] != want[i] {
			t.Errorf("got %v, want %v", gotPaths, want)
			return
		}
	}
}

func TestByTags(t *testing.T) {
	notes := []*note.Note{
		mkNote("a.md", "A", "trip", "france"),
		mkNote("b.md", "B", "trip"),
		mkNote("c.md", "C", "work"),
	}

	or, err := ByTags(notes, []string{"france", "work"}, TagModeOr)
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, or, "a.md", "c.md")

	and, err := ByTags(notes, []string{"trip", "france"}, TagModeAnd)
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, and, "a.md")

	// Filter tags are normalized like note tags.
	norm, err := ByTags(notes, []string{"#TRIP"}, TagModeOr)
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, norm, "a.md", "b.md")
}

func TestByTagsEmptyListIsNoOp(t *testing.T) {
	notes := []*note.Note{mkNote("a.md", "A", "x"), mkNote("b.md", "B")}

	for _, mode := range []TagMode{TagModeOr, TagModeAnd} {
		got, err := ByTags(notes, nil, mode)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(notes) {
			t.Errorf("mode %s: got %d notes, want all %d", mode, len(got), len(notes))
		}
		for i := range notes {
			if got[i] != notes[i] {
				t.Errorf("mode %s: note %d differs", mode, i)
			}
		}
	}
}

func TestByTagsInvalidMode(t *testing.T) {
	if _, err := ByTags(nil, []string{"x"}, TagMode("xor")); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestByDateRange(t *testing.T) {
	inRange := mkNote("in.md", "In")
	inRange.Metadata["start_date"] = "2025-06-10"
	edge := mkNote("edge.md", "Edge")
	edge.Metadata["due_date"] = "2025-06-30"
	outside := mkNote("out.md", "Out")
	outside.Metadata["start_date"] = "2025-07-02"
	dateless := mkNote("none.md", "None")
	custom := mkNote("custom.md", "Custom")
	custom.Metadata["review_on"] = "2025-06-15"

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	notes := []*note.Note{inRange, edge, outside, dateless, custom}

	assertPaths(t, ByDateRange(notes, start, end), "in.md", "edge.md")
	// Extra field names extend the recognized set.
	assertPaths(t, ByDateRange(notes, start, end, "review_on"), "in.md", "edge.md", "custom.md")
}

func TestByProperties(t *testing.T) {
	a := mkNote("a.md", "A")
	a.Metadata["status"] = "active"
	a.Metadata["priority"] = 1
	b := mkNote("b.md", "B")
	b.Metadata["status"] = "active"

	notes := []*note.Note{a, b}

	assertPaths(t, ByProperties(notes, map[string]any{"status": "active"}), "a.md", "b.md")
	assertPaths(t, ByProperties(notes, map[string]any{"status": "active", "priority": 1}), "a.md")
	assertPaths(t, ByProperties(notes, map[string]any{"status": "done"}))
	assertPaths(t, ByProperties(notes, nil), "a.md", "b.md")
}

func TestByPendingTasks(t *testing.T) {
	pending := mkNote("p.md", "P")
	pending.Tasks = []note.Task{{Text: "x"}}
	done := mkNote("d.md", "D")
	done.Tasks = []note.Task{{Text: "x", Completed: true}}
	empty := mkNote("e.md", "E")

	notes := []*note.Note{pending, done, empty}

	assertPaths(t, ByPendingTasks(notes, true), "p.md")
	assertPaths(t, ByPendingTasks(notes, false), "d.md", "e.md")
}

func TestSearch(t *testing.T) {
	a := mkNote("a.md", "Paris Trip")
	a.Body = "Visit the Louvre"
	b := mkNote("b.md", "Work")
	b.Body = "quarterly report"

	notes := []*note.Note{a, b}

	assertPaths(t, Search(notes, "louvre", false), "a.md")
	assertPaths(t, Search(notes, "Louvre", true), "a.md")
	assertPaths(t, Search(notes, "louvre", true))
	assertPaths(t, Search(notes, "paris", false), "a.md")
	assertPaths(t, Search(notes, "", false), "a.md", "b.md")
}

func TestSortNotes(t *testing.T) {
	a := mkNote("b-path.md", "banana")
	b := mkNote("a-path.md", "Apple")
	c := mkNote("c-path.md", "cherry")
	c.Metadata["start_date"] = "2025-01-01"
	a.Metadata["start_date"] = "2025-03-01"

	notes := []*note.Note{a, b, c}

	byTitle, err := SortNotes(notes, SortByTitle, false)
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, byTitle, "a-path.md", "b-path.md", "c-path.md")

	byTitleRev, err := SortNotes(notes, SortByTitle, true)
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, byTitleRev, "c-path.md", "b-path.md", "a-path.md")

	byPath, err := SortNotes(notes, SortByPath, false)
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, byPath, "a-path.md", "b-path.md", "c-path.md")

	// b has no start_date and must sort last, in both directions.
	byDateAsc, err := SortNotes(notes, SortByStartDate, false)
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, byDateAsc, "c-path.md", "a-path.md", "b-path.md")

	byDateDesc, err := SortNotes(notes, SortByStartDate, true)
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, byDateDesc, "a-path.md", "c-path.md", "b-path.md")

	if _, err := SortNotes(notes, SortField("bogus"), false); err == nil {
		t.Error("expected error for unsupported field")
	}

	// The input slice is untouched.
	assertPaths(t, notes, "b-path.md", "a-path.md", "c-path.md")
}

func TestApplyOrderAndSpec(t *testing.T) {
	a := mkNote("a.md", "France Trip", "trip")
	a.Body = "- [ ] book"
	a.Tasks = []note.Task{{Text: "book"}}
	a.Metadata["start_date"] = "2025-06-10"
	b := mkNote("b.md", "Spain Trip", "trip")
	b.Metadata["start_date"] = "2025-06-20"
	c := mkNote("c.md", "Work", "work")

	notes := []*note.Note{c, b, a}

	spec := &Spec{Tags: []string{"trip"}, TagMode: TagModeOr}
	pending := true
	got, err := Apply(notes, spec, Query{HasPending: &pending, SortBy: SortByTitle})
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, got, "a.md")

	// Spec alone, sorted.
	got, err = Apply(notes, spec, Query{SortBy: SortByStartDate})
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, got, "a.md", "b.md")

	// Invalid sort surfaces as an error.
	if _, err := Apply(notes, nil, Query{SortBy: SortField("nope")}); err == nil {
		t.Error("expected sort error")
	}

	// Nil spec and zero query are a no-op.
	got, err = Apply(notes, nil, Query{})
	if err != nil {
		t.Fatal(err)
	}
	assertPaths(t, got, "c.md", "b.md", "a.md")
}
