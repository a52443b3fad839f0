package ui

import (
	"strings"
	"testing"

	"github.com/aidanlsb/quill/internal/note"
)

func TestRenderNoteList(t *testing.T) {
	notes := []*note.Note{
		{Path: "trip.md", Title: "France Trip", Tags: []string{"trip"}, Tasks: []note.Task{{Text: "Book flight"}}},
		{Path: "work.md", Title: "Work"},
	}

	out := RenderNoteList(notes)
	for _, want := range []string{"trip.md", "France Trip", "#trip", "(1 open task)", "(2 notes)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if out := RenderNoteList(nil); !strings.Contains(out, "no notes found") {
		t.Errorf("empty list output = %q", out)
	}
}

func TestRenderTasks(t *testing.T) {
	n := &note.Note{
		Path: "t.md",
		Tasks: []note.Task{
			{Text: "Book flight", Line: 8, ParentHeading: "Tasks"},
			{Text: "Book hotel", Line: 9, ParentHeading: "Tasks", Completed: true},
		},
	}

	out := RenderTasks(n)
	if !strings.Contains(out, "[ ] Book flight") || !strings.Contains(out, "[x] Book hotel") {
		t.Errorf("output = %q", out)
	}
	if strings.Count(out, "Tasks") != 1 {
		t.Errorf("heading should print once:\n%s", out)
	}

	if out := RenderTasks(&note.Note{}); !strings.Contains(out, "no tasks") {
		t.Errorf("empty output = %q", out)
	}
}

func TestRenderTagCounts(t *testing.T) {
	notes := []*note.Note{
		{Path: "a.md", Tags: []string{"trip", "france"}},
		{Path: "b.md", Tags: []string{"trip"}},
	}

	out := RenderTagCounts(notes)
	if !strings.Contains(out, "#trip") || !strings.Contains(out, "(2 notes)") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "#france") || !strings.Contains(out, "(1 note)") {
		t.Errorf("output = %q", out)
	}
	// Alphabetical order.
	if strings.Index(out, "#france") > strings.Index(out, "#trip") {
		t.Errorf("tags not sorted:\n%s", out)
	}

	if out := RenderTagCounts(nil); !strings.Contains(out, "no tags") {
		t.Errorf("empty output = %q", out)
	}
}

func TestTableAlignment(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("a.md", "Title")
	tbl.AddRow("longer/path.md", "Other")

	lines := strings.Split(strings.TrimRight(tbl.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if strings.Index(lines[0], "Title") != strings.Index(lines[1], "Other") {
		t.Errorf("columns not aligned:\n%s\n%s", lines[0], lines[1])
	}
}
