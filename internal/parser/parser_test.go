package parser

import (
	"reflect"
	"testing"

	"github.com/aidanlsb/quill/internal/note"
)

func TestParseTasks(t *testing.T) {
	body := `# Trip

## Tasks

- [ ] Book flight
- [x] Book hotel
  - [ ] Confirm dates
* [X] Pack bags
+ [] Buy adapter

## Notes

Not a task
- regular bullet`

	result := Parse(body, 1)

	want := []note.Task{
		{Text: "Book flight", Line: 5, ParentHeading: "Tasks", HeadingPath: []string{"Trip", "Tasks"}},
		{Text: "Book hotel", Completed: true, Line: 6, ParentHeading: "Tasks", HeadingPath: []string{"Trip", "Tasks"}},
		{Text: "Confirm dates", Line: 7, Indent: 2, ParentHeading: "Tasks", HeadingPath: []string{"Trip", "Tasks"}},
		{Text: "Pack bags", Completed: true, Line: 8, ParentHeading: "Tasks", HeadingPath: []string{"Trip", "Tasks"}},
		{Text: "Buy adapter", Line: 9, ParentHeading: "Tasks", HeadingPath: []string{"Trip", "Tasks"}},
	}

	if !reflect.DeepEqual(result.Tasks, want) {
		t.Errorf("tasks = %+v\nwant %+v", result.Tasks, want)
	}
}

func TestParseHeadingStack(t *testing.T) {
	body := `# A

## B

- [ ] under b

### C

- [ ] under c

## D

- [ ] under d`

	result := Parse(body, 1)

	if len(result.Tasks) != 3 {
		t.Fatalf("got %d tasks: %+v", len(result.Tasks), result.Tasks)
	}

	tests := []struct {
		parent string
		path   []string
	}{
		{parent: "B", path: []string{"A", "B"}},
		{parent: "C", path: []string{"A", "B", "C"}},
		{parent: "D", path: []string{"A", "D"}},
	}
	for i, tt := range tests {
		if result.Tasks[i].ParentHeading != tt.parent {
			t.Errorf("task %d parent = %q, want %q", i, result.Tasks[i].ParentHeading, tt.parent)
		}
		if !reflect.DeepEqual(result.Tasks[i].HeadingPath, tt.path) {
			t.Errorf("task %d path = %v, want %v", i, result.Tasks[i].HeadingPath, tt.path)
		}
	}
}

func TestParseTaskBeforeAnyHeading(t *testing.T) {
	result := Parse("- [ ] orphan\n\n# Later", 1)
	if len(result.Tasks) != 1 {
		t.Fatalf("got %d tasks", len(result.Tasks))
	}
	if result.Tasks[0].ParentHeading != "" || result.Tasks[0].HeadingPath != nil {
		t.Errorf("orphan task should have no heading context: %+v", result.Tasks[0])
	}
}

func TestParseHeadings(t *testing.T) {
	body := "# Top\n\nText\n\n## Nested *emphasis* here\n"

	result := Parse(body, 1)

	want := []note.Heading{
		{Level: 1, Text: "Top", Line: 1},
		{Level: 2, Text: "Nested emphasis here", Line: 5},
	}
	if !reflect.DeepEqual(result.Headings, want) {
		t.Errorf("headings = %+v, want %+v", result.Headings, want)
	}
}

func TestParseStartLineOffset(t *testing.T) {
	result := Parse("# Top\n- [ ] task", 5)

	if result.Headings[0].Line != 5 {
		t.Errorf("heading line = %d, want 5", result.Headings[0].Line)
	}
	if result.Tasks[0].Line != 6 {
		t.Errorf("task line = %d, want 6", result.Tasks[0].Line)
	}
}

func TestParseLinks(t *testing.T) {
	body := `See [[trips/france]] and [[trips/france|the trip]].

External: [flights](https://example.com/flights)

Repeat: [[trips/france]] and [flights](https://example.com/flights)`

	result := Parse(body, 1)

	want := []note.Link{
		{Text: "trips/france", URL: "trips/france", Internal: true},
		{Text: "the trip", URL: "trips/france", Internal: true},
		{Text: "flights", URL: "https://example.com/flights"},
	}
	if !reflect.DeepEqual(result.Links, want) {
		t.Errorf("links = %+v\nwant %+v", result.Links, want)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, body := range []string{"", "   \n\t\n"} {
		result := Parse(body, 1)
		if len(result.Tasks) != 0 || len(result.Headings) != 0 || len(result.Links) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty", body, result)
		}
	}
}

func TestExtractInlineTags(t *testing.T) {
	body := "Planning #trip to #France with #trip again, plus #sub/tag"
	want := []string{"trip", "France", "sub/tag"}

	if got := ExtractInlineTags(body); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
