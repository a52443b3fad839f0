package frontmatter

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/aidanlsb/quill/internal/apperr"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantMeta map[string]any
		wantBody string
	}{
		{
			name: "well formed",
			raw: `---
title: Trip
tags: [trip, france]
---
# Trip

Body here`,
			wantMeta: map[string]any{
				"title": "Trip",
				"tags":  []any{"trip", "france"},
			},
			wantBody: "# Trip\n\nBody here",
		},
		{
			name:     "no front matter",
			raw:      "# Heading\n\nJust a body",
			wantMeta: map[string]any{},
			wantBody: "# Heading\n\nJust a body",
		},
		{
			name:     "empty block",
			raw:      "---\n---\nBody",
			wantMeta: map[string]any{},
			wantBody: "Body",
		},
		{
			name: "malformed yaml recovers good lines",
			raw: `---
title: Trip
bad line without colon separator [
count: 3
---
Body`,
			wantMeta: map[string]any{"title": "Trip", "count": 3},
			wantBody: "Body",
		},
		{
			name:     "unclosed block recovers prefix",
			raw:      "---\ntitle: Trip\nstatus: open\n\n# Not metadata",
			wantMeta: map[string]any{"title": "Trip", "status": "open"},
			wantBody: "\n# Not metadata",
		},
		{
			name:     "empty input",
			raw:      "",
			wantMeta: map[string]any{},
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := Extract(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta == nil {
				t.Fatal("metadata must never be nil on success")
			}
			if !reflect.DeepEqual(meta, tt.wantMeta) {
				t.Errorf("meta = %#v, want %#v", meta, tt.wantMeta)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestExtractNonMapping(t *testing.T) {
	_, _, err := Extract("---\n- just\n- a\n- list\n---\nBody")
	if !errors.Is(err, apperr.ErrNotMapping) {
		t.Fatalf("err = %v, want ErrNotMapping", err)
	}
}

func TestExtractBodyIsLineSuffix(t *testing.T) {
	raw := "---\ntitle: x\n---\nline one\nline two"
	_, body, err := Extract(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(raw, body) {
		t.Errorf("body %q is not a suffix of raw", body)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	meta := map[string]any{
		"title":  "Trip",
		"count":  3,
		"open":   true,
		"tags":   []any{"trip", "france"},
		"status": "planned",
	}

	block, err := Render(meta)
	if err != nil {
		t.Fatal(err)
	}
	got, body, err := Extract(block + "body")
	if err != nil {
		t.Fatal(err)
	}
	if body != "body" {
		t.Errorf("body = %q", body)
	}
	if !reflect.DeepEqual(got, meta) {
		t.Errorf("round trip: got %#v, want %#v", got, meta)
	}
}

func TestRenderEmpty(t *testing.T) {
	block, err := Render(nil)
	if err != nil || block != "" {
		t.Errorf("Render(nil) = %q, %v", block, err)
	}
}

func TestMerge(t *testing.T) {
	existing := map[string]any{"title": "Old", "tags": []any{"Trip", "#france"}, "keep": 1}
	updates := map[string]any{"title": "New", "tags": "france, spain"}

	merged := Merge(existing, updates)

	if merged["title"] != "New" {
		t.Errorf("title = %v", merged["title"])
	}
	if merged["keep"] != 1 {
		t.Errorf("keep = %v", merged["keep"])
	}
	wantTags := []string{"trip", "france", "spain"}
	if !reflect.DeepEqual(merged["tags"], wantTags) {
		t.Errorf("tags = %v, want %v", merged["tags"], wantTags)
	}
	// Inputs are untouched.
	if existing["title"] != "Old" {
		t.Error("Merge mutated its input")
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{name: "list", in: []any{"Trip", "#France", "trip"}, want: []string{"trip", "france"}},
		{name: "comma string", in: "a, B , #c", want: []string{"a", "b", "c"}},
		{name: "string slice", in: []string{"x"}, want: []string{"x"}},
		{name: "nil", in: nil, want: nil},
		{name: "empty entries dropped", in: " , #, ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
