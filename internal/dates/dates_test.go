package dates

import (
	"testing"
	"time"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // YYYY-MM-DD of the parsed result
		ok    bool
	}{
		{name: "iso date", input: "2025-03-14", want: "2025-03-14", ok: true},
		{name: "rfc3339", input: "2025-03-14T09:30:00Z", want: "2025-03-14", ok: true},
		{name: "datetime no zone", input: "2025-03-14T09:30:00", want: "2025-03-14", ok: true},
		{name: "space datetime", input: "2025-03-14 09:30", want: "2025-03-14", ok: true},
		{name: "slash iso", input: "2025/03/14", want: "2025-03-14", ok: true},
		{name: "us slash", input: "03/14/2025", want: "2025-03-14", ok: true},
		{name: "eu slash", input: "14/03/2025", want: "2025-03-14", ok: true},
		{name: "long month", input: "March 14, 2025", want: "2025-03-14", ok: true},
		{name: "short month", input: "Mar 14, 2025", want: "2025-03-14", ok: true},
		{name: "day first long", input: "14 March 2025", want: "2025-03-14", ok: true},
		{name: "whitespace trimmed", input: "  2025-03-14  ", want: "2025-03-14", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "next thursday-ish", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseString(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Format(DateLayout) != tt.want {
				t.Errorf("parsed %s, want %s", got.Format(DateLayout), tt.want)
			}
		})
	}
}

func TestParseStringAmbiguousPrefersUS(t *testing.T) {
	// 01/02/2026 is ambiguous; the cascade tries US ordering first.
	got, ok := ParseString("01/02/2026")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.Month() != time.January || got.Day() != 2 {
		t.Errorf("got %v, want January 2", got)
	}
}

func TestParseDateStrict(t *testing.T) {
	got, err := ParseDate(" 2025-03-14 ")
	if err != nil || got.Format(DateLayout) != "2025-03-14" {
		t.Errorf("ParseDate = %v, %v", got, err)
	}

	// Only the canonical layout is accepted, and it must be a real date.
	for _, bad := range []string{"03/14/2025", "2025-13-01", "2025-02-30", "nope", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestParseValue(t *testing.T) {
	native := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if got, ok := ParseValue(native); !ok || !got.Equal(native) {
		t.Errorf("time.Time passthrough failed: %v %v", got, ok)
	}
	if got, ok := ParseValue("2025-06-01"); !ok || got.Format(DateLayout) != "2025-06-01" {
		t.Errorf("string parse failed: %v %v", got, ok)
	}
	if _, ok := ParseValue(42); ok {
		t.Error("expected non-date value to fail")
	}
	if _, ok := ParseValue(nil); ok {
		t.Error("expected nil to fail")
	}
}

func TestParseDateArg(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	if got, err := ParseDateArg("yesterday", now); err != nil || got.Day() != 13 {
		t.Errorf("yesterday = %v, %v", got, err)
	}
	if got, err := ParseDateArg("", now); err != nil || !got.Equal(now) {
		t.Errorf("empty = %v, %v", got, err)
	}
	if _, err := ParseDateArg("nonsense", now); err == nil {
		t.Error("expected error for nonsense input")
	}
}
