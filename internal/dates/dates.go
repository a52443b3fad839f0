// Package dates provides canonical date parsing helpers.
//
// This package exists to avoid duplicating date parsing logic across:
// - front-matter date fields
// - filter date ranges
// - CLI date args
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD layout.
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// flexibleLayouts is the ordered cascade tried by ParseString. First match
// wins, so more specific layouts come before ambiguous ones and US ordering
// takes precedence over EU ordering for slash dates.
var flexibleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a strict YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.Parse(DateLayout, s)
}

// ParseString parses a textual date through the layout cascade.
// Exhaustion returns ok=false, never an error.
func ParseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseValue parses an arbitrary metadata value as a date.
//
// time.Time values (YAML parses ISO dates natively) pass through; strings go
// through the layout cascade. Anything else is not a date.
func ParseValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return ParseString(t)
	default:
		return time.Time{}, false
	}
}

// ParseDateArg parses a CLI date argument: "today", "yesterday", "tomorrow",
// or anything the flexible cascade accepts.
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	dateArg := strings.ToLower(strings.TrimSpace(arg))
	switch dateArg {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	default:
		if t, ok := ParseString(arg); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or today/yesterday/tomorrow", arg)
	}
}
