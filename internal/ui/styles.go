package ui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA, configurable): Highlights, paths, titles
// - Muted (gray): Secondary info, line numbers
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths, note references, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

// accentColor holds the configured accent override, empty for the default.
var accentColor string

var (
	hexColor6 = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	hexColor3 = regexp.MustCompile(`^#[0-9a-fA-F]{3}$`)
)

// ConfigureTheme applies an accent color from config to the shared styles.
// Empty or unrecognized values reset to the default palette.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
		AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the configured accent override, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor accepts ANSI color codes ("0" to "255") and hex
// colors ("#RGB" or "#RRGGBB"). Everything else disables the accent.
func normalizeAccentColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if hexColor6.MatchString(s) {
		return strings.ToLower(s), true
	}
	if hexColor3.MatchString(s) {
		short := strings.ToLower(s)
		return "#" + strings.Repeat(string(short[1]), 2) +
			strings.Repeat(string(short[2]), 2) +
			strings.Repeat(string(short[3]), 2), true
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
		return strconv.Itoa(n), true
	}
	return "", false
}
