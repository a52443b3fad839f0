package ui

import "testing"

func TestDisplayContextAvailableWidth(t *testing.T) {
	dc := NewDisplayContextWithWidth(80)
	if !dc.IsTTY {
		t.Error("fixed-width context should report a TTY")
	}
	if got := dc.AvailableWidth(MarkdownRenderMargin); got != 80-MarkdownRenderMargin {
		t.Errorf("available width = %d, want %d", got, 80-MarkdownRenderMargin)
	}
}
