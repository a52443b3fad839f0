package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/quill/internal/note"
)

// RenderNoteList renders notes as a path/title/tags table with a count
// footer.
func RenderNoteList(notes []*note.Note) string {
	if len(notes) == 0 {
		return Hint("no notes found") + "\n"
	}

	table := NewTable(3)
	for _, n := range notes {
		tags := ""
		if len(n.Tags) > 0 {
			tags = Muted.Render("#" + strings.Join(n.Tags, " #"))
		}
		title := n.Title
		if pending := len(n.PendingTasks()); pending > 0 {
			title = fmt.Sprintf("%s %s", title, Muted.Render(Count(pending, "open task", "open tasks")))
		}
		table.AddRow(FilePath(n.Path), title, tags)
	}

	return table.String() + Hint(Count(len(notes), "note", "notes")) + "\n"
}

// RenderTasks renders a note's tasks as checkbox lines with source line
// numbers, grouped under their headings.
func RenderTasks(n *note.Note) string {
	if len(n.Tasks) == 0 {
		return Hint("no tasks") + "\n"
	}

	var sb strings.Builder
	lastHeading := ""
	for _, t := range n.Tasks {
		if t.ParentHeading != lastHeading && t.ParentHeading != "" {
			sb.WriteString(Header(t.ParentHeading) + "\n")
		}
		lastHeading = t.ParentHeading

		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", box, t.Text, LineNum(t.Line)))
	}
	return sb.String()
}

// RenderTagCounts renders the vault's distinct tags as a bullet list with
// per-tag note counts, sorted alphabetically.
func RenderTagCounts(notes []*note.Note) string {
	counts := make(map[string]int)
	for _, n := range notes {
		for _, tag := range n.Tags {
			counts[tag]++
		}
	}
	if len(counts) == 0 {
		return Hint("no tags") + "\n"
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	list := NewList()
	for _, tag := range tags {
		list.Add(fmt.Sprintf("%s %s", Accent.Render("#"+tag),
			Muted.Render(Count(counts[tag], "note", "notes"))))
	}
	return list.String()
}

// RenderStatsRow formats one label/value pair for stats output.
func RenderStatsRow(label, value string) string {
	return fmt.Sprintf("%s %s", Muted.Render(label+":"), value)
}
