// Package parser extracts structure from a note body: checkbox tasks,
// headings, and links.
//
// Headings and external links come from the goldmark AST so that text nested
// in inline markup is extracted correctly. Tasks combine a checkbox pattern
// match with a single forward pass that threads an explicit heading stack,
// giving each task its line number and heading ancestry.
package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/aidanlsb/quill/internal/note"
	"github.com/aidanlsb/quill/internal/wikilink"
)

// Result holds everything extracted from a note body.
type Result struct {
	Tasks    []note.Task
	Headings []note.Heading
	Links    []note.Link
}

var (
	// taskRe matches "- [ ] text" checkboxes with -/*/+ bullets and a
	// single- or zero-character status inside the brackets.
	taskRe = regexp.MustCompile(`^([ \t]*)[-*+]\s+\[([^\]]?)\]\s*(.*)$`)

	// tagRe matches inline #tags in body text.
	tagRe = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)
)

// Parse extracts tasks, headings, and links from a note body.
//
// startLine is the 1-based file line where the body begins, so that all
// reported line numbers refer to the on-disk file even when front matter
// precedes the body. Empty or whitespace-only input yields an empty Result.
func Parse(body string, startLine int) Result {
	if strings.TrimSpace(body) == "" {
		return Result{}
	}
	if startLine < 1 {
		startLine = 1
	}

	headings, hits := parseAST(body, startLine)
	hits = append(hits, scanWikilinks(body, startLine)...)

	return Result{
		Tasks:    scanTasks(body, startLine, headings),
		Headings: headings,
		Links:    collapseLinks(hits),
	}
}

// ExtractInlineTags returns the raw #tag names found in body text, in order
// of first appearance. Callers normalize and merge with metadata tags.
func ExtractInlineTags(body string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range tagRe.FindAllStringSubmatch(body, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// linkHit is a link with its source position, used to restore document order
// before duplicates are collapsed.
type linkHit struct {
	link note.Link
	line int
	col  int
}

// parseAST walks the goldmark AST collecting headings and external links.
func parseAST(body string, startLine int) ([]note.Heading, []linkHit) {
	source := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	lineStarts := computeLineStarts(body)

	var headings []note.Heading
	var hits []linkHit

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			headingText := strings.TrimSpace(nodeText(node, source))
			if headingText == "" {
				return ast.WalkContinue, nil
			}
			line := startLine
			if node.Lines().Len() > 0 {
				line = startLine + offsetToLine(lineStarts, node.Lines().At(0).Start)
			}
			headings = append(headings, note.Heading{
				Level: node.Level,
				Text:  headingText,
				Line:  line,
			})

		case *ast.Link:
			offset, ok := firstTextOffset(node)
			line, col := 0, 0
			if ok {
				lineIdx := offsetToLine(lineStarts, offset)
				line = startLine + lineIdx
				col = offset - lineStarts[lineIdx]
			}
			hits = append(hits, linkHit{
				link: note.Link{
					Text: strings.TrimSpace(nodeText(node, source)),
					URL:  string(node.Destination),
				},
				line: line,
				col:  col,
			})
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return headings, hits
}

// scanWikilinks finds [[target]] and [[target|display]] links line by line.
func scanWikilinks(body string, startLine int) []linkHit {
	var hits []linkHit
	for i, line := range strings.Split(body, "\n") {
		for _, m := range wikilink.FindAllInLine(line) {
			display := m.Display
			if display == "" {
				display = m.Target
			}
			hits = append(hits, linkHit{
				link: note.Link{Text: display, URL: m.Target, Internal: true},
				line: startLine + i,
				col:  m.Start,
			})
		}
	}
	return hits
}

// collapseLinks restores document order and drops duplicates (same text, url,
// and internality), keeping the first occurrence.
func collapseLinks(hits []linkHit) []note.Link {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].line != hits[j].line {
			return hits[i].line < hits[j].line
		}
		return hits[i].col < hits[j].col
	})

	var out []note.Link
	seen := make(map[note.Link]struct{}, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.link]; ok {
			continue
		}
		seen[h.link] = struct{}{}
		out = append(out, h.link)
	}
	return out
}

// scanTasks makes one top-to-bottom pass over the body, maintaining a stack
// of enclosing headings: on a heading of level L, entries with level >= L are
// popped before it is pushed. Tasks take the stack top as parent and the
// whole stack, outermost first, as their ancestry.
func scanTasks(body string, startLine int, headings []note.Heading) []note.Task {
	headingAt := make(map[int]note.Heading, len(headings))
	for _, h := range headings {
		headingAt[h.Line] = h
	}

	var stack []note.Heading
	var tasks []note.Task

	for i, line := range strings.Split(body, "\n") {
		lineNum := startLine + i

		if h, ok := headingAt[lineNum]; ok {
			for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, h)
			continue
		}

		m := taskRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		task := note.Task{
			Text:      strings.TrimSpace(m[3]),
			Completed: strings.EqualFold(m[2], "x"),
			Line:      lineNum,
			Indent:    len(m[1]),
		}
		if len(stack) > 0 {
			task.ParentHeading = stack[len(stack)-1].Text
			task.HeadingPath = make([]string, len(stack))
			for j, h := range stack {
				task.HeadingPath[j] = h.Text
			}
		}
		tasks = append(tasks, task)
	}

	return tasks
}

// nodeText concatenates all text descendants of a node.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// firstTextOffset returns the byte offset of the first text descendant.
func firstTextOffset(n ast.Node) (int, bool) {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := firstTextOffset(c); ok {
			return off, true
		}
	}
	return 0, false
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
