package vault

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aidanlsb/quill/internal/apperr"
	"github.com/aidanlsb/quill/internal/frontmatter"
	"github.com/aidanlsb/quill/internal/note"
)

// DefaultSeparator joins existing body text with appended or prepended text.
const DefaultSeparator = "\n\n"

// illegalFilenameChars is everything outside the filename whitelist:
// letters and digits in any script, dots, underscores, hyphens, and spaces.
var illegalFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}._\- ]`)

const maxFilenameLen = 100

// Create writes a new note. The target path defaults to the sanitized title
// at the vault root; an existing file at the target is ErrNoteExists. A
// front-matter block is written only when metadata is non-empty.
func (v *Vault) Create(title, body string, metadata map[string]any, path string) (*note.Note, error) {
	if err := validation.Validate(title,
		validation.Required,
		validation.Length(1, 200),
	); err != nil {
		return nil, fmt.Errorf("invalid title: %w", err)
	}

	if path == "" {
		path = SanitizeFilename(title) + ".md"
	}
	if v.fs.Exists(path) {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNoteExists, path)
	}

	meta := metadata
	if meta == nil {
		meta = map[string]any{}
	}
	if _, ok := meta["title"]; !ok && len(meta) > 0 {
		meta = frontmatter.Merge(meta, map[string]any{"title": title})
	}

	block, err := frontmatter.Render(meta)
	if err != nil {
		return nil, err
	}
	if err := v.fs.Save(path, block+body); err != nil {
		return nil, err
	}
	return v.loadAndCache(path)
}

// Update rewrites a note: metadata merges over the existing front matter and
// a nil body keeps the current one. The path's cache entry is invalidated,
// not reloaded.
func (v *Vault) Update(path string, body *string, metadata map[string]any) error {
	current, err := v.load(path)
	if err != nil {
		return err
	}

	merged := frontmatter.Merge(current.Metadata, metadata)
	newBody := current.Body
	if body != nil {
		newBody = *body
	}

	block, err := frontmatter.Render(merged)
	if err != nil {
		return err
	}
	if err := v.fs.Save(path, block+newBody); err != nil {
		return err
	}
	v.cache.invalidate(path)
	return nil
}

// Append adds text after the existing body, joined by separator (default
// "\n\n").
func (v *Vault) Append(path, text, separator string) error {
	return v.concat(path, text, separator, false)
}

// Prepend adds text before the existing body, after any front matter.
func (v *Vault) Prepend(path, text, separator string) error {
	return v.concat(path, text, separator, true)
}

func (v *Vault) concat(path, text, separator string, before bool) error {
	if separator == "" {
		separator = DefaultSeparator
	}
	current, err := v.load(path)
	if err != nil {
		return err
	}

	newBody := text
	if strings.TrimSpace(current.Body) != "" {
		if before {
			newBody = text + separator + current.Body
		} else {
			newBody = current.Body + separator + text
		}
	}
	return v.Update(path, &newBody, nil)
}

// taskLine matches one checkbox list line: optional indent, a bullet marker,
// then brackets holding a space, x, or nothing. Captures keep every
// surrounding byte so a toggle rewrites only the status character.
var taskLine = regexp.MustCompile(`^(\s*[-*+]\s+\[)( |x|X|)(\]\s*)(.*)$`)

// SetTaskStatus toggles the first task whose trimmed text equals taskText
// and whose current status is the opposite of the requested one. Every
// other byte of the file is preserved. No such task is ErrTaskUpdate, so a
// task already in the requested state is an error, not a no-op.
func (v *Vault) SetTaskStatus(path, taskText string, completed bool) error {
	raw, err := v.fs.LoadRaw(path)
	if err != nil {
		return err
	}

	want := strings.TrimSpace(taskText)
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		m := taskLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		isDone := m[2] == "x" || m[2] == "X"
		if strings.TrimSpace(m[4]) != want || isDone == completed {
			continue
		}
		mark := " "
		if completed {
			mark = "x"
		}
		lines[i] = m[1] + mark + m[3] + m[4]
		if err := v.fs.Save(path, strings.Join(lines, "\n")); err != nil {
			return err
		}
		v.cache.invalidate(path)
		return nil
	}

	current := "completed"
	if completed {
		current = "pending"
	}
	return fmt.Errorf("%w: no %s task %q in %s", apperr.ErrTaskUpdate, current, taskText, path)
}

// SanitizeFilename derives a filesystem-safe filename stem from a title:
// characters outside the whitelist become underscores, leading and trailing
// dots and spaces are stripped, and the result is capped at 100 characters.
func SanitizeFilename(title string) string {
	name := illegalFilenameChars.ReplaceAllString(title, "_")
	name = strings.Trim(name, ". ")
	// Cap on runes, not bytes, so a multibyte title is never cut mid-rune.
	if runes := []rune(name); len(runes) > maxFilenameLen {
		name = strings.Trim(string(runes[:maxFilenameLen]), ". ")
	}
	if name == "" {
		name = "untitled"
	}
	return name
}
