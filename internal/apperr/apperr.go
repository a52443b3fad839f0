// Package apperr defines the error taxonomy shared across the vault subsystem.
//
// Callers match these with errors.Is; lower layers wrap them with context
// via fmt.Errorf("...: %w", ...). Operating-system errors (permissions,
// disk full) are deliberately not translated and propagate unchanged.
package apperr

import "errors"

var (
	// ErrVaultNotFound means the vault root does not exist or is not a
	// directory. Raised at construction time only.
	ErrVaultNotFound = errors.New("vault not found")

	// ErrNoteNotFound means the requested note path does not exist.
	ErrNoteNotFound = errors.New("note not found")

	// ErrNoteExists means a create targeted a path that is already a file.
	ErrNoteExists = errors.New("note already exists")

	// ErrNotMapping means a syntactically delimited front-matter block
	// parsed to something other than a key/value mapping. Merely malformed
	// YAML never raises this; it degrades to partial recovery instead.
	ErrNotMapping = errors.New("front matter is not a mapping")

	// ErrTaskUpdate means no task with the given text and the opposite of
	// the requested status exists in the note.
	ErrTaskUpdate = errors.New("task update failed")
)
