// Package vaultfs manages the note files under a vault root: discovery,
// raw reads with encoding fallback, backed-up atomic writes, and per-file
// stat metadata.
package vaultfs

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aidanlsb/quill/internal/apperr"
	"github.com/aidanlsb/quill/internal/atomicfile"
)

// defaultIgnoredDirs are skipped during scans: version control metadata,
// app-internal folders, and the trash.
var defaultIgnoredDirs = []string{".git", ".obsidian", ".quill", ".trash"}

// FileStats is the cached stat metadata for one note file.
//
// Created and Accessed are approximated with the modification time: it is
// the only timestamp the platform-independent stat surface exposes.
type FileStats struct {
	Size     int64
	Created  time.Time
	Modified time.Time
	Accessed time.Time
}

// VaultStats aggregates a fresh scan of the whole vault.
type VaultStats struct {
	NoteCount        int
	TotalBytes       int64
	LastModifiedPath string
	LastModifiedAt   time.Time
}

// Manager reads and writes note files under a vault root. All paths passed
// to its methods are vault-relative.
type Manager struct {
	root   string
	ignore map[string]struct{}
	logger *slog.Logger

	mu        sync.Mutex
	statCache map[string]FileStats
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIgnoredDirs adds directory names to skip during scans, on top of the
// built-in set.
func WithIgnoredDirs(names ...string) Option {
	return func(m *Manager) {
		for _, name := range names {
			if name != "" {
				m.ignore[name] = struct{}{}
			}
		}
	}
}

// NewManager creates a Manager rooted at the given directory, which must
// already exist.
func NewManager(root string, opts ...Option) (*Manager, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", apperr.ErrVaultNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat vault root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", apperr.ErrVaultNotFound, root)
	}

	m := &Manager{
		root:      abs,
		ignore:    make(map[string]struct{}, len(defaultIgnoredDirs)),
		logger:    slog.Default(),
		statCache: make(map[string]FileStats),
	}
	for _, name := range defaultIgnoredDirs {
		m.ignore[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Root returns the absolute vault root.
func (m *Manager) Root() string {
	return m.root
}

// abs resolves a vault-relative path and rejects anything that escapes the
// root (directory traversal).
func (m *Manager) abs(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(m.root, cleaned)
	if !strings.HasPrefix(joined, m.root+string(os.PathSeparator)) && joined != m.root {
		return "", fmt.Errorf("path escapes vault root: %s", rel)
	}
	return joined, nil
}

// Scan enumerates all note files under the root, skipping ignored
// directories. It returns the full vault-relative path list eagerly; the
// vault is assumed small enough to enumerate in one pass.
func (m *Manager) Scan() ([]string, error) {
	var out []string
	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := m.ignore[d.Name()]; skip && path != m.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(m.root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	return out, nil
}

// Exists reports whether a note file exists at the given path.
func (m *Manager) Exists(rel string) bool {
	abs, err := m.abs(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// LoadRaw reads a note file as text. Decoding never fails: UTF-8 first,
// then the legacy-encoding cascade, finally replacement characters. The
// only error for a missing file is ErrNoteNotFound.
func (m *Manager) LoadRaw(rel string) (string, error) {
	abs, err := m.abs(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", apperr.ErrNoteNotFound, rel)
	}
	if err != nil {
		return "", err
	}
	return DecodeText(data), nil
}

// Save writes a note file, creating parent directories as needed. When the
// file already exists a timestamped backup copy is written first; a backup
// failure is logged but does not block the write. The write itself goes
// through a temp file and rename so a crash cannot tear the note.
func (m *Manager) Save(rel, content string) error {
	abs, err := m.abs(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	if _, err := os.Stat(abs); err == nil {
		if backupErr := m.backup(abs); backupErr != nil {
			m.logger.Warn("backup before overwrite failed",
				slog.String("path", rel), slog.String("error", backupErr.Error()))
		}
	}

	if err := atomicfile.WriteFile(abs, []byte(content), 0); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.statCache, rel)
	m.mu.Unlock()
	return nil
}

// backup copies the current file alongside itself with a timestamp suffix
// and a .bak extension. Backups are informational; nothing reads them back.
func (m *Manager) backup(abs string) error {
	src, err := os.Open(abs)
	if err != nil {
		return err
	}
	defer src.Close()

	stem := strings.TrimSuffix(abs, filepath.Ext(abs))
	backupPath := fmt.Sprintf("%s.%s.bak", stem, time.Now().Format("20060102-150405"))

	dst, err := os.Create(backupPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Close()
}

// Stat returns stat metadata for a note file, cached per path until the
// next Save to that path.
func (m *Manager) Stat(rel string) (FileStats, error) {
	m.mu.Lock()
	if cached, ok := m.statCache[rel]; ok {
		m.mu.Unlock()
		return cached, nil
	}
	m.mu.Unlock()

	abs, err := m.abs(rel)
	if err != nil {
		return FileStats{}, err
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return FileStats{}, fmt.Errorf("%w: %s", apperr.ErrNoteNotFound, rel)
	}
	if err != nil {
		return FileStats{}, err
	}

	stats := FileStats{
		Size:     info.Size(),
		Created:  info.ModTime(),
		Modified: info.ModTime(),
		Accessed: info.ModTime(),
	}

	m.mu.Lock()
	m.statCache[rel] = stats
	m.mu.Unlock()
	return stats, nil
}

// VaultStats aggregates note count, total byte size, and the most recently
// modified note across a fresh scan.
func (m *Manager) VaultStats() (VaultStats, error) {
	paths, err := m.Scan()
	if err != nil {
		return VaultStats{}, err
	}

	var out VaultStats
	for _, rel := range paths {
		stats, err := m.Stat(rel)
		if err != nil {
			return VaultStats{}, err
		}
		out.NoteCount++
		out.TotalBytes += stats.Size
		if stats.Modified.After(out.LastModifiedAt) {
			out.LastModifiedAt = stats.Modified
			out.LastModifiedPath = rel
		}
	}
	return out, nil
}
