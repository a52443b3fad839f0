// Package vault is the caller-facing surface of the note store. It composes
// the file manager, front-matter extractor, and markdown parser into whole
// Note values, keeps a TTL-bounded whole-vault cache, and performs all
// mutations by writing raw text back through the file manager.
package vault

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aidanlsb/quill/internal/apperr"
	"github.com/aidanlsb/quill/internal/filter"
	"github.com/aidanlsb/quill/internal/frontmatter"
	"github.com/aidanlsb/quill/internal/note"
	"github.com/aidanlsb/quill/internal/parser"
	"github.com/aidanlsb/quill/internal/slugs"
	"github.com/aidanlsb/quill/internal/vaultfs"
)

const (
	// DefaultCacheTTL bounds how long a full listing is served from memory.
	DefaultCacheTTL = 300 * time.Second

	// defaultLoadWorkers caps concurrent file loads during a full listing.
	defaultLoadWorkers = 8
)

// Vault is the stateful facade over one vault directory. All note paths are
// vault-relative with forward slashes.
type Vault struct {
	fs     *vaultfs.Manager
	logger *slog.Logger
	cache  *noteCache

	loadWorkers int
	now         func() time.Time
}

type settings struct {
	ttl         time.Duration
	logger      *slog.Logger
	ignoredDirs []string
	loadWorkers int
}

// Option configures a Vault at Open time.
type Option func(*settings)

// WithCacheTTL overrides the listing cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger for non-fatal warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIgnoredDirs adds directory names skipped during scans.
func WithIgnoredDirs(names ...string) Option {
	return func(s *settings) {
		s.ignoredDirs = append(s.ignoredDirs, names...)
	}
}

// WithLoadWorkers caps the concurrency of full-vault loads.
func WithLoadWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.loadWorkers = n
		}
	}
}

// Open opens an existing vault directory.
func Open(root string, opts ...Option) (*Vault, error) {
	cfg := settings{
		ttl:         DefaultCacheTTL,
		logger:      slog.Default(),
		loadWorkers: defaultLoadWorkers,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	fs, err := vaultfs.NewManager(root,
		vaultfs.WithLogger(cfg.logger),
		vaultfs.WithIgnoredDirs(cfg.ignoredDirs...))
	if err != nil {
		return nil, err
	}

	return &Vault{
		fs:          fs,
		logger:      cfg.logger,
		cache:       newNoteCache(cfg.ttl),
		loadWorkers: cfg.loadWorkers,
		now:         time.Now,
	}, nil
}

// Root returns the absolute vault root directory.
func (v *Vault) Root() string {
	return v.fs.Root()
}

// load reads and assembles one note from disk, bypassing the cache.
func (v *Vault) load(path string) (*note.Note, error) {
	raw, err := v.fs.LoadRaw(path)
	if err != nil {
		return nil, err
	}

	meta, body, err := frontmatter.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// body is always a line-suffix of raw, so the parser can be told which
	// file line the body starts on.
	startLine := lineCount(raw) - lineCount(body) + 1
	parsed := parser.Parse(body, startLine)

	n := &note.Note{
		Title:      titleFor(meta, path),
		Path:       path,
		Body:       body,
		RawContent: raw,
		Metadata:   meta,
		Tags:       collectTags(meta, body),
		Tasks:      parsed.Tasks,
		Headings:   parsed.Headings,
		Links:      parsed.Links,
	}

	if stats, err := v.fs.Stat(path); err == nil {
		n.CreatedAt = stats.Created
		n.ModifiedAt = stats.Modified
	}
	return n, nil
}

// loadAll scans the vault and loads every note in parallel. Files that fail
// to load are logged and skipped so one bad note cannot break a listing.
// The result is sorted by path and repopulates the cache.
func (v *Vault) loadAll() ([]*note.Note, error) {
	paths, err := v.fs.Scan()
	if err != nil {
		return nil, err
	}

	results := make([]*note.Note, len(paths))
	var g errgroup.Group
	g.SetLimit(v.loadWorkers)
	for i, path := range paths {
		g.Go(func() error {
			n, err := v.load(path)
			if err != nil {
				v.logger.Warn("skipping unreadable note",
					slog.String("path", path), slog.String("error", err.Error()))
				return nil
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	notes := make([]*note.Note, 0, len(results))
	for _, n := range results {
		if n != nil {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Path < notes[j].Path })

	v.cache.populate(notes, v.now())
	return notes, nil
}

// listAll serves the full note list from the cache when fresh, else reloads.
func (v *Vault) listAll() ([]*note.Note, error) {
	if notes, ok := v.cache.all(v.now()); ok {
		sort.Slice(notes, func(i, j int) bool { return notes[i].Path < notes[j].Path })
		return notes, nil
	}
	return v.loadAll()
}

// List returns the vault's notes sorted by path, narrowed by the optional
// filter spec. Filtering never triggers a reload on its own.
func (v *Vault) List(spec *filter.Spec) ([]*note.Note, error) {
	notes, err := v.listAll()
	if err != nil {
		return nil, err
	}
	return filter.Apply(notes, spec, filter.Query{})
}

// Find runs an ad-hoc query, including search and sorting, over the
// (possibly cached) full note list.
func (v *Vault) Find(q filter.Query) ([]*note.Note, error) {
	notes, err := v.listAll()
	if err != nil {
		return nil, err
	}
	return filter.Apply(notes, nil, q)
}

// Get resolves a reference to a single note. Exact vault-relative paths win
// (with or without the .md extension); otherwise the reference is matched
// against filename stems, case-insensitively via slugs. A miss is
// ErrNoteNotFound.
func (v *Vault) Get(ref string) (*note.Note, error) {
	ref = strings.TrimSpace(strings.ReplaceAll(ref, "\\", "/"))
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", apperr.ErrNoteNotFound)
	}

	for _, path := range []string{ref, ref + ".md"} {
		if n, ok := v.cache.get(path, v.now()); ok {
			return n, nil
		}
		if v.fs.Exists(path) {
			return v.loadAndCache(path)
		}
	}

	path, err := v.resolveFuzzy(ref)
	if err != nil {
		return nil, err
	}
	if n, ok := v.cache.get(path, v.now()); ok {
		return n, nil
	}
	return v.loadAndCache(path)
}

func (v *Vault) loadAndCache(path string) (*note.Note, error) {
	n, err := v.load(path)
	if err != nil {
		return nil, err
	}
	v.cache.put(n)
	return n, nil
}

// resolveFuzzy matches a reference against filename stems and full paths.
// Slugging both sides makes the match case- and punctuation-insensitive.
// Among several candidates the lexicographically first path wins.
func (v *Vault) resolveFuzzy(ref string) (string, error) {
	paths, err := v.fs.Scan()
	if err != nil {
		return "", err
	}

	wantStem := slugs.ComponentSlug(ref)
	wantPath := slugs.PathSlug(ref)

	var matches []string
	for _, path := range paths {
		stem := strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ".md")
		if stem == ref || slugs.ComponentSlug(stem) == wantStem || slugs.PathSlug(path) == wantPath {
			matches = append(matches, path)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", apperr.ErrNoteNotFound, ref)
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		v.logger.Warn("ambiguous note reference",
			slog.String("ref", ref), slog.Int("matches", len(matches)))
	}
	return matches[0], nil
}

// Refresh clears the cache and repopulates it from disk.
func (v *Vault) Refresh() error {
	v.cache.clear()
	_, err := v.loadAll()
	return err
}

// Stats aggregates file-level and note-level counts for the whole vault.
type Stats struct {
	Notes            int
	TotalBytes       int64
	LastModifiedPath string
	LastModifiedAt   time.Time

	Tasks        int
	PendingTasks int
	Tags         int
}

// Stats computes vault-wide statistics from a (possibly cached) full listing.
func (v *Vault) Stats() (Stats, error) {
	fileStats, err := v.fs.VaultStats()
	if err != nil {
		return Stats{}, err
	}
	notes, err := v.listAll()
	if err != nil {
		return Stats{}, err
	}

	out := Stats{
		Notes:            fileStats.NoteCount,
		TotalBytes:       fileStats.TotalBytes,
		LastModifiedPath: fileStats.LastModifiedPath,
		LastModifiedAt:   fileStats.LastModifiedAt,
	}
	tags := make(map[string]struct{})
	for _, n := range notes {
		out.Tasks += len(n.Tasks)
		out.PendingTasks += len(n.PendingTasks())
		for _, t := range n.Tags {
			tags[t] = struct{}{}
		}
	}
	out.Tags = len(tags)
	return out, nil
}

// titleFor prefers the metadata title, else the filename stem.
func titleFor(meta map[string]any, path string) string {
	if t, ok := meta["title"].(string); ok && strings.TrimSpace(t) != "" {
		return t
	}
	stem := path[strings.LastIndex(path, "/")+1:]
	return strings.TrimSuffix(stem, ".md")
}

// collectTags merges front-matter tags with inline #tags from the body.
func collectTags(meta map[string]any, body string) []string {
	tags := frontmatter.NormalizeTags(meta["tags"])
	inline := frontmatter.CleanTags(parser.ExtractInlineTags(body))

	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		seen[t] = struct{}{}
	}
	for _, t := range inline {
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}
