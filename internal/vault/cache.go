package vault

import (
	"sync"
	"time"

	"github.com/aidanlsb/quill/internal/note"
)

// noteCache holds the whole-vault note set keyed by path, valid for a fixed
// TTL after the last full population. Writes remove single keys; only
// Refresh clears everything.
type noteCache struct {
	ttl time.Duration

	mu          sync.Mutex
	entries     map[string]*note.Note
	populatedAt time.Time
}

func newNoteCache(ttl time.Duration) *noteCache {
	return &noteCache{
		ttl:     ttl,
		entries: make(map[string]*note.Note),
	}
}

// fresh reports whether a full population happened within the TTL. Callers
// must hold c.mu.
func (c *noteCache) fresh(now time.Time) bool {
	return !c.populatedAt.IsZero() && now.Sub(c.populatedAt) < c.ttl
}

// all returns every cached note when the cache is populated and fresh.
func (c *noteCache) all(now time.Time) ([]*note.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fresh(now) {
		return nil, false
	}
	out := make([]*note.Note, 0, len(c.entries))
	for _, n := range c.entries {
		out = append(out, n)
	}
	return out, true
}

// get returns the cached note for a path when the cache is fresh.
func (c *noteCache) get(path string, now time.Time) (*note.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fresh(now) {
		return nil, false
	}
	n, ok := c.entries[path]
	return n, ok
}

// populate replaces the entry set and stamps the population time.
func (c *noteCache) populate(notes []*note.Note, now time.Time) {
	entries := make(map[string]*note.Note, len(notes))
	for _, n := range notes {
		entries[n.Path] = n
	}
	c.mu.Lock()
	c.entries = entries
	c.populatedAt = now
	c.mu.Unlock()
}

// put inserts or replaces a single entry without touching the population
// timestamp: single loads do not make a stale cache whole-vault fresh.
func (c *noteCache) put(n *note.Note) {
	c.mu.Lock()
	c.entries[n.Path] = n
	c.mu.Unlock()
}

// invalidate drops one path after a write to it.
func (c *noteCache) invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// clear empties the cache and resets the population timestamp.
func (c *noteCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]*note.Note)
	c.populatedAt = time.Time{}
	c.mu.Unlock()
}
