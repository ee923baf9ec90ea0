package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okessler/sugg/internal/suggest"
)

// DefaultTTL is the maximum age of a cached suggestion list before it
// is considered stale.
const DefaultTTL = 24 * time.Hour

// Entry is one cached suggestion list.
type Entry struct {
	Words    []suggest.Word `json:"words"`
	CachedAt time.Time      `json:"cached_at"`
}

// stale reports whether the entry is older than ttl.
func (e Entry) stale(ttl time.Duration) bool {
	if e.CachedAt.IsZero() {
		return true
	}
	return time.Since(e.CachedAt) > ttl
}

// Cache stores suggestion lists keyed by query term.
// Safe for concurrent use.
type Cache struct {
	path string
	ttl  time.Duration

	mu      sync.Mutex
	entries map[string]Entry
}

// DefaultPath returns the default cache file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "sugg", "suggestions.json")
}

// Load reads the cache from disk. A missing file yields an empty cache;
// a corrupted file is discarded and the cache starts fresh. A zero ttl
// selects DefaultTTL.
func Load(path string, ttl time.Duration) (*Cache, error) {
	if path == "" {
		path = DefaultPath()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{path: path, ttl: ttl, entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupted - start fresh
		return c, nil
	}
	if entries != nil {
		c.entries = entries
	}
	return c, nil
}

// Path returns the cache file location.
func (c *Cache) Path() string { return c.path }

// Get returns the cached words for a term, or false if the term is not
// cached or the entry is stale.
func (c *Cache) Get(term string) ([]suggest.Word, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[term]
	if !ok || entry.stale(c.ttl) {
		return nil, false
	}
	return entry.Words, true
}

// Set stores the words for a term.
func (c *Cache) Set(term string, words []suggest.Word) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[term] = Entry{Words: words, CachedAt: time.Now()}
}

// Len returns the number of cached terms, including stale ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset clears all cached entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

// Save writes the cache to disk atomically, dropping stale entries so
// the file does not grow without bound.
func (c *Cache) Save() error {
	c.mu.Lock()
	fresh := make(map[string]Entry, len(c.entries))
	for term, entry := range c.entries {
		if !entry.stale(c.ttl) {
			fresh[term] = entry
		}
	}
	c.entries = fresh
	data, err := json.MarshalIndent(fresh, "", "  ")
	c.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}

	tempPath := c.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tempPath, c.path)
}
