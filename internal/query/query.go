// Package query is the fetch pipeline between the UI and a suggestion
// source.
//
// A Runner caches results by query term (in memory, optionally on
// disk), de-duplicates concurrent lookups for the same term, and
// coalesces disk writes. Stale-response handling is split with the UI:
// the picker keeps the previous list on screen while a newer term is in
// flight and drops responses for superseded terms by generation.
package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okessler/sugg/internal/cache"
	"github.com/okessler/sugg/internal/debounce"
	"github.com/okessler/sugg/internal/log"
	"github.com/okessler/sugg/internal/suggest"
)

// DefaultSaveDelay coalesces disk-cache writes during rapid typing.
const DefaultSaveDelay = 2 * time.Second

// Runner answers suggestion lookups through a source, caching and
// de-duplicating as it goes. Safe for concurrent use.
type Runner struct {
	source suggest.Source
	group  singleflight.Group

	mu  sync.Mutex
	mem map[string][]suggest.Word

	disk  *cache.Cache
	saver *debounce.Debouncer
}

// Option configures a Runner.
type Option func(*Runner)

// WithDiskCache mirrors results to a persistent cache. Writes are
// debounced; call Flush before exit to persist the last ones.
func WithDiskCache(c *cache.Cache) Option {
	return func(r *Runner) { r.disk = c }
}

// WithSaveDelay overrides the disk-write debounce window.
func WithSaveDelay(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.saver = debounce.New(d, r.saveDisk)
		}
	}
}

// NewRunner creates a Runner over the given source.
func NewRunner(source suggest.Source, opts ...Option) *Runner {
	r := &Runner{
		source: source,
		mem:    make(map[string][]suggest.Word),
	}
	r.saver = debounce.New(DefaultSaveDelay, r.saveDisk)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Source returns the underlying suggestion source.
func (r *Runner) Source() suggest.Source { return r.source }

// key folds the limit into the cache key so a narrower lookup never
// serves a wider one.
func key(term string, limit int) string {
	return term + "\x00" + strconv.Itoa(limit)
}

// Lookup returns suggestions for term. Repeated lookups are served from
// memory, then from the disk cache if fresh, then from the source; at
// most one upstream request per term is in flight at a time.
func (r *Runner) Lookup(ctx context.Context, term string, limit int) ([]suggest.Word, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	k := key(term, limit)

	r.mu.Lock()
	if words, ok := r.mem[k]; ok {
		r.mu.Unlock()
		return words, nil
	}
	r.mu.Unlock()

	if r.disk != nil {
		if words, ok := r.disk.Get(k); ok {
			log.FromContext(ctx).Debug("suggestion cache hit", "term", term)
			r.mu.Lock()
			r.mem[k] = words
			r.mu.Unlock()
			return words, nil
		}
	}

	v, err, _ := r.group.Do(k, func() (any, error) {
		words, err := r.source.Suggest(ctx, term, limit)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.mem[k] = words
		r.mu.Unlock()

		if r.disk != nil {
			r.disk.Set(k, words)
			r.saver.Trigger()
		}
		return words, nil
	})
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", term, err)
	}
	return v.([]suggest.Word), nil
}

// saveDisk persists the disk cache under its file lock. Runs on a timer
// goroutine; errors here are not actionable and are dropped.
func (r *Runner) saveDisk() {
	if r.disk == nil {
		return
	}
	l := cache.NewLock(cache.LockPath(r.disk.Path()))
	if err := l.Acquire(); err != nil {
		return
	}
	defer l.Release()
	_ = r.disk.Save()
}

// Flush writes any pending disk-cache save immediately.
func (r *Runner) Flush() {
	if r.saver != nil {
		r.saver.Flush()
	}
}
