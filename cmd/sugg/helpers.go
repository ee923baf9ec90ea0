package main

import (
	"context"
	"fmt"

	"github.com/okessler/sugg/internal/cache"
	"github.com/okessler/sugg/internal/log"
	"github.com/okessler/sugg/internal/query"
	"github.com/okessler/sugg/internal/suggest"
)

// newSource picks the suggestion backend: Datamuse by default, the
// configured (or built-in) word list with --offline.
func newSource(ctx context.Context, offline bool) (suggest.Source, error) {
	if offline {
		if cfg.Dict.Path != "" {
			d, err := suggest.LoadDictFile(cfg.Dict.Path)
			if err != nil {
				return nil, fmt.Errorf("load word list: %w", err)
			}
			log.FromContext(ctx).Debug("loaded word list", "path", cfg.Dict.Path, "words", d.Len())
			return d, nil
		}
		return suggest.EmbeddedDict(), nil
	}
	return suggest.NewDatamuse(cfg.Endpoint, cfg.Timeout()), nil
}

// newRunner wires a source with the in-memory cache and, when enabled,
// the on-disk one. Callers should defer runner.Flush().
func newRunner(source suggest.Source, useCache bool) (*query.Runner, error) {
	if !useCache {
		return query.NewRunner(source), nil
	}

	// An empty path selects the default cache location.
	disk, err := cache.Load(cfg.Cache.Path, cfg.Cache.TTL())
	if err != nil {
		return nil, fmt.Errorf("load suggestion cache: %w", err)
	}
	return query.NewRunner(source, query.WithDiskCache(disk)), nil
}
