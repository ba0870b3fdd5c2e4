package resman

import (
	"fmt"
	"io"

	"github.com/meigma/resman/internal/chunk"
)

// LoadStats summarizes one Load pass.
type LoadStats struct {
	// Chunks is the number of chunks read from the package.
	Chunks int

	// Inserted is the number of chunks stored in the cache.
	Inserted int

	// Duplicates is the number of chunks dropped because their path was
	// already cached.
	Duplicates int

	// Bytes is the total content size of all chunks read.
	Bytes uint64
}

// LoadOption configures a Load pass.
type LoadOption func(*loadConfig)

type loadConfig struct {
	progress ProgressFunc
}

// LoadWithProgress sets a callback invoked once per chunk read.
func LoadWithProgress(fn ProgressFunc) LoadOption {
	return func(cfg *loadConfig) {
		cfg.progress = fn
	}
}

// Load reads every chunk from r in one forward pass and inserts each into
// the cache.
//
// Insertion is first-write-wins, so a path that appears more than once keeps
// its first chunk, as does a path already cached before Load was called.
// The final chunk is always inserted, including the degenerate one produced
// by an empty or marker-less package, whose path is empty.
//
// Load does not detect malformed packages; they yield wrong chunk
// boundaries rather than an error. A read failure stops the pass and returns
// an error wrapping ErrIO. Chunks inserted before the failure stay cached.
func (c *Cache) Load(r io.Reader, opts ...LoadOption) (LoadStats, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var stats LoadStats
	s := chunk.NewScanner(r)
	for s.Scan() {
		ch := s.Chunk()
		stats.Chunks++
		stats.Bytes += uint64(len(ch.Data))
		if c.Insert(NewResource(ch.Path, ch.Data)) {
			stats.Inserted++
		} else {
			stats.Duplicates++
		}
		if cfg.progress != nil {
			cfg.progress(ProgressEvent{
				Stage:     StageLoading,
				Path:      ch.Path,
				BytesDone: stats.Bytes,
				FilesDone: stats.Chunks,
			})
		}
	}
	if err := s.Err(); err != nil {
		return stats, fmt.Errorf("%w: read package: %w", ErrIO, err)
	}

	c.log().Debug("package loaded",
		"chunks", stats.Chunks,
		"inserted", stats.Inserted,
		"duplicates", stats.Duplicates,
		"bytes", stats.Bytes,
	)
	return stats, nil
}
