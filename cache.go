package resman

import (
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Cache maps canonical paths to the resources it owns.
//
// Entries arrive from package loads (see Load) or from the fallback Source
// on a lookup miss. Once a path is present it is never replaced: Insert is
// first-write-wins. Entries are only released by Clear.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	entries map[string]*Resource
	source  Source
	logger  *slog.Logger
}

// NewCache returns an empty cache that falls back to DiskSource on misses
// unless configured otherwise.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*Resource),
		source:  DiskSource{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Cache) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Lookup returns the resource stored under path.
//
// The path is canonicalized first. A cached entry is returned without any
// I/O. Otherwise the file is read from the fallback Source, cached, and
// returned; later lookups for the same path never read it again. If the read
// fails the error wraps ErrNotFound.
//
// The returned resource stays owned by the cache and is valid until Clear.
func (c *Cache) Lookup(path string) (*Resource, error) {
	key := CanonicalPath(path)
	if r, ok := c.entries[key]; ok {
		return r, nil
	}
	if c.source == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := c.source.ReadFile(key)
	if err != nil {
		c.log().Debug("fallback read failed", "path", key, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	c.log().Debug("fallback read", "path", key, "size", len(data))

	r := NewResource(key, data)
	c.Insert(r)
	return c.entries[key], nil
}

// Insert stores r under its canonical path and reports whether it did.
//
// If the path is new, the cache takes r's buffer via Move and r is left
// empty. If the path is already present the cache is unchanged, r is left
// untouched, and Insert returns false. The caller cannot tell whether the
// dropped resource matched the cached one.
func (c *Cache) Insert(r *Resource) bool {
	key := CanonicalPath(r.Path())
	if _, ok := c.entries[key]; ok {
		c.log().Debug("duplicate path ignored", "path", key)
		return false
	}
	moved := r.Move()
	if moved.path != key {
		moved = NewResource(key, moved.data)
	}
	c.entries[key] = moved
	return true
}

// Contains reports whether path is cached. It performs no I/O.
func (c *Cache) Contains(path string) bool {
	_, ok := c.entries[CanonicalPath(path)]
	return ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Paths returns the cached paths in sorted order.
func (c *Cache) Paths() []string {
	return slices.Sorted(maps.Keys(c.entries))
}

// All returns an iterator over cached entries in sorted path order.
func (c *Cache) All() iter.Seq2[string, *Resource] {
	return func(yield func(string, *Resource) bool) {
		for _, p := range c.Paths() {
			if !yield(p, c.entries[p]) {
				return
			}
		}
	}
}

// Clear releases every entry. Resources previously returned by Lookup must
// not be used afterwards.
func (c *Cache) Clear() {
	clear(c.entries)
}
