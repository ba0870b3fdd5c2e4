package resman

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Manager ties a package file to the cache that serves its contents.
//
// The expected order is Pack, then Load, then Lookup: Pack records the
// package it wrote and Load reads whichever package was recorded last.
// A Manager is not safe for concurrent use. Separate Managers share no state.
type Manager struct {
	cache         *Cache
	cacheOpts     []CacheOption
	packOpts      []PackOption
	defaultOutput string
	packagePath   string
	logger        *slog.Logger
}

// New creates a Manager with an empty cache.
//
// No package path is recorded unless WithPackagePath is given, so Load fails
// with ErrNoPackage until Pack succeeds in creating a package file or
// SetPackagePath is called.
func New(opts ...Option) *Manager {
	m := &Manager{defaultOutput: DefaultPackageName}
	for _, opt := range opts {
		opt(m)
	}
	cacheOpts := append([]CacheOption{CacheWithLogger(m.logger)}, m.cacheOpts...)
	m.cache = NewCache(cacheOpts...)
	return m
}

// log returns the logger, falling back to a discard logger if nil.
func (m *Manager) log() *slog.Logger {
	if m.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.logger
}

// Pack packs dir into a package file and records that file for Load.
//
// The output defaults to the manager's package path (see WithPackagePath);
// PackWithOutput overrides it for this call. The output is recorded as soon
// as it has been created, so a pack that fails midway still leaves Load
// pointing at the partial file.
func (m *Manager) Pack(ctx context.Context, dir string, opts ...PackOption) (*PackResult, error) {
	all := make([]PackOption, 0, len(m.packOpts)+len(opts)+3)
	all = append(all, PackWithOutput(m.defaultOutput), PackWithLogger(m.logger))
	all = append(all, m.packOpts...)
	all = append(all, opts...)
	all = append(all, packWithCreateHook(func(path string) {
		m.packagePath = path
	}))
	return Pack(ctx, dir, all...)
}

// Load reads the recorded package file into the cache.
//
// It fails with ErrNoPackage when no package path is known, and with an
// error wrapping ErrIO when the file cannot be opened or read. Entries
// already cached, including disk-fallback entries, are kept: chunks for
// those paths are dropped.
func (m *Manager) Load(opts ...LoadOption) error {
	_, err := m.LoadStats(opts...)
	return err
}

// LoadStats is Load, also returning a summary of the pass.
func (m *Manager) LoadStats(opts ...LoadOption) (LoadStats, error) {
	if m.packagePath == "" {
		return LoadStats{}, ErrNoPackage
	}
	f, err := os.Open(m.packagePath)
	if err != nil {
		return LoadStats{}, fmt.Errorf("%w: open package: %w", ErrIO, err)
	}
	defer f.Close()

	m.log().Info("loading package", "path", m.packagePath)
	return m.cache.Load(f, opts...)
}

// Lookup returns the resource for path, reading it from disk on a miss.
// See Cache.Lookup.
func (m *Manager) Lookup(path string) (*Resource, error) {
	return m.cache.Lookup(path)
}

// PackagePath returns the package file Load will read, or "" if none.
func (m *Manager) PackagePath() string {
	return m.packagePath
}

// SetPackagePath sets the package file Load will read.
func (m *Manager) SetPackagePath(path string) {
	m.packagePath = path
}

// Cache returns the manager's cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}
