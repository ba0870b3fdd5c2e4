package resman

import (
	"log/slog"
	"slices"
)

// Option configures a Manager.
type Option func(*Manager)

// WithPackagePath sets the package file used by Pack when no output is given,
// and by Load until a Pack records another one. Defaults to DefaultPackageName.
func WithPackagePath(path string) Option {
	return func(m *Manager) {
		m.defaultOutput = path
		m.packagePath = path
	}
}

// WithSource sets where lookup misses are read from. Defaults to DiskSource.
func WithSource(src Source) Option {
	return func(m *Manager) {
		m.cacheOpts = append(m.cacheOpts, CacheWithSource(src))
	}
}

// WithExcludedExtensions replaces the extension set excluded by Pack.
func WithExcludedExtensions(exts ...string) Option {
	return func(m *Manager) {
		m.packOpts = append(m.packOpts, PackWithExcludedExtensions(slices.Clone(exts)...))
	}
}

// WithLogger sets the logger for the manager, its cache and its packs.
// A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}
