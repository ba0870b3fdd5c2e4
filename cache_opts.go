package resman

import "log/slog"

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// CacheWithSource sets where lookup misses are read from.
// The default is DiskSource. A nil source disables the fallback.
func CacheWithSource(src Source) CacheOption {
	return func(c *Cache) {
		c.source = src
	}
}

// CacheWithLogger sets the logger used for cache diagnostics.
// A nil logger discards output.
func CacheWithLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = l
	}
}
