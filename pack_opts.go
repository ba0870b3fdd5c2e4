package resman

import (
	"log/slog"
	"slices"

	"github.com/meigma/resman/internal/write"
)

// DefaultPackageName is the package file written when no output is given.
// It is relative, so it lands in the working directory.
const DefaultPackageName = "package.res"

// DefaultMaxFiles is the default limit used when no MaxFiles option is set.
const DefaultMaxFiles = 200_000

// SkipFunc returns true when a file should be left out of a package.
// It receives the path relative to the packed directory.
// It is called once per regular file and should be inexpensive.
type SkipFunc = write.SkipFunc

// DefaultExcludedExtensions returns the extensions Pack leaves out unless
// PackWithExcludedExtensions says otherwise: .res, .cpp, .hpp, .h and .exe.
func DefaultExcludedExtensions() []string {
	return slices.Clone(write.DefaultExcludedExtensions)
}

// packConfig holds configuration for packing.
type packConfig struct {
	output      string
	excluded    []string
	excludedSet bool
	skip        []SkipFunc
	maxFiles    int
	progress    ProgressFunc
	logger      *slog.Logger
	onCreate    func(path string)
}

// PackOption configures Pack.
type PackOption func(*packConfig)

// PackWithOutput sets the package file to write.
// Defaults to DefaultPackageName.
func PackWithOutput(path string) PackOption {
	return func(cfg *packConfig) {
		cfg.output = path
	}
}

// PackWithExcludedExtensions replaces the excluded extension set.
// Matching is exact and case-sensitive (".exe" does not match ".EXE").
// Calling it with no arguments packs every extension.
func PackWithExcludedExtensions(exts ...string) PackOption {
	return func(cfg *packConfig) {
		cfg.excluded = slices.Clone(exts)
		cfg.excludedSet = true
	}
}

// PackWithSkip adds predicates that leave matching files out of the package.
// If any predicate returns true, the file is skipped.
func PackWithSkip(fns ...SkipFunc) PackOption {
	return func(cfg *packConfig) {
		cfg.skip = append(cfg.skip, fns...)
	}
}

// PackWithMaxFiles limits the number of files included in the package.
// Zero uses DefaultMaxFiles. Negative means no limit.
func PackWithMaxFiles(n int) PackOption {
	return func(cfg *packConfig) {
		cfg.maxFiles = n
	}
}

// PackWithProgress sets a callback for progress updates.
func PackWithProgress(fn ProgressFunc) PackOption {
	return func(cfg *packConfig) {
		cfg.progress = fn
	}
}

// PackWithLogger sets a logger for packing diagnostics.
// A nil logger discards output.
func PackWithLogger(l *slog.Logger) PackOption {
	return func(cfg *packConfig) {
		cfg.logger = l
	}
}

// packWithCreateHook runs fn once the output file has been created.
func packWithCreateHook(fn func(path string)) PackOption {
	return func(cfg *packConfig) {
		cfg.onCreate = fn
	}
}
