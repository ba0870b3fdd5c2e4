package resman

import (
	"errors"

	"github.com/meigma/resman/internal/chunk"
)

// Sentinel errors. Returned errors wrap these; test with errors.Is.
var (
	// ErrNotFound is returned when a path is neither cached nor readable
	// from the fallback source.
	ErrNotFound = errors.New("resman: not found")

	// ErrIO is returned when the package file cannot be created, opened,
	// written or read, or a source file cannot be read while packing.
	ErrIO = errors.New("resman: i/o error")

	// ErrInvalidRoot is returned when the directory passed to Pack does not
	// exist or is not a directory.
	ErrInvalidRoot = errors.New("resman: invalid source directory")

	// ErrNoPackage is returned by Manager.Load when no package path is known.
	ErrNoPackage = errors.New("resman: no package path")

	// ErrTooManyFiles is returned when the file count exceeds the configured limit.
	ErrTooManyFiles = errors.New("resman: too many files")

	// ErrInvalidPath is returned when a path cannot be written to a package
	// because it contains a newline.
	ErrInvalidPath = chunk.ErrInvalidPath
)
