package resman

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Source reads files that were not found among the loaded chunks.
type Source interface {
	// ReadFile returns the full content of the named file.
	ReadFile(name string) ([]byte, error)
}

// DiskSource reads from the live filesystem. Relative names resolve against
// the process working directory.
type DiskSource struct{}

// ReadFile implements Source.
func (DiskSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // reading caller-named files is the point of the fallback
}

// FSSource adapts an fs.FS to Source. Names are converted to slash form
// before being passed to the filesystem.
type FSSource struct {
	FS fs.FS
}

// ReadFile implements Source.
func (s FSSource) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(s.FS, filepath.ToSlash(name))
}

// Interface compliance.
var (
	_ Source = DiskSource{}
	_ Source = FSSource{}
)
