package write

import (
	"io/fs"
	"path/filepath"
	"slices"
)

// SkipFunc returns true when a file should be left out of a package.
// It is called once per regular file and should be inexpensive.
type SkipFunc func(path string, info fs.FileInfo) bool

// DefaultExcludedExtensions lists the extensions never packed by default.
// The package's own extension is among them so that a package written inside
// its source tree is not packed into the next one.
var DefaultExcludedExtensions = []string{".res", ".cpp", ".hpp", ".h", ".exe"}

// ExcludeExtensions returns a SkipFunc matching files whose extension is in
// exts. Matching is exact and case-sensitive.
func ExcludeExtensions(exts ...string) SkipFunc {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[ext] = struct{}{}
	}
	return func(path string, _ fs.FileInfo) bool {
		_, ok := set[filepath.Ext(path)]
		return ok
	}
}

// ShouldSkip checks if any predicate returns true for the given file.
func ShouldSkip(path string, info fs.FileInfo, predicates []SkipFunc) bool {
	return slices.ContainsFunc(predicates, func(fn SkipFunc) bool {
		return fn != nil && fn(path, info)
	})
}
