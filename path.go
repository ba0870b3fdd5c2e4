package resman

import (
	"path/filepath"
	"strings"
)

// CanonicalPath converts p to the form used as a cache key.
//
// Both '/' and '\' are treated as separators and converted to the platform
// separator, and the result is cleaned:
//   - "sub\\b.txt" → "sub/b.txt" (on unix)
//   - "./a.txt" → "a.txt"
//   - "a//b/../c" → "a/c"
//
// The empty string is returned unchanged so that data stored under an empty
// path keeps its own key.
//
// '\' is a separator on every platform, so a unix file whose name contains
// a literal backslash cannot be addressed: "a\\b" is looked up, and read on a
// miss, as "a/b". Such a file is still packed under its real name, but its
// chunk is keyed as the nested path when loaded.
func CanonicalPath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return filepath.Separator
		}
		return r
	}, p)
	return filepath.Clean(p)
}
