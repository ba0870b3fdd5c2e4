package write

import (
	"io/fs"
	"os"
)

// ResolveEntryInfo gets FileInfo for a walked entry, filtering out symlinks
// and non-regular files. Returns (info, ok, error) where ok=false means the
// entry should be skipped.
//
// The returned info comes from Lstat so that permission bits are always
// available to the caller's filters.
func ResolveEntryInfo(root *os.Root, fsPath string, d fs.DirEntry) (fs.FileInfo, bool, error) {
	dtype := d.Type()
	if dtype&fs.ModeSymlink != 0 {
		return nil, false, nil
	}
	if dtype != 0 && !dtype.IsRegular() {
		return nil, false, nil
	}

	info, err := root.Lstat(fsPath)
	if err != nil {
		return nil, false, err
	}
	if !info.Mode().IsRegular() {
		return nil, false, nil
	}
	return info, true, nil
}
