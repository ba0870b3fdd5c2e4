//go:build unix

package platform

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// ErrSymlink is returned when attempting to open a symbolic link.
var ErrSymlink = errors.New("symbolic links not supported")

// OpenFileNoFollow opens a file under root without following symlinks.
// Returns ErrSymlink if the final path element is a symbolic link, or if
// the entry was replaced between the Lstat and the open.
//
// os.Root resolves links that stay inside the root even with O_NOFOLLOW,
// so the link check is made on the Lstat result.
func OpenFileNoFollow(root *os.Root, name string) (*os.File, error) {
	before, err := root.Lstat(name)
	if err != nil {
		return nil, err
	}
	if before.Mode()&fs.ModeSymlink != 0 {
		return nil, ErrSymlink
	}

	f, err := root.OpenFile(name, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if errors.Is(err, syscall.ELOOP) {
			return nil, ErrSymlink
		}
		return nil, err
	}
	after, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !os.SameFile(before, after) {
		f.Close()
		return nil, ErrSymlink
	}
	return f, nil
}
