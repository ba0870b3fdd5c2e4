//go:build unix

package platform

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/unix"
)

// OwnerExecutable reports whether the owner-execute permission bit is set.
// It prefers the raw stat mode and falls back to the portable permission bits.
func OwnerExecutable(info fs.FileInfo) bool {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint32(stat.Mode)&unix.S_IXUSR != 0 //nolint:unconvert // Mode width differs across unix GOOS
	}
	return info.Mode().Perm()&0o100 != 0
}
