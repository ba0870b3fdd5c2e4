//go:build !unix

package platform

import "io/fs"

// OwnerExecutable always reports false on platforms without an owner-execute
// permission bit.
func OwnerExecutable(fs.FileInfo) bool {
	return false
}
