// Package resman bundles a directory tree into one flat package file and
// serves individual files back by their original path.
//
// A package is a header-less run of chunks, each a "%PATH" marker, the
// file's path, a newline and the raw file content. There is no index and no
// length prefix: a chunk's content ends where the next marker begins. Content
// that itself contains the bytes "%PATH" is therefore split in two when the
// package is loaded. This is a limitation of the format, not something the
// reader can detect.
//
// # Usage
//
//	m := resman.New()
//	if _, err := m.Pack(ctx, "./assets"); err != nil {
//	    return err
//	}
//	if err := m.Load(); err != nil {
//	    return err
//	}
//	res, err := m.Lookup("textures/grass.png")
//
// # Lookups
//
// [Cache.Lookup] serves from memory first. On a miss it reads the path from
// its [Source] (the live filesystem by default) and keeps the result, so a
// later change or removal on disk does not affect what the cache returns.
//
// Insertion is first-write-wins: once a path is cached, later chunks or disk
// reads for the same path are dropped without notice. A package containing
// the same path twice therefore serves the first copy, and callers cannot
// tell whether a dropped copy differed.
//
// Neither [Cache] nor [Manager] is safe for concurrent use. Using one from
// multiple goroutines without external locking is undefined.
package resman
