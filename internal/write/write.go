// Package write holds the per-file helpers used while packing a directory.
package write

import (
	"context"
	_ "crypto/sha256" // digest.Canonical
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/resman/internal/chunk"
)

// File streams one file into w as a single chunk named path, digesting the
// content on the way through. Returns (size, digest, error).
//
// expectedSize is the size reported by Stat before the copy. At most that
// many bytes are copied, and a file that shrank in the meantime is reported
// as an error.
func File(ctx context.Context, f *os.File, w *chunk.Writer, path string, expectedSize int64) (uint64, digest.Digest, error) {
	if expectedSize < 0 {
		return 0, "", errors.New("negative file size")
	}

	digester := digest.Canonical.Digester()
	src := io.TeeReader(io.LimitReader(f, expectedSize), digester.Hash())
	n, err := w.WriteChunk(ctx, path, src)
	if err != nil {
		return n, "", err
	}
	if n != uint64(expectedSize) {
		return n, "", fmt.Errorf("file size changed during packing: expected %d, got %d", expectedSize, n)
	}
	return n, digester.Digest(), nil
}
