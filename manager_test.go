package resman

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/resman/internal/testutil"
)

// packAndLoad packs files into a fresh package and loads it into a new
// Manager configured with opts.
func packAndLoad(t *testing.T, files map[string]string, opts ...Option) *Manager {
	t.Helper()
	src := t.TempDir()
	testutil.WriteTree(t, src, files)

	opts = append([]Option{WithPackagePath(filepath.Join(t.TempDir(), DefaultPackageName))}, opts...)
	m := New(opts...)
	_, err := m.Pack(context.Background(), src)
	require.NoError(t, err)
	require.NoError(t, m.Load())
	return m
}

func TestManagerRoundTrip(t *testing.T) {
	t.Parallel()

	m := packAndLoad(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
	})

	a, err := m.Lookup("a.txt")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), a.Size())
	assert.Equal(t, "hello", a.String())

	b, err := m.Lookup("sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), b.Size())
	assert.Equal(t, "world", b.String())
}

func TestManagerExcludedFilesNotFound(t *testing.T) {
	t.Parallel()

	m := packAndLoad(t, map[string]string{
		"keep.txt": "kept",
		"skip.exe": "binary",
		"skip.cpp": "source",
	})

	for _, p := range []string{"skip.exe", "skip.cpp"} {
		_, err := m.Lookup(p)
		require.ErrorIs(t, err, ErrNotFound, p)
	}
	_, err := m.Lookup("keep.txt")
	require.NoError(t, err)
}

func TestManagerIdempotentFallback(t *testing.T) {
	t.Parallel()

	src := testutil.NewCountingSource(map[string]string{
		filepath.FromSlash("live/p.txt"): "from disk",
	})
	m := packAndLoad(t, map[string]string{"a.txt": "hello"}, WithSource(src))

	first, err := m.Lookup("live/p.txt")
	require.NoError(t, err)
	second, err := m.Lookup("live/p.txt")
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Equal(t, "from disk", second.String())
	assert.Equal(t, 1, src.Reads(filepath.FromSlash("live/p.txt")))

	// Packaged paths never reach the source.
	_, err = m.Lookup("a.txt")
	require.NoError(t, err)
	assert.Zero(t, src.Reads("a.txt"))
}

func TestManagerFallbackSurvivesDeletion(t *testing.T) {
	t.Parallel()

	m := packAndLoad(t, map[string]string{"a.txt": "hello"})

	path := filepath.Join(t.TempDir(), "p.txt")
	require.NoError(t, os.WriteFile(path, []byte("cached copy"), 0o644))

	first, err := m.Lookup(path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	second, err := m.Lookup(path)
	require.NoError(t, err)
	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Equal(t, "cached copy", second.String())
}

func TestManagerNegativeLookup(t *testing.T) {
	t.Parallel()

	m := packAndLoad(t, map[string]string{"a.txt": "hello"})

	r, err := m.Lookup("does/not/exist")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, r)
}

func TestManagerEmbeddedMarkerSplitsFile(t *testing.T) {
	t.Parallel()

	// The format cannot represent "%PATH" inside content: the embedded
	// marker starts a new chunk and truncates the real file.
	m := packAndLoad(t, map[string]string{
		"note.txt": "before%PATHinside\nafter",
	}, WithSource(nil))

	note, err := m.Lookup("note.txt")
	require.NoError(t, err)
	assert.Equal(t, "before", note.String())
	assert.Equal(t, uint64(6), note.Size())

	bogus, err := m.Lookup("inside")
	require.NoError(t, err)
	assert.Equal(t, "after", bogus.String())
}

func TestManagerDuplicateChunksKeepFirst(t *testing.T) {
	t.Parallel()

	pkg := filepath.Join(t.TempDir(), "dup.res")
	require.NoError(t, os.WriteFile(pkg, []byte("%PATHa.txt\nfirst%PATHa.txt\nsecond"), 0o644))

	m := New(WithSource(nil))
	m.SetPackagePath(pkg)
	stats, err := m.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Duplicates)

	got, err := m.Lookup("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "first", got.String())
}

func TestManagerLoadWithoutPackage(t *testing.T) {
	t.Parallel()

	m := New()
	assert.Empty(t, m.PackagePath())
	require.ErrorIs(t, m.Load(), ErrNoPackage)
}

func TestManagerLoadMissingFile(t *testing.T) {
	t.Parallel()

	m := New(WithPackagePath(filepath.Join(t.TempDir(), "absent.res")))
	require.ErrorIs(t, m.Load(), ErrIO)
}

func TestManagerPackRecordsOutput(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{"a.txt": "hello"})
	def := filepath.Join(t.TempDir(), "default.res")
	other := filepath.Join(t.TempDir(), "other.res")

	m := New(WithPackagePath(def))
	res, err := m.Pack(context.Background(), src, PackWithOutput(other))
	require.NoError(t, err)
	assert.Equal(t, other, res.Output)
	assert.Equal(t, other, m.PackagePath())

	_, statErr := os.Stat(def)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestManagerFailedPackKeepsPreviousPath(t *testing.T) {
	t.Parallel()

	prev := filepath.Join(t.TempDir(), "prev.res")
	m := New(WithPackagePath(prev))

	_, err := m.Pack(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, ErrInvalidRoot)
	assert.Equal(t, prev, m.PackagePath())
}

func TestManagerExcludedExtensionsOption(t *testing.T) {
	t.Parallel()

	m := packAndLoad(t, map[string]string{
		"a.txt":  "text",
		"b.cpp":  "source",
		"c.json": "{}",
	}, WithExcludedExtensions(".json"), WithSource(nil))

	assert.Equal(t, []string{"a.txt", "b.cpp"}, m.Cache().Paths())
}

func TestManagersAreIndependent(t *testing.T) {
	t.Parallel()

	m1 := packAndLoad(t, map[string]string{"a.txt": "one"}, WithSource(nil))
	m2 := New(WithSource(nil))

	_, err := m1.Lookup("a.txt")
	require.NoError(t, err)
	_, err = m2.Lookup("a.txt")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, m2.Cache().Len())
}
