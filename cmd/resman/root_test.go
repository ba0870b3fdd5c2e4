package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/resman/internal/testutil"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func packFixture(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
		"skip.cpp":  "int main() {}",
	})
	pkg := filepath.Join(t.TempDir(), "test.res")

	out, err := run(t, "pack", src, "-p", pkg)
	require.NoError(t, err)
	assert.Contains(t, out, "packed 2 files")
	assert.Contains(t, out, pkg)
	return pkg
}

func TestPackAndList(t *testing.T) {
	t.Parallel()

	pkg := packFixture(t)
	out, err := run(t, "ls", "-p", pkg)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n"+filepath.FromSlash("sub/b.txt")+"\n", out)
}

func TestListLong(t *testing.T) {
	t.Parallel()

	pkg := packFixture(t)
	out, err := run(t, "ls", "-l", "-p", pkg)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "PATH"))
	assert.Contains(t, lines[1], "a.txt")
	assert.Contains(t, lines[1], "5 B")
	assert.Contains(t, lines[1], "sha256:")
}

func TestListEmptyPackage(t *testing.T) {
	t.Parallel()

	pkg := filepath.Join(t.TempDir(), "empty.res")
	_, err := run(t, "pack", t.TempDir(), "-p", pkg)
	require.NoError(t, err)

	out, err := run(t, "ls", "-p", pkg)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "ls", "-l", "-p", pkg)
	require.NoError(t, err)
	assert.Equal(t, []string{"PATH  SIZE  DIGEST"}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestCat(t *testing.T) {
	t.Parallel()

	pkg := packFixture(t)
	out, err := run(t, "cat", "-p", pkg, "a.txt", "sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "helloworld", out)
}

func TestCatMissing(t *testing.T) {
	t.Parallel()

	pkg := packFixture(t)
	_, err := run(t, "cat", "-p", pkg, filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPackExcludeFlag(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"a.txt": "a",
		"b.cpp": "b",
		"c.md":  "c",
	})
	pkg := filepath.Join(t.TempDir(), "test.res")

	_, err := run(t, "pack", src, "-p", pkg, "--exclude", ".md")
	require.NoError(t, err)

	out, err := run(t, "ls", "-p", pkg)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nb.cpp\n", out)
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	pkg := packFixture(t)
	cfg := filepath.Join(t.TempDir(), "resman.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("package: "+pkg+"\n"), 0o644))

	out, err := run(t, "cat", "--config", cfg, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestBadConfigFile(t *testing.T) {
	t.Parallel()

	_, err := run(t, "ls", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadMissingPackage(t *testing.T) {
	t.Parallel()

	_, err := run(t, "ls", "-p", filepath.Join(t.TempDir(), "absent.res"))
	require.Error(t, err)
}

func TestPackRequiresDir(t *testing.T) {
	t.Parallel()

	_, err := run(t, "pack")
	require.Error(t, err)
}
