// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// WriteTree creates files under dir. Keys are slash-separated relative paths
// and values are file contents. Parent directories are created as needed.
func WriteTree(tb testing.TB, dir string, files map[string]string) {
	tb.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			tb.Fatalf("write %s: %v", name, err)
		}
	}
}

// CountingSource is an in-memory fallback source that records reads.
type CountingSource struct {
	mu    sync.Mutex
	files map[string][]byte
	reads map[string]int
}

// NewCountingSource returns a source serving files keyed by name.
func NewCountingSource(files map[string]string) *CountingSource {
	s := &CountingSource{
		files: make(map[string][]byte, len(files)),
		reads: make(map[string]int),
	}
	for name, content := range files {
		s.files[name] = []byte(content)
	}
	return s
}

// ReadFile returns a copy of the named file's content, or os.ErrNotExist.
func (s *CountingSource) ReadFile(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[name]++
	data, ok := s.files[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Remove deletes name from the source.
func (s *CountingSource) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
}

// Reads returns how many times name was requested.
func (s *CountingSource) Reads(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[name]
}
