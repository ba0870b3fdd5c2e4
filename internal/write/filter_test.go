package write

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcludeExtensions(t *testing.T) {
	skip := ExcludeExtensions(DefaultExcludedExtensions...)
	tests := []struct {
		path string
		want bool
	}{
		{"a.txt", false},
		{"package.res", true},
		{"src/main.cpp", true},
		{"include/x.hpp", true},
		{"include/x.h", true},
		{"bin/tool.exe", true},
		{"bin/TOOL.EXE", false},
		{"notes.h.txt", false},
		{"Makefile", false},
		{"archive.tar.res", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, skip(tt.path, nil))
		})
	}
}

func TestShouldSkip(t *testing.T) {
	never := func(string, fs.FileInfo) bool { return false }
	always := func(string, fs.FileInfo) bool { return true }

	assert.False(t, ShouldSkip("a", nil, nil))
	assert.False(t, ShouldSkip("a", nil, []SkipFunc{nil, never}))
	assert.True(t, ShouldSkip("a", nil, []SkipFunc{never, always}))
}
