package resman

import (
	_ "crypto/sha256" // digest.Canonical

	"github.com/opencontainers/go-digest"
)

// noCopy lets go vet's copylocks check flag a Resource copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Resource is a file recovered from a package or read from disk.
//
// A Resource owns its buffer. Resources are handled through pointers and must
// not be copied by value; use Clone for an independent copy and Move to hand
// the buffer to a new owner. The buffer is never modified after construction.
type Resource struct {
	_ noCopy

	path string
	data []byte
}

// NewResource returns a Resource that takes ownership of data. The caller
// must not use data afterwards.
func NewResource(path string, data []byte) *Resource {
	return &Resource{path: path, data: data}
}

// Path returns the path the resource was stored under.
func (r *Resource) Path() string {
	return r.path
}

// Size returns the content length in bytes.
func (r *Resource) Size() uint64 {
	return uint64(len(r.data))
}

// Bytes returns the content. The returned slice is a view into the
// resource's buffer and must not be modified.
func (r *Resource) Bytes() []byte {
	return r.data
}

// String returns the content as a string.
func (r *Resource) String() string {
	return string(r.data)
}

// Digest returns the sha256 digest of the content.
func (r *Resource) Digest() digest.Digest {
	return digest.FromBytes(r.data)
}

// IsEmpty reports whether r is the empty resource: no path and no buffer.
func (r *Resource) IsEmpty() bool {
	return r.path == "" && r.data == nil
}

// Clone returns a deep copy of r with its own buffer.
func (r *Resource) Clone() *Resource {
	var data []byte
	if r.data != nil {
		data = make([]byte, len(r.data))
		copy(data, r.data)
	}
	return NewResource(r.path, data)
}

// Move transfers r's path and buffer to a new Resource and resets r to the
// empty resource.
func (r *Resource) Move() *Resource {
	moved := NewResource(r.path, r.data)
	r.path = ""
	r.data = nil
	return moved
}
