// Package chunk implements the flat package wire format.
//
// A package is a header-less sequence of chunks:
//
//	package := chunk*
//	chunk   := "%PATH" path-bytes "\n" content-bytes
//
// Content carries no length prefix and no trailer. It runs until the next
// occurrence of Marker or the end of the stream. The format has no escaping,
// so content that happens to contain the bytes of Marker is split into two
// chunks when read back. Writers cannot prevent this and readers cannot
// detect it.
package chunk

import "errors"

// Marker introduces every chunk.
const Marker = "%PATH"

// PathTerminator ends the path run that follows Marker.
const PathTerminator = '\n'

// Marker split into the byte searched for and the tag peeked after it.
const (
	markerLead byte = '%'
	markerTag       = "PATH"
)

// ErrInvalidPath is returned when a path cannot be encoded because it
// contains PathTerminator.
var ErrInvalidPath = errors.New("chunk: path contains newline")

// Chunk is one (path, content) unit read from a package.
type Chunk struct {
	// Path is the raw path run, without its terminator. It is empty for
	// data that was never introduced by a marker.
	Path string

	// Data is the chunk content. Each Chunk owns its own buffer.
	Data []byte
}
