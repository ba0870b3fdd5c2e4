package chunk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const copyBufferSize = 32 * 1024

// Writer serializes chunks onto an underlying stream.
type Writer struct {
	w   io.Writer
	buf []byte
	n   uint64
}

// NewWriter returns a Writer emitting chunks to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, buf: make([]byte, copyBufferSize)}
}

// WriteChunk writes Marker, path, PathTerminator and then all of content.
// It returns the number of content bytes copied. The context is checked
// before every read of content.
//
// Nothing is written when path contains PathTerminator.
func (cw *Writer) WriteChunk(ctx context.Context, path string, content io.Reader) (uint64, error) {
	if strings.IndexByte(path, PathTerminator) >= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if err := cw.writeString(Marker + path + string(PathTerminator)); err != nil {
		return 0, err
	}
	return cw.copyContent(ctx, content)
}

// Written returns the total number of bytes written, headers included.
func (cw *Writer) Written() uint64 {
	return cw.n
}

func (cw *Writer) writeString(s string) error {
	n, err := io.WriteString(cw.w, s)
	cw.n += uint64(n) //nolint:gosec // n is non-negative by io.Writer contract
	return err
}

// copyContent streams content through the shared buffer until EOF.
func (cw *Writer) copyContent(ctx context.Context, content io.Reader) (uint64, error) {
	var copied uint64
	for {
		if err := ctx.Err(); err != nil {
			return copied, err
		}
		nr, readErr := content.Read(cw.buf)
		if nr > 0 {
			nw, err := cw.w.Write(cw.buf[:nr])
			copied += uint64(nw) //nolint:gosec // nw is non-negative by io.Writer contract
			cw.n += uint64(nw)   //nolint:gosec // as above
			switch {
			case err != nil:
				return copied, err
			case nw != nr:
				return copied, io.ErrShortWrite
			}
		}
		if errors.Is(readErr, io.EOF) {
			return copied, nil
		}
		if readErr != nil {
			return copied, readErr
		}
	}
}
