package chunk

import (
	"bufio"
	"errors"
	"io"
	"iter"
)

// Scanner reads chunks from a package stream in a single forward pass.
//
// Marker detection peeks at the four bytes that follow a '%' without
// consuming them, so a '%' that does not start a marker is kept as data and
// the peeked bytes are examined again as ordinary content.
//
// Bytes that appear before the first marker are discarded when that marker is
// reached. At end of stream the pending chunk is always emitted, even when no
// marker was ever seen; its Path is then empty.
type Scanner struct {
	r     *bufio.Reader
	path  string
	buf   []byte
	chunk Chunk
	done  bool
	err   error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Scan advances to the next chunk, which is then available through Chunk.
// It returns false when the stream is exhausted or a read fails. Chunks
// completed before a read failure are returned before Scan reports it.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	for {
		data, err := s.r.ReadSlice(markerLead)
		switch {
		case err == nil:
			s.buf = append(s.buf, data[:len(data)-1]...)
			emitted, perr := s.afterLead()
			if perr != nil {
				// A chunk completed by this marker is still delivered; the
				// error surfaces on the next call.
				s.err = perr
				return emitted
			}
			if emitted {
				return true
			}
		case errors.Is(err, bufio.ErrBufferFull):
			s.buf = append(s.buf, data...)
		case errors.Is(err, io.EOF):
			s.buf = append(s.buf, data...)
			s.emit()
			s.done = true
			return true
		default:
			s.err = err
			return false
		}
	}
}

// afterLead handles the bytes following a '%'. It reports whether a
// completed chunk was emitted.
func (s *Scanner) afterLead() (bool, error) {
	tag, err := s.r.Peek(len(markerTag))
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return false, err
		}
		// Stream ends mid-tag: the remainder is content.
		s.buf = append(s.buf, markerLead)
		s.buf = append(s.buf, tag...)
		_, _ = s.r.Discard(len(tag))
		return false, nil
	}
	if string(tag) != markerTag {
		s.buf = append(s.buf, markerLead)
		return false, nil
	}
	if _, err := s.r.Discard(len(markerTag)); err != nil {
		return false, err
	}

	emitted := false
	if s.path != "" {
		s.emit()
		emitted = true
	}
	s.buf = nil

	path, err := s.r.ReadBytes(PathTerminator)
	switch {
	case err == nil:
		path = path[:len(path)-1]
	case errors.Is(err, io.EOF):
		// Unterminated path run: keep what was read.
	default:
		return emitted, err
	}
	s.path = string(path)
	return emitted, nil
}

func (s *Scanner) emit() {
	s.chunk = Chunk{Path: s.path, Data: s.buf}
	s.buf = nil
}

// Chunk returns the most recent chunk produced by Scan.
func (s *Scanner) Chunk() Chunk {
	return s.chunk
}

// Err returns the first non-EOF error encountered by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}

// All returns an iterator over the chunks in r. A read failure is yielded
// once as the final pair with a zero Chunk.
func All(r io.Reader) iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		s := NewScanner(r)
		for s.Scan() {
			if !yield(s.Chunk(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(Chunk{}, err)
		}
	}
}
