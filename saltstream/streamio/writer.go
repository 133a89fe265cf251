package streamio

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/sodalite-labs/saltstream/saltstream"
)

const (
	// DefaultChunkSize is the plaintext chunk size used by NewWriter.
	DefaultChunkSize = 16 * 1024

	// MaxChunkSize limits a single ciphertext chunk on the wire.
	MaxChunkSize = 1 << 20
)

var (
	ErrWriterClosed  = errors.New("streamio: writer is closed")
	ErrChunkTooLarge = errors.New("streamio: chunk length exceeds limit")
	ErrTruncated     = errors.New("streamio: stream ended before final chunk")
)

// Writer encrypts everything written to it into a secretstream on the
// underlying writer. Plaintext is buffered into fixed-size chunks; Close
// writes the remaining bytes as the final chunk. Without Close the
// receiving Reader reports truncation.
type Writer struct {
	s      *saltstream.PushStream
	w      io.Writer
	buf    []byte
	n      int
	closed bool
}

// NewWriter starts a stream under key on w, writing the 24-byte header
// immediately.
func NewWriter(w io.Writer, key []byte) (*Writer, error) {
	return NewWriterSize(w, key, DefaultChunkSize)
}

// NewWriterSize is NewWriter with an explicit plaintext chunk size.
// A size of zero or less selects DefaultChunkSize.
func NewWriterSize(w io.Writer, key []byte, chunkSize int) (*Writer, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize+saltstream.Overhead > MaxChunkSize {
		return nil, ErrChunkTooLarge
	}
	s, header, err := saltstream.InitPush(key)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(header[:]); err != nil {
		return nil, err
	}
	return &Writer{s: s, w: w, buf: make([]byte, chunkSize)}, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	var total int
	for len(p) > 0 {
		n := copy(w.buf[w.n:], p)
		w.n += n
		p = p[n:]
		total += n
		if w.n == len(w.buf) {
			if err := w.flush(saltstream.TagMessage); err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// flush seals the buffered plaintext with the given tag and writes the
// framed chunk.
func (w *Writer) flush(tag saltstream.Tag) error {
	chunk, err := w.s.Push(w.buf[:w.n], nil, tag)
	if err != nil {
		return err
	}
	var frame [4]byte
	binary.BigEndian.PutUint32(frame[:], uint32(len(chunk)))
	if _, err := w.w.Write(frame[:]); err != nil {
		return err
	}
	if _, err := w.w.Write(chunk); err != nil {
		return err
	}
	w.n = 0
	return nil
}

// Close seals any buffered bytes into the final chunk and wipes the
// stream state. It does not close the underlying writer. Close is
// idempotent; writes after Close fail.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.flush(saltstream.TagFinal)
	w.s.Wipe()
	return err
}
