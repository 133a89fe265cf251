package streamio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sodalite-labs/saltstream/saltstream"
)

// Reader decrypts a stream produced by Writer. Read returns io.EOF only
// after the final chunk; an underlying EOF anywhere earlier fails with
// ErrTruncated, and any modified chunk fails with
// saltstream.ErrAuthentication.
type Reader struct {
	s        *saltstream.PullStream
	r        io.Reader
	leftover []byte
	done     bool
}

// NewReader opens a stream under key from r, consuming the 24-byte
// header.
func NewReader(r io.Reader, key []byte) (*Reader, error) {
	var header [saltstream.HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, err
	}
	s, err := saltstream.InitPull(key, header[:])
	if err != nil {
		return nil, err
	}
	return &Reader{s: s, r: r}, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	for len(r.leftover) == 0 {
		if r.done {
			return 0, io.EOF
		}
		if err := r.next(); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.leftover)
	r.leftover = r.leftover[n:]
	return n, nil
}

// next reads and opens one framed chunk.
func (r *Reader) next() error {
	var frame [4]byte
	if _, err := io.ReadFull(r.r, frame[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTruncated
		}
		return err
	}
	clen := binary.BigEndian.Uint32(frame[:])
	if clen > MaxChunkSize {
		return fmt.Errorf("%w: %d", ErrChunkTooLarge, clen)
	}
	chunk := make([]byte, clen)
	if _, err := io.ReadFull(r.r, chunk); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTruncated
		}
		return err
	}
	msg, tag, err := r.s.Pull(chunk, nil)
	if err != nil {
		return err
	}
	if tag == saltstream.TagFinal {
		r.done = true
		r.s.Wipe()
	}
	r.leftover = msg
	return nil
}
