// Package buffer defines the output contract shared by the stream engine's
// memory backends: growable heap slices, fixed-capacity caller memory, and
// the hardened buffers in package secmem.
package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrTooSmall reports a fixed-capacity buffer that cannot hold the
	// requested length.
	ErrTooSmall = errors.New("buffer: capacity exceeded")
)

// Buffer is the minimal capability the engine needs from an output: a view
// of the current contents and an exact-length resize. Growth must
// zero-fill the new bytes.
type Buffer interface {
	Bytes() []byte
	Resize(n int) error
}

// Slice is the growable heap backend. The zero value is an empty buffer.
type Slice []byte

// Bytes returns the current contents.
func (s *Slice) Bytes() []byte { return *s }

// Resize grows or truncates the slice to exactly n bytes. New bytes are
// zero, including bytes re-exposed from a previous larger length.
func (s *Slice) Resize(n int) error {
	switch {
	case n <= len(*s):
		*s = (*s)[:n]
	case n <= cap(*s):
		grown := (*s)[len(*s):n]
		for i := range grown {
			grown[i] = 0
		}
		*s = (*s)[:n]
	default:
		grown := make([]byte, n)
		copy(grown, *s)
		*s = grown
	}
	return nil
}

// Fixed is the fixed-capacity backend over caller-supplied memory, for
// callers that cannot or do not want to allocate per message. The zero
// value has capacity zero; use Wrap to bind backing memory.
type Fixed struct {
	backing []byte
	n       int
}

// Wrap binds backing as a Fixed buffer's storage. The buffer starts at
// length zero; its capacity is len(backing).
func Wrap(backing []byte) *Fixed {
	return &Fixed{backing: backing}
}

// Bytes returns the current contents.
func (f *Fixed) Bytes() []byte { return f.backing[:f.n] }

// Cap returns the backing capacity.
func (f *Fixed) Cap() int { return len(f.backing) }

// Resize sets the length to exactly n bytes, zero-filling growth. It
// fails with ErrTooSmall if n exceeds the backing capacity.
func (f *Fixed) Resize(n int) error {
	if n > len(f.backing) {
		return fmt.Errorf("%w: need %d bytes, capacity %d", ErrTooSmall, n, len(f.backing))
	}
	if n > f.n {
		grown := f.backing[f.n:n]
		for i := range grown {
			grown[i] = 0
		}
	}
	f.n = n
	return nil
}
