package secmem

import (
	"errors"
	"fmt"

	"github.com/awnumar/memguard"
)

var (
	// ErrProtectionFailed reports that protected memory could not be
	// allocated, locked, or guarded.
	ErrProtectionFailed = errors.New("secmem: cannot acquire protected memory")
)

// Buffer is a resizable byte buffer held in protected memory. The zero
// value is a valid empty buffer that allocates on first Resize.
type Buffer struct {
	lb *memguard.LockedBuffer
}

// New allocates a protected buffer of n zero bytes.
func New(n int) (*Buffer, error) {
	b := new(Buffer)
	if err := b.Resize(n); err != nil {
		return nil, err
	}
	return b, nil
}

// NewRandom allocates a protected buffer filled with n random bytes.
func NewRandom(n int) (*Buffer, error) {
	if n == 0 {
		return new(Buffer), nil
	}
	b := new(Buffer)
	if err := guard(func() { b.lb = memguard.NewBufferRandom(n) }); err != nil {
		return nil, err
	}
	return b, nil
}

// FromBytes moves src into a protected buffer. src is wiped.
func FromBytes(src []byte) (*Buffer, error) {
	if len(src) == 0 {
		return new(Buffer), nil
	}
	b := new(Buffer)
	if err := guard(func() {
		b.lb = memguard.NewBufferFromBytes(src)
		// NewBufferFromBytes freezes the buffer read-only; the output
		// contract needs it writable.
		b.lb.Melt()
	}); err != nil {
		return nil, err
	}
	return b, nil
}

// Bytes returns the buffer's contents. The view stays valid until the
// next Resize or Destroy.
func (b *Buffer) Bytes() []byte {
	if b.lb == nil {
		return nil
	}
	return b.lb.Bytes()
}

// Len returns the buffer's length.
func (b *Buffer) Len() int {
	if b.lb == nil {
		return 0
	}
	return b.lb.Size()
}

// Resize reallocates the buffer to exactly n bytes, preserving the common
// prefix and zero-filling growth. The old region is destroyed.
func (b *Buffer) Resize(n int) error {
	if n == b.Len() {
		return nil
	}
	if n == 0 {
		b.Destroy()
		return nil
	}
	var nlb *memguard.LockedBuffer
	if err := guard(func() { nlb = memguard.NewBuffer(n) }); err != nil {
		return err
	}
	if b.lb != nil {
		copy(nlb.Bytes(), b.lb.Bytes())
		b.lb.Destroy()
	}
	b.lb = nlb
	return nil
}

// Wipe overwrites the contents in place, keeping the allocation.
func (b *Buffer) Wipe() {
	if b.lb != nil {
		memguard.WipeBytes(b.lb.Bytes())
	}
}

// Destroy wipes and releases the protected region. The buffer reverts to
// an empty buffer and may be reused.
func (b *Buffer) Destroy() {
	if b.lb != nil {
		b.lb.Destroy()
		b.lb = nil
	}
}

// Wipe overwrites a plain byte slice with zeros using a pass the compiler
// will not elide.
func Wipe(buf []byte) {
	memguard.WipeBytes(buf)
}

// guard converts memguard's panic on a failed protection syscall into an
// error return.
func guard(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrProtectionFailed, r)
		}
	}()
	f()
	return nil
}
