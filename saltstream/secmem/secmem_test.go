package secmem

import (
	"bytes"
	"testing"
)

func TestNewAndDestroy(t *testing.T) {
	b, err := New(32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Len() != 32 {
		t.Fatalf("Len = %d, want 32", b.Len())
	}
	if !bytes.Equal(b.Bytes(), make([]byte, 32)) {
		t.Fatalf("new buffer not zeroed")
	}

	copy(b.Bytes(), "sensitive")
	b.Destroy()
	if b.Len() != 0 || b.Bytes() != nil {
		t.Fatalf("destroyed buffer not empty")
	}

	// A destroyed buffer is reusable as an empty buffer.
	if err := b.Resize(8); err != nil {
		t.Fatalf("Resize after Destroy: %v", err)
	}
	if b.Len() != 8 {
		t.Fatalf("Len = %d, want 8", b.Len())
	}
	b.Destroy()
}

func TestNewZeroLength(t *testing.T) {
	b, err := New(0)
	if err != nil {
		t.Fatalf("New(0): %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d, want 0", b.Len())
	}
	b.Destroy()
}

func TestNewRandom(t *testing.T) {
	b, err := NewRandom(32)
	if err != nil {
		t.Fatalf("NewRandom: %v", err)
	}
	defer b.Destroy()
	if b.Len() != 32 {
		t.Fatalf("Len = %d, want 32", b.Len())
	}
	if bytes.Equal(b.Bytes(), make([]byte, 32)) {
		t.Fatalf("random buffer is all zeros")
	}

	b2, err := NewRandom(32)
	if err != nil {
		t.Fatalf("NewRandom: %v", err)
	}
	defer b2.Destroy()
	if bytes.Equal(b.Bytes(), b2.Bytes()) {
		t.Fatalf("two random buffers collide")
	}
}

func TestFromBytesWipesSource(t *testing.T) {
	src := []byte("move me somewhere safe")
	want := append([]byte(nil), src...)

	b, err := FromBytes(src)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	defer b.Destroy()

	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("contents = %q, want %q", b.Bytes(), want)
	}
	if !bytes.Equal(src, make([]byte, len(src))) {
		t.Fatalf("source slice not wiped: %q", src)
	}
}

func TestFromBytesWritable(t *testing.T) {
	b, err := FromBytes([]byte("overwrite me"))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	defer b.Destroy()

	// The moved contents must stay mutable through Bytes.
	copy(b.Bytes(), "NEW CONTENTS")
	if string(b.Bytes()) != "NEW CONTENTS" {
		t.Fatalf("contents = %q", b.Bytes())
	}

	// A same-length resize keeps the allocation and its writability.
	if err := b.Resize(b.Len()); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	b.Bytes()[0] = 'n'
	if string(b.Bytes()) != "nEW CONTENTS" {
		t.Fatalf("contents = %q", b.Bytes())
	}

	b.Wipe()
	if !bytes.Equal(b.Bytes(), make([]byte, b.Len())) {
		t.Fatalf("Wipe left data behind: %v", b.Bytes())
	}
}

func TestResize(t *testing.T) {
	b, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Destroy()
	copy(b.Bytes(), []byte{1, 2, 3, 4})

	if err := b.Resize(8); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if !bytes.Equal(b.Bytes(), []byte{1, 2, 3, 4, 0, 0, 0, 0}) {
		t.Fatalf("growth = %v, want prefix kept and tail zeroed", b.Bytes())
	}

	if err := b.Resize(2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if !bytes.Equal(b.Bytes(), []byte{1, 2}) {
		t.Fatalf("shrink = %v, want {1, 2}", b.Bytes())
	}

	if err := b.Resize(0); err != nil {
		t.Fatalf("Resize(0): %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d, want 0", b.Len())
	}
}

func TestWipe(t *testing.T) {
	b, err := FromBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	defer b.Destroy()

	b.Wipe()
	if !bytes.Equal(b.Bytes(), make([]byte, 4)) {
		t.Fatalf("Wipe left data behind: %v", b.Bytes())
	}
	if b.Len() != 4 {
		t.Fatalf("Wipe changed length to %d", b.Len())
	}

	plain := []byte{1, 2, 3}
	Wipe(plain)
	if !bytes.Equal(plain, make([]byte, 3)) {
		t.Fatalf("Wipe(slice) left data behind: %v", plain)
	}
}

func TestZeroValue(t *testing.T) {
	var b Buffer
	if b.Len() != 0 || b.Bytes() != nil {
		t.Fatalf("zero value not empty")
	}
	if err := b.Resize(16); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if b.Len() != 16 {
		t.Fatalf("Len = %d, want 16", b.Len())
	}
	b.Destroy()
}
