package saltstream

import (
	"crypto/rand"

	"github.com/awnumar/memguard"
)

const (
	// KeySize is the size of a stream key in bytes.
	KeySize = 32
	// HeaderSize is the size of the cleartext stream header in bytes.
	HeaderSize = 24
	// Overhead is added to every message: one encrypted framing byte
	// plus a 16-byte authentication tag.
	Overhead = 17
)

// Key is a shared secret stream key. Wipe it when it is no longer needed.
// Keys that must never reach swap can live in a secmem.Buffer instead;
// the stream APIs accept any 32-byte view.
type Key [KeySize]byte

// Header is the public per-stream value generated by InitPush. It binds
// the receiver to the sender's initial state and is sent once, in
// cleartext, before the first chunk.
type Header [HeaderSize]byte

// GenerateKey draws a fresh random stream key.
func GenerateKey() (*Key, error) {
	k := new(Key)
	if _, err := rand.Read(k[:]); err != nil {
		return nil, err
	}
	return k, nil
}

// KeyFromBytes copies a 32-byte secret into a Key. The caller keeps
// ownership of b and should wipe it separately.
func KeyFromBytes(b []byte) (*Key, error) {
	if len(b) != KeySize {
		return nil, ErrKeySize
	}
	k := new(Key)
	copy(k[:], b)
	return k, nil
}

// Bytes returns the key view expected by InitPush and InitPull.
func (k *Key) Bytes() []byte { return k[:] }

// Wipe overwrites the key material.
func (k *Key) Wipe() { memguard.WipeBytes(k[:]) }
