package saltstream

import (
	"crypto/rand"

	"github.com/sodalite-labs/saltstream/saltstream/buffer"
)

// stream carries the operations shared by both directions.
type stream struct {
	st streamState
}

// Rekey derives fresh key material from the current state. Both sides
// must call it at the same point in the stream; no signal is transmitted,
// and a one-sided rekey makes the next chunk fail authentication.
func (s *stream) Rekey() error { return s.st.rekey() }

// Wipe overwrites the stream state. The stream must not be used after.
func (s *stream) Wipe() { s.st.wipe() }

// PushStream is the encrypt side of a stream. Create one with InitPush.
// It is not safe for concurrent use.
type PushStream struct {
	stream
}

// PullStream is the decrypt side of a stream. Create one with InitPull.
// It is not safe for concurrent use.
type PullStream struct {
	stream
}

// InitPush creates the encrypt side of a new stream under key, drawing a
// fresh random header. The header must reach the receiver, in cleartext,
// before the first chunk.
func InitPush(key []byte) (*PushStream, Header, error) {
	if len(key) != KeySize {
		return nil, Header{}, ErrKeySize
	}
	var header Header
	if _, err := rand.Read(header[:]); err != nil {
		return nil, Header{}, err
	}
	s := new(PushStream)
	if err := s.st.init(key, header[:]); err != nil {
		return nil, Header{}, err
	}
	return s, header, nil
}

// InitPull creates the decrypt side of a stream from the sender's header.
// The same key and header always reproduce the same decoding state.
func InitPull(key, header []byte) (*PullStream, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	if len(header) != HeaderSize {
		return nil, ErrHeaderSize
	}
	s := new(PullStream)
	if err := s.st.init(key, header); err != nil {
		return nil, err
	}
	return s, nil
}

// Push encrypts message under the stream's current state and returns the
// chunk, len(message)+Overhead bytes. Associated data is authenticated
// but not transmitted; the receiver must supply the same bytes to Pull.
// Every call irreversibly advances the stream.
func (s *PushStream) Push(message, ad []byte, tag Tag) ([]byte, error) {
	var out buffer.Slice
	if err := s.PushInto(&out, message, ad, tag); err != nil {
		return nil, err
	}
	return out, nil
}

// PushInto encrypts message into dst, resizing it to
// len(message)+Overhead bytes. dst must not overlap message. A
// fixed-capacity dst that cannot hold the chunk fails with the backend's
// resize error and leaves the stream state untouched.
func (s *PushStream) PushInto(dst buffer.Buffer, message, ad []byte, tag Tag) error {
	if err := dst.Resize(len(message) + Overhead); err != nil {
		return err
	}
	return s.st.push(dst.Bytes(), message, ad, tag)
}

// Pull authenticates and decrypts the next chunk, returning the message
// and the tag the sender attached. Chunks must be pulled in push order;
// anything reordered, duplicated, or modified fails with
// ErrAuthentication and releases no plaintext.
func (s *PullStream) Pull(ciphertext, ad []byte) ([]byte, Tag, error) {
	var out buffer.Slice
	tag, err := s.PullInto(&out, ciphertext, ad)
	if err != nil {
		return nil, 0, err
	}
	return out, tag, nil
}

// PullInto decrypts into dst, resizing it to len(ciphertext)-Overhead
// bytes. dst must not overlap ciphertext. On error dst may have been
// resized but holds no plaintext.
func (s *PullStream) PullInto(dst buffer.Buffer, ciphertext, ad []byte) (Tag, error) {
	if len(ciphertext) < Overhead {
		return 0, ErrCiphertextShort
	}
	if err := dst.Resize(len(ciphertext) - Overhead); err != nil {
		return 0, err
	}
	return s.st.pull(dst.Bytes(), ciphertext, ad)
}

// Output constrains the owned output types accepted by PushTo and
// PullTo: any type whose pointer satisfies buffer.Buffer and whose zero
// value is a valid empty buffer.
type Output[B any] interface {
	*B
	buffer.Buffer
}

// PushTo is Push returning the chunk in an owned buffer of type B, for
// example a secmem.Buffer when the ciphertext must stay in protected
// memory.
func PushTo[B any, PB Output[B]](s *PushStream, message, ad []byte, tag Tag) (B, error) {
	var out B
	if err := s.PushInto(PB(&out), message, ad, tag); err != nil {
		var zero B
		return zero, err
	}
	return out, nil
}

// PullTo is Pull returning the message in an owned buffer of type B, for
// example a secmem.Buffer so recovered plaintext never touches unlocked
// memory.
func PullTo[B any, PB Output[B]](s *PullStream, ciphertext, ad []byte) (B, Tag, error) {
	var out B
	tag, err := s.PullInto(PB(&out), ciphertext, ad)
	if err != nil {
		var zero B
		return zero, 0, err
	}
	return out, tag, nil
}
