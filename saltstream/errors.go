package saltstream

import "errors"

var (
	// ErrInvalidTag reports a tag byte carrying undefined flag bits.
	ErrInvalidTag = errors.New("saltstream: invalid tag byte")

	// ErrKeySize reports a key that is not exactly 32 bytes.
	ErrKeySize = errors.New("saltstream: key must be 32 bytes")

	// ErrHeaderSize reports a header that is not exactly 24 bytes.
	ErrHeaderSize = errors.New("saltstream: header must be 24 bytes")

	// ErrCiphertextShort reports pull input shorter than Overhead. Such
	// input is rejected before any cryptographic work.
	ErrCiphertextShort = errors.New("saltstream: ciphertext shorter than minimum")

	// ErrAuthentication reports a chunk that failed verification. No
	// plaintext is released and the stream state is unchanged, but the
	// stream should be abandoned: a tampered transport cannot recover.
	ErrAuthentication = errors.New("saltstream: message authentication failed")
)
