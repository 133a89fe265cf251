// Package saltstream implements an authenticated, ordered, symmetric-key
// encrypted message stream, byte compatible with libsodium's
// crypto_secretstream_xchacha20poly1305 construction.
//
// Two parties sharing a 32-byte key exchange an ordered sequence of
// messages of arbitrary length. The stream guarantees:
//   - Confidentiality and integrity for every message
//   - A per-message tag and optional authenticated associated data
//   - Tamper-evident ordering: chunks cannot be reordered, removed,
//     duplicated, or replayed without detection
//   - Forward secrecy within the stream via automatic key ratcheting,
//     counter-exhaustion rekeys, and explicit rekeys
//
// The sender calls InitPush, transmits the 24-byte cleartext header once,
// then Push per message. Each chunk is len(message)+Overhead bytes. The
// receiver calls InitPull with the same key and header, then Pull per
// chunk, in the exact order pushed. Transport is the caller's concern;
// package streamio provides io.Writer and io.Reader adapters for files
// and sockets.
package saltstream
