// Package streamio adapts a secretstream to io.Writer and io.Reader, for
// encrypting files and sockets without hand-rolling chunking.
//
// Wire format: the 24-byte stream header, then one frame per chunk:
//
//	4 bytes: ciphertext length (big endian)
//	N bytes: ciphertext (message length + saltstream.Overhead)
//
// The last chunk carries the stream's final tag, so a reader can tell a
// completed stream from one truncated in transit.
package streamio
