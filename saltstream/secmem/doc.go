// Package secmem provides hardened byte buffers for secret material.
//
// Buffers are backed by memguard locked buffers: page-locked so they never
// reach swap, fenced by inaccessible guard pages, canary-checked against
// overflows, and wiped when destroyed. memguard's policy on a failed
// protection syscall is to panic; the constructors here convert that into
// an error wrapping ErrProtectionFailed, so acquisition failure is
// explicit and never degrades silently to plain memory.
//
// A Buffer satisfies the engine's output contract, so hardened buffers can
// receive ciphertext or recovered plaintext directly.
package secmem
