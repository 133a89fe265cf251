package saltstream

import (
	"encoding/binary"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/poly1305"
)

const (
	counterSize = 4
	suffixSize  = 8
	blockSize   = 64
)

// pad0 feeds zero padding into the MAC.
var pad0 [16]byte

// streamState is the secret per-direction state: the derived subkey and
// the 12-byte nonce, laid out as a 4-byte little-endian block counter
// followed by an 8-byte suffix. Every push or pull mutates it; it is
// never serialized.
type streamState struct {
	key   [chacha20.KeySize]byte
	nonce [chacha20.NonceSize]byte
}

// init derives the state from a 32-byte key and 24-byte header: the
// subkey is HChaCha20(key, header[0:16]), the nonce suffix is
// header[16:24], and the counter starts at 1.
func (st *streamState) init(key, header []byte) error {
	sub, err := chacha20.HChaCha20(key, header[:16])
	if err != nil {
		return err
	}
	copy(st.key[:], sub)
	memguard.WipeBytes(sub)
	copy(st.suffix(), header[16:])
	st.resetCounter()
	return nil
}

func (st *streamState) counter() []byte { return st.nonce[:counterSize] }
func (st *streamState) suffix() []byte  { return st.nonce[counterSize:] }

func (st *streamState) resetCounter() {
	c := st.counter()
	for i := range c {
		c[i] = 0
	}
	c[0] = 1
}

// push seals message into out, which must be exactly len(message)+Overhead
// bytes and must not overlap message.
//
// One ChaCha20 keystream over (subkey, nonce) drives the whole chunk: the
// block at counter 0 yields the one-time Poly1305 key, the block at
// counter 1 encrypts the framing byte, and blocks from counter 2 encrypt
// the body. The MAC covers the padded associated data, the full framing
// block, the padded body, and the little-endian lengths; its first 8
// bytes then ratchet the nonce suffix.
func (st *streamState) push(out, message, ad []byte, tag Tag) error {
	ks, err := chacha20.NewUnauthenticatedCipher(st.key[:], st.nonce[:])
	if err != nil {
		return err
	}

	var block [blockSize]byte
	defer memguard.WipeBytes(block[:])
	ks.XORKeyStream(block[:], block[:])

	var macKey [32]byte
	defer memguard.WipeBytes(macKey[:])
	copy(macKey[:], block[:32])
	mac := poly1305.New(&macKey)

	adlen := uint64(len(ad))
	mlen := uint64(len(message))
	mac.Write(ad)
	mac.Write(pad0[:(0x10-adlen)&0xf])

	for i := range block {
		block[i] = 0
	}
	block[0] = byte(tag)
	ks.XORKeyStream(block[:], block[:])
	mac.Write(block[:])
	out[0] = block[0]

	body := out[1 : 1+mlen]
	ks.XORKeyStream(body, message)
	mac.Write(body)
	// Frozen libsodium padding: mlen mod 16, not the usual 16-alignment.
	mac.Write(pad0[:(0x10+mlen-blockSize)&0xf])

	var lens [16]byte
	binary.LittleEndian.PutUint64(lens[:8], adlen)
	binary.LittleEndian.PutUint64(lens[8:], blockSize+mlen)
	mac.Write(lens[:])

	sum := mac.Sum(out[1+mlen : 1+mlen])
	st.ratchet(sum)
	return st.maybeRekey(tag)
}

// pull opens chunk c into dst, which must be exactly len(c)-Overhead
// bytes and must not overlap c. The caller has already checked
// len(c) >= Overhead.
//
// Verification runs in constant time before any decryption. On failure no
// plaintext is written and the state is unchanged, so the stream can
// still process the genuine chunk; the transport, however, should be
// considered compromised.
func (st *streamState) pull(dst, c, ad []byte) (Tag, error) {
	ks, err := chacha20.NewUnauthenticatedCipher(st.key[:], st.nonce[:])
	if err != nil {
		return 0, err
	}

	var block [blockSize]byte
	defer memguard.WipeBytes(block[:])
	ks.XORKeyStream(block[:], block[:])

	var macKey [32]byte
	defer memguard.WipeBytes(macKey[:])
	copy(macKey[:], block[:32])
	mac := poly1305.New(&macKey)

	adlen := uint64(len(ad))
	mlen := uint64(len(c) - Overhead)
	mac.Write(ad)
	mac.Write(pad0[:(0x10-adlen)&0xf])

	// Recover the framing byte, then restore the block so the MAC sees
	// the same bytes the sender authenticated.
	for i := range block {
		block[i] = 0
	}
	block[0] = c[0]
	ks.XORKeyStream(block[:], block[:])
	tagByte := block[0]
	block[0] = c[0]
	mac.Write(block[:])

	body := c[1 : 1+mlen]
	mac.Write(body)
	mac.Write(pad0[:(0x10+mlen-blockSize)&0xf])

	var lens [16]byte
	binary.LittleEndian.PutUint64(lens[:8], adlen)
	binary.LittleEndian.PutUint64(lens[8:], blockSize+mlen)
	mac.Write(lens[:])

	sum := c[1+mlen:]
	if !mac.Verify(sum) {
		return 0, ErrAuthentication
	}
	tag, err := ParseTag(tagByte)
	if err != nil {
		return 0, err
	}

	ks.XORKeyStream(dst, body)
	st.ratchet(sum)
	return tag, st.maybeRekey(tag)
}

// ratchet folds the chunk's MAC into the nonce suffix and advances the
// counter.
func (st *streamState) ratchet(sum []byte) {
	suffix := st.suffix()
	for i := range suffix {
		suffix[i] ^= sum[i]
	}
	incrementCounter(st.counter())
}

// maybeRekey rekeys after a TagRekey or TagFinal message, or when the
// counter wraps to zero.
func (st *streamState) maybeRekey(tag Tag) error {
	if tag.Has(TagRekey) || allZero(st.counter()) {
		return st.rekey()
	}
	return nil
}

// rekey replaces the subkey and nonce suffix with keystream output of the
// current state and resets the counter to 1. Both directions must rekey
// at the same point in the stream; nothing is transmitted.
func (st *streamState) rekey() error {
	ks, err := chacha20.NewUnauthenticatedCipher(st.key[:], st.nonce[:])
	if err != nil {
		return err
	}
	var buf [chacha20.KeySize + suffixSize]byte
	defer memguard.WipeBytes(buf[:])
	copy(buf[:chacha20.KeySize], st.key[:])
	copy(buf[chacha20.KeySize:], st.suffix())
	ks.XORKeyStream(buf[:], buf[:])
	copy(st.key[:], buf[:chacha20.KeySize])
	copy(st.suffix(), buf[chacha20.KeySize:])
	st.resetCounter()
	return nil
}

// wipe overwrites the state.
func (st *streamState) wipe() {
	memguard.WipeBytes(st.key[:])
	memguard.WipeBytes(st.nonce[:])
}

// incrementCounter adds one to a little-endian counter.
func incrementCounter(c []byte) {
	for i := range c {
		c[i]++
		if c[i] != 0 {
			return
		}
	}
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
