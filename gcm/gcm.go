// Package gcm implements Galois/Counter Mode (NIST SP 800-38D) over a 128-bit
// block cipher, AES by default.
//
// Only 96-bit IVs and full 128-bit tags are supported. A GCM value is
// immutable after construction and may be shared between goroutines.
package gcm

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"aesgcm/aes"

	"lukechampine.com/uint128"
)

const (
	// IVSize is the only supported IV length in bytes.
	IVSize = 12
	// TagSize is the authentication tag length t in bytes.
	TagSize = 16
)

// GCM is an authenticated cipher bound to one key and its hash subkey.
type GCM struct {
	b Block
	h uint128.Uint128
}

// New builds AES-GCM for a 16, 24 or 32-byte key.
func New(key []byte) (*GCM, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return NewWithCipher(c)
}

// NewWithCipher builds GCM over any 128-bit block cipher.
func NewWithCipher(b Block) (*GCM, error) {
	var zero [aes.BlockSize]byte
	h, err := b.Encrypt(zero[:])
	if err != nil {
		return nil, fmt.Errorf("gcm: derive hash subkey: %w", err)
	}
	return &GCM{b: b, h: loadElement(h)}, nil
}

// H returns the hash subkey E_K(0^128).
func (g *GCM) H() (h [aes.BlockSize]byte) {
	storeElement(h[:], g.h)
	return h
}

func counter0(iv []byte) (j0 [aes.BlockSize]byte, err error) {
	if len(iv) != IVSize {
		return j0, fmt.Errorf("%w: %d bytes, want %d", ErrUnsupportedIVLength, len(iv), IVSize)
	}
	copy(j0[:], iv)
	j0[15] = 1
	return j0, nil
}

// authInput builds A || 0^v || C || 0^u || [len(A)]64 || [len(C)]64, with each
// field padded to a block boundary on its own.
func authInput(aad, c []byte) []byte {
	aadLen := padded(len(aad))
	cLen := padded(len(c))
	s := make([]byte, aadLen+cLen+aes.BlockSize)
	copy(s, aad)
	copy(s[aadLen:], c)
	binary.BigEndian.PutUint64(s[aadLen+cLen:], uint64(len(aad))*8)
	binary.BigEndian.PutUint64(s[aadLen+cLen+8:], uint64(len(c))*8)
	return s
}

func padded(n int) int {
	return (n + aes.BlockSize - 1) / aes.BlockSize * aes.BlockSize
}

func (g *GCM) tag(j0 [aes.BlockSize]byte, aad, c []byte) ([]byte, error) {
	var s [aes.BlockSize]byte
	storeElement(s[:], ghash(g.h, authInput(aad, c)))
	t, err := GCTR(g.b, j0, s[:])
	if err != nil {
		return nil, err
	}
	return t[:TagSize], nil
}

// Encrypt returns the ciphertext, which has the same length as plaintext,
// and a 16-byte tag covering aad and the ciphertext.
func (g *GCM) Encrypt(plaintext, iv, aad []byte) (ciphertext, tag []byte, err error) {
	j0, err := counter0(iv)
	if err != nil {
		return nil, nil, err
	}
	ciphertext, err = GCTR(g.b, inc32(j0), plaintext)
	if err != nil {
		return nil, nil, err
	}
	tag, err = g.tag(j0, aad, ciphertext)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, tag, nil
}

// Decrypt authenticates ciphertext and aad against tag and, only if they
// match, returns the plaintext.
func (g *GCM) Decrypt(ciphertext, iv, aad, tag []byte) ([]byte, error) {
	if len(tag) != TagSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidTagLength, len(tag), TagSize)
	}
	j0, err := counter0(iv)
	if err != nil {
		return nil, err
	}
	expected, err := g.tag(j0, aad, ciphertext)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(expected, tag) != 1 {
		return nil, ErrAuthenticationFailure
	}
	return GCTR(g.b, inc32(j0), ciphertext)
}
