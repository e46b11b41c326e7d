// Package aes implements the FIPS-197 block cipher for 128, 192 and 256-bit
// keys.
//
// The implementation follows the standard's byte-oriented description with
// an explicit state grid. It is not constant-time and makes no attempt at
// table or instruction-level acceleration.
package aes

import "fmt"

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// nb is the number of 32-bit columns in the state.
const nb = 4

// Cipher holds an expanded key schedule. It is immutable after NewCipher and
// safe for concurrent use.
type Cipher struct {
	nk int
	nr int
	w  []word
}

// NewCipher expands key, which must be 16, 24 or 32 bytes long.
func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeyLength, len(key))
	}
	nk := len(key) / 4
	return &Cipher{
		nk: nk,
		nr: nk + 6,
		w:  expandKey(key),
	}, nil
}

// BlockSize returns the block length in bytes, always 16.
func (c *Cipher) BlockSize() int { return BlockSize }

// KeySize returns the key length in bytes.
func (c *Cipher) KeySize() int { return c.nk * 4 }

// Rounds returns Nr: 10, 12 or 14.
func (c *Cipher) Rounds() int { return c.nr }

// RoundKey returns the 16-byte subkey for round 0..Nr.
func (c *Cipher) RoundKey(round int) (k [BlockSize]byte, err error) {
	if round < 0 || round > c.nr {
		return k, fmt.Errorf("aes: round %d out of range [0, %d]", round, c.nr)
	}
	for col := 0; col < nb; col++ {
		copy(k[4*col:], c.w[round*nb+col][:])
	}
	return k, nil
}

// Encrypt encrypts exactly one 16-byte block into a new slice.
func (c *Cipher) Encrypt(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidBlockLength, len(block))
	}
	s := loadState(block)
	s.addRoundKey(c.w, 0)
	for round := 1; round < c.nr; round++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(c.w, round)
	}
	s.subBytes()
	s.shiftRows()
	s.addRoundKey(c.w, c.nr)

	out := make([]byte, BlockSize)
	s.store(out)
	return out, nil
}

// Decrypt inverts Encrypt for exactly one 16-byte block.
func (c *Cipher) Decrypt(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidBlockLength, len(block))
	}
	s := loadState(block)
	s.addRoundKey(c.w, c.nr)
	for round := c.nr - 1; round > 0; round-- {
		s.invShiftRows()
		s.invSubBytes()
		// the forward round mixed before adding the key, so the key comes
		// off first here
		s.addRoundKey(c.w, round)
		s.invMixColumns()
	}
	s.invShiftRows()
	s.invSubBytes()
	s.addRoundKey(c.w, 0)

	out := make([]byte, BlockSize)
	s.store(out)
	return out, nil
}
