package gcm

import (
	"encoding/binary"

	"aesgcm/aes"
)

// inc32 increments the low 32 bits of a counter block modulo 2^32. The
// upper 96 bits never receive a carry.
func inc32(cb [aes.BlockSize]byte) [aes.BlockSize]byte {
	binary.BigEndian.PutUint32(cb[12:], binary.BigEndian.Uint32(cb[12:])+1)
	return cb
}

// GCTR XORs x with the keystream E(icb), E(inc32(icb)), ... A short final
// chunk consumes only as many keystream bytes as it holds. Applying GCTR
// twice with the same icb returns the input.
func GCTR(b Block, icb [aes.BlockSize]byte, x []byte) ([]byte, error) {
	if len(x) == 0 {
		return []byte{}, nil
	}
	out := make([]byte, len(x))
	cb := icb
	for off := 0; off < len(x); off += aes.BlockSize {
		ks, err := b.Encrypt(cb[:])
		if err != nil {
			return nil, err
		}
		end := min(off+aes.BlockSize, len(x))
		for i := off; i < end; i++ {
			out[i] = x[i] ^ ks[i-off]
		}
		cb = inc32(cb)
	}
	return out, nil
}
