package gcm

import (
	"encoding/binary"
	"fmt"

	"aesgcm/aes"

	"lukechampine.com/uint128"
)

// r is the reduction constant for x^128 + x^7 + x^2 + x + 1 in the
// bit-reflected GCM representation: 0xe1 followed by 120 zero bits.
var r = uint128.New(0, 0xe1<<56)

// loadElement reads a field element from 16 big-endian bytes.
func loadElement(b []byte) uint128.Uint128 {
	return uint128.New(binary.BigEndian.Uint64(b[8:16]), binary.BigEndian.Uint64(b[0:8]))
}

func storeElement(b []byte, e uint128.Uint128) {
	binary.BigEndian.PutUint64(b[0:8], e.Hi)
	binary.BigEndian.PutUint64(b[8:16], e.Lo)
}

// mul returns x*y in GF(2^128) (SP 800-38D Algorithm 1). The bits of x are
// walked from the most significant end.
func mul(x, y uint128.Uint128) uint128.Uint128 {
	var z uint128.Uint128
	v := y
	for i := 0; i < 128; i++ {
		if x.Hi>>63 == 1 {
			z = z.Xor(v)
		}
		x = x.Lsh(1)

		lsb := v.Lo & 1
		v = v.Rsh(1)
		if lsb == 1 {
			v = v.Xor(r)
		}
	}
	return z
}

// ghash folds 16-byte blocks of x into the accumulator. len(x) must be a
// multiple of 16.
func ghash(h uint128.Uint128, x []byte) uint128.Uint128 {
	var y uint128.Uint128
	for off := 0; off < len(x); off += aes.BlockSize {
		y = mul(y.Xor(loadElement(x[off:off+aes.BlockSize])), h)
	}
	return y
}

// GHASH computes GHASH_H(x) over whole blocks.
func GHASH(h [aes.BlockSize]byte, x []byte) (out [aes.BlockSize]byte, err error) {
	if len(x)%aes.BlockSize != 0 {
		return out, fmt.Errorf("%w: GHASH input of %d bytes is not block aligned", aes.ErrInvalidBlockLength, len(x))
	}
	storeElement(out[:], ghash(loadElement(h[:]), x))
	return out, nil
}
