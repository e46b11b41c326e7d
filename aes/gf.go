package aes

// xtime multiplies b by x in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1.
func xtime(b byte) byte {
	hi := b & 0x80
	b <<= 1
	if hi != 0 {
		b ^= 0x1b
	}
	return b
}

func mul2(b byte) byte { return xtime(b) }

func mul3(b byte) byte { return xtime(b) ^ b }

func mul4(b byte) byte { return xtime(xtime(b)) }

func mul8(b byte) byte { return xtime(mul4(b)) }

func mul9(b byte) byte { return mul8(b) ^ b }

func mul11(b byte) byte { return mul8(b) ^ mul2(b) ^ b }

func mul13(b byte) byte { return mul8(b) ^ mul4(b) ^ b }

func mul14(b byte) byte { return mul8(b) ^ mul4(b) ^ mul2(b) }
