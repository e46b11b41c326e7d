package aes

// word is one column of the key schedule, byte 0 first.
type word [4]byte

func (w word) xor(o word) word {
	return word{w[0] ^ o[0], w[1] ^ o[1], w[2] ^ o[2], w[3] ^ o[3]}
}

func rotWord(w word) word {
	return word{w[1], w[2], w[3], w[0]}
}

func subWord(w word) word {
	return word{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}

// roundConstants returns Rcon[0..nr]. Rcon[0] is the 0x8d seed, so that
// Rcon[1] doubles to 0x01 and index i/Nk lines up with the round.
func roundConstants(nr int) []word {
	rc := make([]word, nr+1)
	x := byte(0x8d)
	rc[0] = word{x}
	for i := 1; i <= nr; i++ {
		x = xtime(x)
		rc[i] = word{x}
	}
	return rc
}

// expandKey runs the FIPS-197 KeyExpansion routine. The key length must
// already be validated.
func expandKey(key []byte) []word {
	nk := len(key) / 4
	nr := nk + 6
	total := nb * (nr + 1)
	rcon := roundConstants(nr)

	w := make([]word, total)
	for i := 0; i < nk; i++ {
		copy(w[i][:], key[4*i:4*i+4])
	}
	for i := nk; i < total; i++ {
		temp := w[i-1]
		if i%nk == 0 {
			temp = subWord(rotWord(temp)).xor(rcon[i/nk])
		} else if nk > 6 && i%nk == 4 {
			temp = subWord(temp)
		}
		w[i] = w[i-nk].xor(temp)
	}
	return w
}
