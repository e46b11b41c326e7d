package aes

// state is the 4x4 working grid, indexed [row][column]. Input byte i sits at
// row i%4, column i/4.
type state [4][nb]byte

func loadState(in []byte) (s state) {
	for i := 0; i < BlockSize; i++ {
		s[i%4][i/4] = in[i]
	}
	return s
}

func (s *state) store(out []byte) {
	for i := 0; i < BlockSize; i++ {
		out[i] = s[i%4][i/4]
	}
}

func (s *state) addRoundKey(w []word, round int) {
	for c := 0; c < nb; c++ {
		k := w[round*nb+c]
		for r := 0; r < 4; r++ {
			s[r][c] ^= k[r]
		}
	}
}

func (s *state) subBytes() {
	for r := 0; r < 4; r++ {
		for c := 0; c < nb; c++ {
			s[r][c] = sbox[s[r][c]]
		}
	}
}

func (s *state) invSubBytes() {
	for r := 0; r < 4; r++ {
		for c := 0; c < nb; c++ {
			s[r][c] = invSbox[s[r][c]]
		}
	}
}

// shiftRows rotates row r left by r positions.
func (s *state) shiftRows() {
	for r := 1; r < 4; r++ {
		var row [nb]byte
		for c := 0; c < nb; c++ {
			row[c] = s[r][(c+r)%nb]
		}
		s[r] = row
	}
}

func (s *state) invShiftRows() {
	for r := 1; r < 4; r++ {
		var row [nb]byte
		for c := 0; c < nb; c++ {
			row[(c+r)%nb] = s[r][c]
		}
		s[r] = row
	}
}

func (s *state) mixColumns() {
	for c := 0; c < nb; c++ {
		s0, s1, s2, s3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = mul2(s0) ^ mul3(s1) ^ s2 ^ s3
		s[1][c] = s0 ^ mul2(s1) ^ mul3(s2) ^ s3
		s[2][c] = s0 ^ s1 ^ mul2(s2) ^ mul3(s3)
		s[3][c] = mul3(s0) ^ s1 ^ s2 ^ mul2(s3)
	}
}

func (s *state) invMixColumns() {
	for c := 0; c < nb; c++ {
		s0, s1, s2, s3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = mul14(s0) ^ mul11(s1) ^ mul13(s2) ^ mul9(s3)
		s[1][c] = mul9(s0) ^ mul14(s1) ^ mul11(s2) ^ mul13(s3)
		s[2][c] = mul13(s0) ^ mul9(s1) ^ mul14(s2) ^ mul11(s3)
		s[3][c] = mul11(s0) ^ mul13(s1) ^ mul9(s2) ^ mul14(s3)
	}
}
