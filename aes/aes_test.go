package aes_test

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"aesgcm/aes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestKnownAnswers(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		pt     string
		ct     string
		rounds int
	}{
		// FIPS-197 Appendix C
		{"C.1 AES-128", "000102030405060708090a0b0c0d0e0f", "00112233445566778899aabbccddeeff", "69c4e0d86a7b0430d8cdb78070b4c55a", 10},
		{"C.2 AES-192", "000102030405060708090a0b0c0d0e0f1011121314151617", "00112233445566778899aabbccddeeff", "dda97ca4864cdfe06eaf70a0ec0d7191", 12},
		{"C.3 AES-256", "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f", "00112233445566778899aabbccddeeff", "8ea2b7ca516745bfeafc49904b496089", 14},
		// FIPS-197 Appendix B
		{"B cipher example", "2b7e151628aed2a6abf7158809cf4f3c", "3243f6a8885a308d313198a2e0370734", "3925841d02dc09fbdc118597196a0b32", 10},
		// SP 800-38A F.1.1 / F.1.3 / F.1.5, first block
		{"F.1.1 ECB-AES128", "2b7e151628aed2a6abf7158809cf4f3c", "6bc1bee22e409f96e93d7e117393172a", "3ad77bb40d7a3660a89ecaf32466ef97", 10},
		{"F.1.3 ECB-AES192", "8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b", "6bc1bee22e409f96e93d7e117393172a", "bd334f1d6e45f25ff712a214571fa5cc", 12},
		{"F.1.5 ECB-AES256", "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4", "6bc1bee22e409f96e93d7e117393172a", "f3eed1bdb5d2a03c064b5a7e3db181f8", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := aes.NewCipher(mustHex(t, tt.key))
			require.NoError(t, err)
			assert.Equal(t, tt.rounds, c.Rounds())

			ct, err := c.Encrypt(mustHex(t, tt.pt))
			require.NoError(t, err)
			assert.Equal(t, tt.ct, hex.EncodeToString(ct))

			pt, err := c.Decrypt(ct)
			require.NoError(t, err)
			assert.Equal(t, tt.pt, hex.EncodeToString(pt))
		})
	}
}

func TestKeyExpansion(t *testing.T) {
	// FIPS-197 Appendix A: first derived word and final round key
	tests := []struct {
		key   string
		first string
		last  string
	}{
		{"2b7e151628aed2a6abf7158809cf4f3c", "a0fafe17", "d014f9a8c9ee2589e13f0cc8b6630ca6"},
		{"8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b", "fe0c91f7", "e98ba06f448c773c8ecc720401002202"},
		{"603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4", "9ba35411", "fe4890d1e6188d0b046df344706c631e"},
	}
	for _, tt := range tests {
		key := mustHex(t, tt.key)
		c, err := aes.NewCipher(key)
		require.NoError(t, err)

		k0, err := c.RoundKey(0)
		require.NoError(t, err)
		assert.Equal(t, key[:16], k0[:])

		// Nk words in, the first derived word sits at byte offset len(key)
		// of the flattened schedule
		roundIdx := len(key) / 16
		kr, err := c.RoundKey(roundIdx)
		require.NoError(t, err)
		off := len(key) % 16
		assert.Equal(t, tt.first, hex.EncodeToString(kr[off:off+4]))

		kn, err := c.RoundKey(c.Rounds())
		require.NoError(t, err)
		assert.Equal(t, tt.last, hex.EncodeToString(kn[:]))
	}

	c, err := aes.NewCipher(make([]byte, 16))
	require.NoError(t, err)
	_, err = c.RoundKey(11)
	assert.Error(t, err)
	_, err = c.RoundKey(-1)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		key := make([]byte, size)
		_, _ = rand.Read(key)
		c, err := aes.NewCipher(key)
		require.NoError(t, err)
		assert.Equal(t, size, c.KeySize())
		assert.Equal(t, aes.BlockSize, c.BlockSize())

		for i := 0; i < 64; i++ {
			block := make([]byte, aes.BlockSize)
			_, _ = rand.Read(block)
			ct, err := c.Encrypt(block)
			require.NoError(t, err)
			pt, err := c.Decrypt(ct)
			require.NoError(t, err)
			assert.Equal(t, block, pt)
		}
	}
}

func TestEncryptDoesNotAliasInput(t *testing.T) {
	c, err := aes.NewCipher(make([]byte, 16))
	require.NoError(t, err)
	in := make([]byte, aes.BlockSize)
	out, err := c.Encrypt(in)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, aes.BlockSize), in)
	assert.NotEqual(t, in, out)
}

func TestInvalidKeyLength(t *testing.T) {
	for _, n := range []int{0, 1, 8, 15, 17, 20, 23, 25, 31, 33, 64} {
		_, err := aes.NewCipher(make([]byte, n))
		assert.ErrorIs(t, err, aes.ErrInvalidKeyLength, "key length %d", n)
	}
}

func TestInvalidBlockLength(t *testing.T) {
	c, err := aes.NewCipher(make([]byte, 16))
	require.NoError(t, err)
	for _, n := range []int{0, 1, 15, 17, 32} {
		_, err := c.Encrypt(make([]byte, n))
		assert.ErrorIs(t, err, aes.ErrInvalidBlockLength)
		_, err = c.Decrypt(make([]byte, n))
		assert.ErrorIs(t, err, aes.ErrInvalidBlockLength)
	}
}

func TestConcurrentUse(t *testing.T) {
	c, err := aes.NewCipher(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	require.NoError(t, err)
	pt := mustHex(t, "00112233445566778899aabbccddeeff")

	done := make(chan []byte, 16)
	for i := 0; i < cap(done); i++ {
		go func() {
			ct, _ := c.Encrypt(pt)
			done <- ct
		}()
	}
	for i := 0; i < cap(done); i++ {
		assert.Equal(t, "69c4e0d86a7b0430d8cdb78070b4c55a", hex.EncodeToString(<-done))
	}
}
