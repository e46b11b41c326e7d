package vector

import (
	"strings"
	"testing"

	"aesgcm/aes"
	"aesgcm/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAESTestVectors(t *testing.T) {
	for _, bits := range []int{128, 192, 256} {
		v, err := GenerateAESTestVectors("kat", AESGenParams{KeyBits: bits, Count: 3, IncludeExpected: true})
		require.NoError(t, err)
		assert.Equal(t, "KAT", v.TestMode)
		assert.Equal(t, "ECB", v.Mode)
		require.Len(t, v.Encrypt, 3)
		for i, r := range v.Encrypt {
			assert.Equal(t, strings.Repeat("00", bits/8), r.KeyHex)
			f := decodeAll(t, r.KeyHex, r.Plaintext, r.Ciphertext)
			c, err := aes.NewCipher(f[0])
			require.NoError(t, err)
			ct, err := c.Encrypt(f[1])
			require.NoError(t, err)
			assert.Equal(t, f[2], ct)
			assert.Equal(t, v.Decrypt[i].Plaintext, r.Plaintext)
		}
	}
}

func TestGenerateAESMMT(t *testing.T) {
	v, err := GenerateAESTestVectors("MMT", AESGenParams{KeyBits: 192, Count: 12, IncludeExpected: true})
	require.NoError(t, err)
	for i, r := range v.Decrypt {
		f := decodeAll(t, r.KeyHex, r.Ciphertext, r.Plaintext)
		assert.Len(t, f[1], aes.BlockSize*(i%10+1))
		c, err := aes.NewCipher(f[0])
		require.NoError(t, err)
		pt, err := ecbDecrypt(c, f[1])
		require.NoError(t, err)
		assert.Equal(t, f[2], pt)
	}
}

func TestGenerateAESMCT(t *testing.T) {
	v, err := GenerateAESTestVectors("MCT", AESGenParams{KeyBits: 256, Count: 2, IncludeExpected: true})
	require.NoError(t, err)
	for _, r := range v.Decrypt {
		f := decodeAll(t, r.KeyHex, r.Ciphertext)
		c, err := aes.NewCipher(f[0])
		require.NoError(t, err)
		blk := f[1]
		for j := 0; j < mctIterations; j++ {
			blk, err = c.Decrypt(blk)
			require.NoError(t, err)
		}
		assert.Equal(t, r.Plaintext, util.EncodeHex(blk))
	}
}

func TestGenerateAESErrorsAndText(t *testing.T) {
	_, err := GenerateAESTestVectors("KAT", AESGenParams{KeyBits: 100})
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = GenerateAESTestVectors("VARKEY", AESGenParams{KeyBits: 128})
	assert.ErrorIs(t, err, ErrInvalidParams)

	v, err := GenerateAESTestVectors("KAT", AESGenParams{KeyBits: 128, Count: 1})
	require.NoError(t, err)
	assert.Empty(t, v.Encrypt[0].Ciphertext)
	assert.NotEmpty(t, v.Decrypt[0].Ciphertext)
	txt := v.ToTXT()
	assert.Contains(t, txt, "[ENCRYPT]\n\nCOUNT = 0\nKEY = 00000000000000000000000000000000\n")
	assert.Contains(t, txt, "[DECRYPT]")
	assert.NotContains(t, txt, "PLAINTEXT = \n")
}

func TestGenerateGCTR(t *testing.T) {
	ka, ok := LookupKnownAnswer("SP800-38A-F.5.1")
	require.True(t, ok)

	out, used, err := GenerateGCTR(GCTRParams{KeyHex: strings.ToUpper(ka.Key), ICBHex: ka.IV, InputHex: ka.PT})
	require.NoError(t, err)
	assert.Equal(t, ka.CT, out)
	assert.Equal(t, ka.Key, used.KeyHex)

	out, used, err = GenerateGCTR(GCTRParams{Size: 21})
	require.NoError(t, err)
	assert.Len(t, out, 42)
	back, _, err := GenerateGCTR(GCTRParams{KeyHex: used.KeyHex, ICBHex: used.ICBHex, InputHex: out})
	require.NoError(t, err)
	assert.Equal(t, used.InputHex, back)

	_, _, err = GenerateGCTR(GCTRParams{ICBHex: "00"})
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, _, err = GenerateGCTR(GCTRParams{KeyHex: "0011"})
	assert.ErrorIs(t, err, aes.ErrInvalidKeyLength)
	_, _, err = GenerateGCTR(GCTRParams{InputHex: "xyz"})
	assert.Error(t, err)
}
