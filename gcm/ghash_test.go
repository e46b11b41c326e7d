package gcm

import (
	"encoding/hex"
	"testing"

	"aesgcm/aes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func element(t *testing.T, s string) uint128.Uint128 {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return loadElement(b)
}

func TestMulIdentity(t *testing.T) {
	// 0x80 00.. is the multiplicative identity in the reflected representation.
	one := uint128.New(0, 1<<63)
	x := element(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	assert.Equal(t, x, mul(x, one))
	assert.Equal(t, x, mul(one, x))
	assert.Equal(t, uint128.Zero, mul(x, uint128.Zero))
}

func TestMulCommutes(t *testing.T) {
	a := element(t, "0388dace60b6a392f328c2b971b2fe78")
	b := element(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	assert.Equal(t, mul(a, b), mul(b, a))
}

func TestGHASH(t *testing.T) {
	// Test case 2: GHASH(H, C || len block)
	var h [aes.BlockSize]byte
	copy(h[:], mustDecode(t, "66e94bd4ef8a2c3b884cfa59ca342b2e"))
	x := mustDecode(t, "0388dace60b6a392f328c2b971b2fe78"+"00000000000000000000000000000080")
	sum, err := GHASH(h, x)
	require.NoError(t, err)
	assert.Equal(t, "f38cbb1ad69223dcc3457ae5b6b0f885", hex.EncodeToString(sum[:]))

	// Test case 3, no AAD
	copy(h[:], mustDecode(t, "b83b533708bf535d0aa6e52980d53b78"))
	x = mustDecode(t, "42831ec2217774244b7221b784d0d49ce3aa212f2c02a4e035c17e2329aca12e"+
		"21d514b25466931c7d8f6a5aac84aa051ba30b396a0aac973d58e091473f5985"+
		"00000000000000000000000000000200")
	sum, err = GHASH(h, x)
	require.NoError(t, err)
	assert.Equal(t, "7f1b32b81b820d02614f8895ac1d4eac", hex.EncodeToString(sum[:]))

	sum, err = GHASH(h, nil)
	require.NoError(t, err)
	assert.Equal(t, [aes.BlockSize]byte{}, sum)

	_, err = GHASH(h, make([]byte, 17))
	assert.ErrorIs(t, err, aes.ErrInvalidBlockLength)
}

func TestAuthInputPadding(t *testing.T) {
	s := authInput([]byte{1, 2, 3}, []byte{4, 5, 6, 7, 8})
	require.Len(t, s, 48)
	assert.Equal(t, []byte{1, 2, 3}, s[:3])
	assert.Equal(t, make([]byte, 13), s[3:16])
	assert.Equal(t, []byte{4, 5, 6, 7, 8}, s[16:21])
	assert.Equal(t, make([]byte, 11), s[21:32])
	assert.Equal(t, "0000000000000018"+"0000000000000028", hex.EncodeToString(s[32:]))

	assert.Len(t, authInput(nil, nil), 16)
	assert.Len(t, authInput(make([]byte, 16), make([]byte, 32)), 64)
}

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
