package gcm_test

import (
	"encoding/hex"
	"sync"
	"testing"

	"aesgcm/aes"
	"aesgcm/gcm"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// SP 800-38D test cases from "The Galois/Counter Mode of Operation", McGrew & Viega.
var gcmCases = []struct {
	name string
	key  string
	iv   string
	pt   string
	aad  string
	h    string
	ct   string
	tag  string
}{
	{
		name: "1", key: "00000000000000000000000000000000", iv: "000000000000000000000000",
		h:   "66e94bd4ef8a2c3b884cfa59ca342b2e",
		tag: "58e2fccefa7e3061367f1d57a4e7455a",
	},
	{
		name: "2", key: "00000000000000000000000000000000", iv: "000000000000000000000000",
		pt:  "00000000000000000000000000000000",
		h:   "66e94bd4ef8a2c3b884cfa59ca342b2e",
		ct:  "0388dace60b6a392f328c2b971b2fe78",
		tag: "ab6e47d42cec13bdf53a67b21257bddf",
	},
	{
		name: "3", key: "feffe9928665731c6d6a8f9467308308", iv: "cafebabefacedbaddecaf888",
		pt: "d9313225f88406e5a55909c5aff5269a86a7a9531534f7da2e4c303d8a318a72" +
			"1c3c0c95956809532fcf0e2449a6b525b16aedf5aa0de657ba637b391aafd255",
		h: "b83b533708bf535d0aa6e52980d53b78",
		ct: "42831ec2217774244b7221b784d0d49ce3aa212f2c02a4e035c17e2329aca12e" +
			"21d514b25466931c7d8f6a5aac84aa051ba30b396a0aac973d58e091473f5985",
		tag: "4d5c2af327cd64a62cf35abd2ba6fab4",
	},
	{
		name: "4", key: "feffe9928665731c6d6a8f9467308308", iv: "cafebabefacedbaddecaf888",
		pt: "d9313225f88406e5a55909c5aff5269a86a7a9531534f7da2e4c303d8a318a72" +
			"1c3c0c95956809532fcf0e2449a6b525b16aedf5aa0de657ba637b39",
		aad: "feedfacedeadbeeffeedfacedeadbeefabaddad2",
		h:   "b83b533708bf535d0aa6e52980d53b78",
		ct: "42831ec2217774244b7221b784d0d49ce3aa212f2c02a4e035c17e2329aca12e" +
			"21d514b25466931c7d8f6a5aac84aa051ba30b396a0aac973d58e091",
		tag: "5bc94fbc3221a5db94fae95ae7121a47",
	},
	{
		name: "7", key: "000000000000000000000000000000000000000000000000", iv: "000000000000000000000000",
		h:   "aae06992acbf52a3e8f4a96ec9300bd7",
		tag: "cd33b28ac773f74ba00ed1f312572435",
	},
	{
		name: "8", key: "000000000000000000000000000000000000000000000000", iv: "000000000000000000000000",
		pt:  "00000000000000000000000000000000",
		h:   "aae06992acbf52a3e8f4a96ec9300bd7",
		ct:  "98e7247c07f0fe411c267e4384b0f600",
		tag: "2ff58d80033927ab8ef4d4587514f0fb",
	},
	{
		name: "13", key: "0000000000000000000000000000000000000000000000000000000000000000", iv: "000000000000000000000000",
		h:   "dc95c078a2408989ad48a21492842087",
		tag: "530f8afbc74536b9a963b4f1c4cb738b",
	},
	{
		name: "14", key: "0000000000000000000000000000000000000000000000000000000000000000", iv: "000000000000000000000000",
		pt:  "00000000000000000000000000000000",
		h:   "dc95c078a2408989ad48a21492842087",
		ct:  "cea7403d4d606b6e074ec5d3baf39d18",
		tag: "d0d1c8a799996bf0265b98b5d48ab919",
	},
	{
		name: "16", key: "feffe9928665731c6d6a8f9467308308feffe9928665731c6d6a8f9467308308", iv: "cafebabefacedbaddecaf888",
		pt: "d9313225f88406e5a55909c5aff5269a86a7a9531534f7da2e4c303d8a318a72" +
			"1c3c0c95956809532fcf0e2449a6b525b16aedf5aa0de657ba637b39",
		aad: "feedfacedeadbeeffeedfacedeadbeefabaddad2",
		h:   "acbef20579b4b8ebce889bac8732dad7",
		ct: "522dc1f099567d07f47f37a32a84427d643a8cdcbfe5c0c97598a2bd2555d1aa" +
			"8cb08e48590dbb3da7b08b1056828838c5f61e6393ba7a0abcc9f662",
		tag: "76fc6ece0f4e1768cddf8853bb2d551b",
	},
}

func TestGCM(t *testing.T) {
	spec.Run(t, "GCM", func(t *testing.T, when spec.G, it spec.S) {
		when("encrypting the published test cases", func() {
			it("matches H, ciphertext and tag", func() {
				for _, tc := range gcmCases {
					g, err := gcm.New(unhex(t, tc.key))
					require.NoError(t, err, tc.name)

					h := g.H()
					assert.Equal(t, tc.h, hex.EncodeToString(h[:]), "case %s H", tc.name)

					ct, tag, err := g.Encrypt(unhex(t, tc.pt), unhex(t, tc.iv), unhex(t, tc.aad))
					require.NoError(t, err, tc.name)
					assert.Equal(t, tc.ct, hex.EncodeToString(ct), "case %s ciphertext", tc.name)
					assert.Equal(t, tc.tag, hex.EncodeToString(tag), "case %s tag", tc.name)
				}
			})

			it("returns empty ciphertext for empty plaintext", func() {
				g, err := gcm.New(make([]byte, 16))
				require.NoError(t, err)
				ct, tag, err := g.Encrypt(nil, make([]byte, gcm.IVSize), nil)
				require.NoError(t, err)
				assert.Empty(t, ct)
				assert.Len(t, tag, gcm.TagSize)
			})
		})

		when("decrypting", func() {
			it("recovers the plaintext of every test case", func() {
				for _, tc := range gcmCases {
					g, err := gcm.New(unhex(t, tc.key))
					require.NoError(t, err)
					pt, err := g.Decrypt(unhex(t, tc.ct), unhex(t, tc.iv), unhex(t, tc.aad), unhex(t, tc.tag))
					require.NoError(t, err, tc.name)
					assert.Equal(t, tc.pt, hex.EncodeToString(pt), "case %s", tc.name)
				}
			})

			it("rejects every single-bit flip", func() {
				tc := gcmCases[3]
				g, err := gcm.New(unhex(t, tc.key))
				require.NoError(t, err)

				fields := map[string]int{"ciphertext": 0, "iv": 1, "aad": 2, "tag": 3}
				for name, idx := range fields {
					in := [][]byte{unhex(t, tc.ct), unhex(t, tc.iv), unhex(t, tc.aad), unhex(t, tc.tag)}
					for bit := 0; bit < len(in[idx])*8; bit++ {
						in[idx][bit/8] ^= 1 << (bit % 8)
						pt, err := g.Decrypt(in[0], in[1], in[2], in[3])
						assert.ErrorIs(t, err, gcm.ErrAuthenticationFailure, "%s bit %d", name, bit)
						assert.Nil(t, pt, "%s bit %d", name, bit)
						in[idx][bit/8] ^= 1 << (bit % 8)
					}
				}
			})

			it("checks tag length before the IV", func() {
				g, err := gcm.New(make([]byte, 16))
				require.NoError(t, err)
				_, err = g.Decrypt(nil, make([]byte, 8), nil, make([]byte, 15))
				assert.ErrorIs(t, err, gcm.ErrInvalidTagLength)
				_, err = g.Decrypt(nil, make([]byte, 12), nil, make([]byte, 17))
				assert.ErrorIs(t, err, gcm.ErrInvalidTagLength)
				_, err = g.Decrypt(nil, make([]byte, 13), nil, make([]byte, 16))
				assert.ErrorIs(t, err, gcm.ErrUnsupportedIVLength)
			})
		})

		when("the IV is not 96 bits", func() {
			it("fails encryption with ErrUnsupportedIVLength", func() {
				g, err := gcm.New(make([]byte, 16))
				require.NoError(t, err)
				for _, n := range []int{0, 8, 13, 16} {
					_, _, err := g.Encrypt([]byte("x"), make([]byte, n), nil)
					assert.ErrorIs(t, err, gcm.ErrUnsupportedIVLength, "iv length %d", n)
				}
			})
		})

		when("the key is invalid", func() {
			it("passes the block cipher error through", func() {
				_, err := gcm.New(make([]byte, 20))
				assert.ErrorIs(t, err, aes.ErrInvalidKeyLength)
			})
		})

		when("messages have odd lengths", func() {
			it("round-trips every length up to three blocks", func() {
				g, err := gcm.New(unhex(t, "feffe9928665731c6d6a8f9467308308"))
				require.NoError(t, err)
				iv := unhex(t, "cafebabefacedbaddecaf888")
				for n := 0; n <= 48; n++ {
					pt := make([]byte, n)
					for i := range pt {
						pt[i] = byte(i * 7)
					}
					aad := pt[:n/2]
					ct, tag, err := g.Encrypt(pt, iv, aad)
					require.NoError(t, err)
					assert.Len(t, ct, n)
					got, err := g.Decrypt(ct, iv, aad, tag)
					require.NoError(t, err)
					assert.Equal(t, pt, got)
				}
			})
		})
	}, spec.Report(report.Terminal{}))
}

func TestSharedInstanceConcurrentUse(t *testing.T) {
	tc := gcmCases[3] // test case 4: AAD and a partial final block
	require.Equal(t, "4", tc.name)
	g, err := gcm.New(unhex(t, tc.key))
	require.NoError(t, err)
	iv, pt, aad := unhex(t, tc.iv), unhex(t, tc.pt), unhex(t, tc.aad)

	const workers, rounds = 16, 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				ct, tag, err := g.Encrypt(pt, iv, aad)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, tc.ct, hex.EncodeToString(ct))
				assert.Equal(t, tc.tag, hex.EncodeToString(tag))

				back, err := g.Decrypt(ct, iv, aad, tag)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, pt, back)
			}
		}()
	}
	wg.Wait()
}
