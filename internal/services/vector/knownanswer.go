package vector

import (
	"fmt"
	"strings"

	"aesgcm/aes"
	"aesgcm/gcm"
	"aesgcm/internal/util"

	"github.com/dolthub/swiss"
)

type AnswerKind string

const (
	KindBlock AnswerKind = "BLOCK"
	KindGCTR  AnswerKind = "GCTR"
	KindGCM   AnswerKind = "GCM"
)

// KnownAnswer is a published vector. IV holds the initial counter block for
// GCTR entries and the 96-bit IV for GCM entries.
type KnownAnswer struct {
	Name   string     `json:"name"`
	Source string     `json:"source"`
	Kind   AnswerKind `json:"kind"`
	Key    string     `json:"key"`
	IV     string     `json:"iv,omitempty"`
	PT     string     `json:"plaintext"`
	AAD    string     `json:"aad,omitempty"`
	CT     string     `json:"ciphertext"`
	Tag    string     `json:"tag,omitempty"`
	H      string     `json:"h,omitempty"`
}

type KnownAnswerResult struct {
	Name        string     `json:"name"`
	Kind        AnswerKind `json:"kind"`
	KeySizeBits int        `json:"key_size_bits"`
	Expected    string     `json:"ciphertext_true"`
	Computed    string     `json:"ciphertext_computed"`
	TagExpected string     `json:"tag_true,omitempty"`
	TagComputed string     `json:"tag_computed,omitempty"`
	OK          bool       `json:"ok"`
	Error       string     `json:"error,omitempty"`
}

type SelfTestReport struct {
	Passed  bool                `json:"passed"`
	Total   int                 `json:"total"`
	Failed  int                 `json:"failed"`
	Results []KnownAnswerResult `json:"results"`
}

const (
	f51Key = "2b7e151628aed2a6abf7158809cf4f3c"
	f1PT   = "6bc1bee22e409f96e93d7e117393172a" +
		"ae2d8a571e03ac9c9eb76fac45af8e51" +
		"30c81c46a35ce411e5fbc1191a0a52ef" +
		"f69f2445df4f9b17ad2b417be66c3710"
	gcmPT = "d9313225f88406e5a55909c5aff5269a86a7a9531534f7da2e4c303d8a318a72" +
		"1c3c0c95956809532fcf0e2449a6b525b16aedf5aa0de657ba637b39"
	zero128 = "00000000000000000000000000000000"
	zero192 = "000000000000000000000000000000000000000000000000"
	zero256 = "0000000000000000000000000000000000000000000000000000000000000000"
	zeroIV  = "000000000000000000000000"
)

var catalogue = []KnownAnswer{
	{Name: "FIPS197-C.1", Source: "FIPS-197 C.1", Kind: KindBlock,
		Key: "000102030405060708090a0b0c0d0e0f", PT: "00112233445566778899aabbccddeeff",
		CT: "69c4e0d86a7b0430d8cdb78070b4c55a"},
	{Name: "FIPS197-C.2", Source: "FIPS-197 C.2", Kind: KindBlock,
		Key: "000102030405060708090a0b0c0d0e0f1011121314151617", PT: "00112233445566778899aabbccddeeff",
		CT: "dda97ca4864cdfe06eaf70a0ec0d7191"},
	{Name: "FIPS197-C.3", Source: "FIPS-197 C.3", Kind: KindBlock,
		Key: "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f", PT: "00112233445566778899aabbccddeeff",
		CT: "8ea2b7ca516745bfeafc49904b496089"},
	{Name: "FIPS197-B", Source: "FIPS-197 Appendix B", Kind: KindBlock,
		Key: f51Key, PT: "3243f6a8885a308d313198a2e0370734",
		CT: "3925841d02dc09fbdc118597196a0b32"},
	{Name: "SP800-38A-F.1.1", Source: "SP 800-38A F.1.1 ECB-AES128.Encrypt", Kind: KindBlock,
		Key: f51Key, PT: f1PT,
		CT: "3ad77bb40d7a3660a89ecaf32466ef97" +
			"f5d3d58503b9699de785895a96fdbaaf" +
			"43b1cd7f598ece23881b00e3ed030688" +
			"7b0c785e27e8ad3f8223207104725dd4"},
	{Name: "SP800-38A-F.1.3", Source: "SP 800-38A F.1.3 ECB-AES192.Encrypt", Kind: KindBlock,
		Key: "8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b", PT: f1PT,
		CT: "bd334f1d6e45f25ff712a214571fa5cc" +
			"974104846d0ad3ad7734ecb3ecee4eef" +
			"ef7afd2270e2e60adce0ba2face6444e" +
			"9a4b41ba738d6c72fb16691603c18e0e"},
	{Name: "SP800-38A-F.1.5", Source: "SP 800-38A F.1.5 ECB-AES256.Encrypt", Kind: KindBlock,
		Key: "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4", PT: f1PT,
		CT: "f3eed1bdb5d2a03c064b5a7e3db181f8" +
			"591ccb10d410ed26dc5ba74a31362870" +
			"b6ed21b99ca6f4f9f153e7b1beafed1d" +
			"23304b7a39f9f3ff067d8d8f9e24ecc7"},
	{Name: "SP800-38A-F.5.1", Source: "SP 800-38A F.5.1 CTR-AES128.Encrypt", Kind: KindGCTR,
		Key: f51Key, IV: "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff", PT: f1PT,
		CT: "874d6191b620e3261bef6864990db6ce" +
			"9806f66b7970fdff8617187bb9fffdff" +
			"5ae4df3edbd5d35e5b4f09020db03eab" +
			"1e031dda2fbe03d1792170a0f3009cee"},
	{Name: "GCM-TC1", Source: "GCM test case 1", Kind: KindGCM,
		Key: zero128, IV: zeroIV,
		H: "66e94bd4ef8a2c3b884cfa59ca342b2e", Tag: "58e2fccefa7e3061367f1d57a4e7455a"},
	{Name: "GCM-TC2", Source: "GCM test case 2", Kind: KindGCM,
		Key: zero128, IV: zeroIV, PT: zero128,
		H: "66e94bd4ef8a2c3b884cfa59ca342b2e", CT: "0388dace60b6a392f328c2b971b2fe78",
		Tag: "ab6e47d42cec13bdf53a67b21257bddf"},
	{Name: "GCM-TC3", Source: "GCM test case 3", Kind: KindGCM,
		Key: "feffe9928665731c6d6a8f9467308308", IV: "cafebabefacedbaddecaf888",
		PT: gcmPT + "1aafd255",
		H:  "b83b533708bf535d0aa6e52980d53b78",
		CT: "42831ec2217774244b7221b784d0d49ce3aa212f2c02a4e035c17e2329aca12e" +
			"21d514b25466931c7d8f6a5aac84aa051ba30b396a0aac973d58e091473f5985",
		Tag: "4d5c2af327cd64a62cf35abd2ba6fab4"},
	{Name: "GCM-TC4", Source: "GCM test case 4", Kind: KindGCM,
		Key: "feffe9928665731c6d6a8f9467308308", IV: "cafebabefacedbaddecaf888",
		PT: gcmPT, AAD: "feedfacedeadbeeffeedfacedeadbeefabaddad2",
		H: "b83b533708bf535d0aa6e52980d53b78",
		CT: "42831ec2217774244b7221b784d0d49ce3aa212f2c02a4e035c17e2329aca12e" +
			"21d514b25466931c7d8f6a5aac84aa051ba30b396a0aac973d58e091",
		Tag: "5bc94fbc3221a5db94fae95ae7121a47"},
	{Name: "GCM-TC7", Source: "GCM test case 7", Kind: KindGCM,
		Key: zero192, IV: zeroIV,
		H: "aae06992acbf52a3e8f4a96ec9300bd7", Tag: "cd33b28ac773f74ba00ed1f312572435"},
	{Name: "GCM-TC8", Source: "GCM test case 8", Kind: KindGCM,
		Key: zero192, IV: zeroIV, PT: zero128,
		H: "aae06992acbf52a3e8f4a96ec9300bd7", CT: "98e7247c07f0fe411c267e4384b0f600",
		Tag: "2ff58d80033927ab8ef4d4587514f0fb"},
	{Name: "GCM-TC13", Source: "GCM test case 13", Kind: KindGCM,
		Key: zero256, IV: zeroIV,
		H: "dc95c078a2408989ad48a21492842087", Tag: "530f8afbc74536b9a963b4f1c4cb738b"},
	{Name: "GCM-TC14", Source: "GCM test case 14", Kind: KindGCM,
		Key: zero256, IV: zeroIV, PT: zero128,
		H: "dc95c078a2408989ad48a21492842087", CT: "cea7403d4d606b6e074ec5d3baf39d18",
		Tag: "d0d1c8a799996bf0265b98b5d48ab919"},
}

var catalogueIndex = buildIndex(catalogue)

func buildIndex(kas []KnownAnswer) *swiss.Map[string, int] {
	m := swiss.NewMap[string, int](uint32(len(kas)))
	for i, ka := range kas {
		m.Put(strings.ToUpper(ka.Name), i)
	}
	return m
}

// KnownAnswers returns a copy of the catalogue.
func KnownAnswers() []KnownAnswer {
	out := make([]KnownAnswer, len(catalogue))
	copy(out, catalogue)
	return out
}

// LookupKnownAnswer finds a vector by name, case-insensitively.
func LookupKnownAnswer(name string) (KnownAnswer, bool) {
	i, ok := catalogueIndex.Get(strings.ToUpper(strings.TrimSpace(name)))
	if !ok {
		return KnownAnswer{}, false
	}
	return catalogue[i], true
}

// RunKnownAnswers computes every catalogue entry with the local AES and GCM code.
func RunKnownAnswers() SelfTestReport {
	return runKnownAnswers(catalogue)
}

func runKnownAnswers(kas []KnownAnswer) SelfTestReport {
	rep := SelfTestReport{Total: len(kas)}
	for _, ka := range kas {
		res := RunKnownAnswer(ka)
		if !res.OK {
			rep.Failed++
		}
		rep.Results = append(rep.Results, res)
	}
	rep.Passed = rep.Failed == 0
	return rep
}

func RunKnownAnswer(ka KnownAnswer) KnownAnswerResult {
	res := KnownAnswerResult{Name: ka.Name, Kind: ka.Kind, Expected: ka.CT, TagExpected: ka.Tag}
	fail := func(err error) KnownAnswerResult {
		res.OK = false
		res.Error = err.Error()
		return res
	}

	key, err := util.DecodeHex("key", ka.Key)
	if err != nil {
		return fail(err)
	}
	res.KeySizeBits = len(key) * 8
	pt, err := util.DecodeHex("plaintext", ka.PT)
	if err != nil {
		return fail(err)
	}

	switch ka.Kind {
	case KindBlock:
		c, err := aes.NewCipher(key)
		if err != nil {
			return fail(err)
		}
		ct, err := ecbEncrypt(c, pt)
		if err != nil {
			return fail(err)
		}
		back, err := ecbDecrypt(c, ct)
		if err != nil {
			return fail(err)
		}
		res.Computed = util.EncodeHex(ct)
		res.OK = res.Computed == ka.CT && util.EncodeHex(back) == ka.PT

	case KindGCTR:
		c, err := aes.NewCipher(key)
		if err != nil {
			return fail(err)
		}
		icb, err := util.DecodeHex("icb", ka.IV)
		if err != nil {
			return fail(err)
		}
		if len(icb) != aes.BlockSize {
			return fail(fmt.Errorf("icb must be %d bytes", aes.BlockSize))
		}
		ct, err := gcm.GCTR(c, [aes.BlockSize]byte(icb), pt)
		if err != nil {
			return fail(err)
		}
		res.Computed = util.EncodeHex(ct)
		res.OK = res.Computed == ka.CT

	case KindGCM:
		g, err := gcm.New(key)
		if err != nil {
			return fail(err)
		}
		iv, err := util.DecodeHex("iv", ka.IV)
		if err != nil {
			return fail(err)
		}
		aad, err := util.DecodeHex("aad", ka.AAD)
		if err != nil {
			return fail(err)
		}
		ct, tag, err := g.Encrypt(pt, iv, aad)
		if err != nil {
			return fail(err)
		}
		res.Computed = util.EncodeHex(ct)
		res.TagComputed = util.EncodeHex(tag)
		h := g.H()
		res.OK = res.Computed == ka.CT && res.TagComputed == ka.Tag &&
			(ka.H == "" || util.EncodeHex(h[:]) == ka.H)
		if res.OK {
			back, err := g.Decrypt(ct, iv, aad, tag)
			if err != nil {
				return fail(err)
			}
			res.OK = util.EncodeHex(back) == ka.PT
		}

	default:
		return fail(fmt.Errorf("unknown kind %q", ka.Kind))
	}
	return res
}

func ecbEncrypt(c *aes.Cipher, pt []byte) ([]byte, error) {
	return ecb(c.Encrypt, pt)
}

func ecbDecrypt(c *aes.Cipher, ct []byte) ([]byte, error) {
	return ecb(c.Decrypt, ct)
}

func ecb(fn func([]byte) ([]byte, error), in []byte) ([]byte, error) {
	if len(in)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ECB input of %d bytes", aes.ErrInvalidBlockLength, len(in))
	}
	out := make([]byte, 0, len(in))
	for off := 0; off < len(in); off += aes.BlockSize {
		blk, err := fn(in[off : off+aes.BlockSize])
		if err != nil {
			return nil, err
		}
		out = append(out, blk...)
	}
	return out, nil
}
