package vector

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aesgcm/gcm"
	"aesgcm/internal/util"

	goseed "github.com/RyuaNerin/go-krypto/seed"
	"github.com/aead/camellia"
)

const (
	AlgAES      = "AES"
	AlgCamellia = "CAMELLIA"
	AlgSEED     = "SEED"

	maxGenCount = 1000
	maxGenBytes = 1 << 16
)

type GCMGenParams struct {
	KeyBits         int  `json:"key_bits"`
	Count           int  `json:"count"`
	PTLen           int  `json:"pt_len"`  // bytes
	AADLen          int  `json:"aad_len"` // bytes
	IncludeExpected bool `json:"include_expected"`
}

type GCMEncRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	IVHex      string `json:"iv"`
	Plaintext  string `json:"plaintext"`
	AADHex     string `json:"aad"`
	Ciphertext string `json:"ciphertext,omitempty"`
	TagHex     string `json:"tag,omitempty"`
}

type GCMDecRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	IVHex      string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
	AADHex     string `json:"aad"`
	TagHex     string `json:"tag"`
	Plaintext  string `json:"plaintext,omitempty"`
	Fail       bool   `json:"fail,omitempty"`
}

type GCMTestVector struct {
	Algorithm string         `json:"algorithm"`
	Mode      string         `json:"mode"`
	KeyBits   int            `json:"key_bits"`
	IVBits    int            `json:"iv_bits"`
	TagBits   int            `json:"tag_bits"`
	PTBits    int            `json:"pt_bits"`
	AADBits   int            `json:"aad_bits"`
	Expected  bool           `json:"include_expected"`
	Encrypt   []GCMEncRecord `json:"encrypt"`
	Decrypt   []GCMDecRecord `json:"decrypt"`
}

func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

func normalizeAlgorithm(alg string) (string, error) {
	alg = strings.ToUpper(strings.TrimSpace(alg))
	switch alg {
	case "":
		return AlgAES, nil
	case AlgAES, AlgCamellia, AlgSEED:
		return alg, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

// NewGCM builds GCM over the named 128-bit block cipher.
func NewGCM(alg string, key []byte) (*gcm.GCM, error) {
	alg, err := normalizeAlgorithm(alg)
	if err != nil {
		return nil, err
	}
	switch alg {
	case AlgCamellia:
		blk, err := camellia.NewCipher(key)
		if err != nil {
			return nil, err
		}
		b, err := gcm.FromBlock(blk)
		if err != nil {
			return nil, err
		}
		return gcm.NewWithCipher(b)
	case AlgSEED:
		if len(key) != 16 {
			return nil, fmt.Errorf("%w: SEED key must be 16 bytes, got %d", ErrInvalidParams, len(key))
		}
		blk, err := goseed.NewCipher(key)
		if err != nil {
			return nil, err
		}
		b, err := gcm.FromBlock(blk)
		if err != nil {
			return nil, err
		}
		return gcm.NewWithCipher(b)
	default:
		return gcm.New(key)
	}
}

func checkKeyBits(alg string, bits int) error {
	if alg == AlgSEED {
		if bits != 128 {
			return fmt.Errorf("%w: key_bits must be 128 for SEED", ErrInvalidParams)
		}
		return nil
	}
	switch bits {
	case 128, 192, 256:
		return nil
	}
	return fmt.Errorf("%w: key_bits must be 128/192/256", ErrInvalidParams)
}

// GenerateGCMTestVectors produces Count encrypt records and Count decrypt
// records with random keys, IVs, plaintexts and AAD. Every fourth decrypt
// record carries a corrupted tag and has Fail set, whether or not expected
// values are included; use Public before handing the set out.
func GenerateGCMTestVectors(alg string, p GCMGenParams) (GCMTestVector, error) {
	alg, err := normalizeAlgorithm(alg)
	if err != nil {
		return GCMTestVector{}, err
	}
	if p.KeyBits == 0 {
		p.KeyBits = 128
	}
	if err := checkKeyBits(alg, p.KeyBits); err != nil {
		return GCMTestVector{}, err
	}
	if p.Count <= 0 {
		p.Count = 10
	}
	if p.Count > maxGenCount {
		return GCMTestVector{}, fmt.Errorf("%w: count must be at most %d", ErrInvalidParams, maxGenCount)
	}
	if p.PTLen < 0 || p.AADLen < 0 || p.PTLen > maxGenBytes || p.AADLen > maxGenBytes {
		return GCMTestVector{}, fmt.Errorf("%w: pt_len and aad_len must be within 0..%d", ErrInvalidParams, maxGenBytes)
	}

	out := GCMTestVector{
		Algorithm: alg,
		Mode:      "GCM",
		KeyBits:   p.KeyBits,
		IVBits:    gcm.IVSize * 8,
		TagBits:   gcm.TagSize * 8,
		PTBits:    p.PTLen * 8,
		AADBits:   p.AADLen * 8,
		Expected:  p.IncludeExpected,
	}

	sample := func() (key, iv, pt, aad []byte, err error) {
		if key, err = randBytes(p.KeyBits / 8); err != nil {
			return
		}
		if iv, err = randBytes(gcm.IVSize); err != nil {
			return
		}
		if pt, err = randBytes(p.PTLen); err != nil {
			return
		}
		aad, err = randBytes(p.AADLen)
		return
	}

	for i := 0; i < p.Count; i++ {
		key, iv, pt, aad, err := sample()
		if err != nil {
			return GCMTestVector{}, err
		}
		g, err := NewGCM(alg, key)
		if err != nil {
			return GCMTestVector{}, err
		}
		ct, tag, err := g.Encrypt(pt, iv, aad)
		if err != nil {
			return GCMTestVector{}, err
		}
		enc := GCMEncRecord{
			Count:     i,
			KeyHex:    util.EncodeHex(key),
			IVHex:     util.EncodeHex(iv),
			Plaintext: util.EncodeHex(pt),
			AADHex:    util.EncodeHex(aad),
		}
		if p.IncludeExpected {
			enc.Ciphertext = util.EncodeHex(ct)
			enc.TagHex = util.EncodeHex(tag)
		}
		out.Encrypt = append(out.Encrypt, enc)
	}

	for i := 0; i < p.Count; i++ {
		key, iv, pt, aad, err := sample()
		if err != nil {
			return GCMTestVector{}, err
		}
		g, err := NewGCM(alg, key)
		if err != nil {
			return GCMTestVector{}, err
		}
		ct, tag, err := g.Encrypt(pt, iv, aad)
		if err != nil {
			return GCMTestVector{}, err
		}
		corrupt := i%4 == 3
		if corrupt {
			tag[i%len(tag)] ^= 0x01
		}
		dec := GCMDecRecord{
			Count:      i,
			KeyHex:     util.EncodeHex(key),
			IVHex:      util.EncodeHex(iv),
			Ciphertext: util.EncodeHex(ct),
			AADHex:     util.EncodeHex(aad),
			TagHex:     util.EncodeHex(tag),
			Fail:       corrupt,
		}
		if p.IncludeExpected && !corrupt {
			dec.Plaintext = util.EncodeHex(pt)
		}
		out.Decrypt = append(out.Decrypt, dec)
	}
	return out, nil
}

// Public returns the set as handed to a client under test. Without expected
// values the FAIL markers are cleared; the receiver keeps them for storage.
func (v GCMTestVector) Public() GCMTestVector {
	if v.Expected {
		return v
	}
	out := v
	out.Decrypt = make([]GCMDecRecord, len(v.Decrypt))
	for i, d := range v.Decrypt {
		d.Fail = false
		out.Decrypt[i] = d
	}
	return out
}

// ToRSP renders the set in the CAVP gcmEncryptExtIV / gcmDecrypt layout.
func (v GCMTestVector) ToRSP() string {
	var b strings.Builder
	header := func() {
		b.WriteString("[Keylen = " + strconv.Itoa(v.KeyBits) + "]\n")
		b.WriteString("[IVlen = " + strconv.Itoa(v.IVBits) + "]\n")
		b.WriteString("[PTlen = " + strconv.Itoa(v.PTBits) + "]\n")
		b.WriteString("[AADlen = " + strconv.Itoa(v.AADBits) + "]\n")
		b.WriteString("[Taglen = " + strconv.Itoa(v.TagBits) + "]\n\n")
	}
	field := func(k, val string) {
		b.WriteString(k + " = " + strings.ToLower(val) + "\n")
	}

	b.WriteString("# " + v.Algorithm + "-GCM\n\n")
	b.WriteString("[ENCRYPT]\n\n")
	header()
	for _, r := range v.Encrypt {
		field("Count", strconv.Itoa(r.Count))
		field("Key", r.KeyHex)
		field("IV", r.IVHex)
		field("PT", r.Plaintext)
		field("AAD", r.AADHex)
		if v.Expected {
			field("CT", r.Ciphertext)
			field("Tag", r.TagHex)
		}
		b.WriteString("\n")
	}

	b.WriteString("[DECRYPT]\n\n")
	header()
	for _, r := range v.Decrypt {
		field("Count", strconv.Itoa(r.Count))
		field("Key", r.KeyHex)
		field("IV", r.IVHex)
		field("CT", r.Ciphertext)
		field("AAD", r.AADHex)
		field("Tag", r.TagHex)
		switch {
		case !v.Expected:
		case r.Fail:
			b.WriteString("FAIL\n")
		default:
			field("PT", r.Plaintext)
		}
		b.WriteString("\n")
	}
	return b.String()
}
