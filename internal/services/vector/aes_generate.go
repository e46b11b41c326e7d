package vector

import (
	"fmt"
	"strconv"
	"strings"

	"aesgcm/aes"
	"aesgcm/internal/util"
)

type AESTestMode string

const (
	KAT AESTestMode = "KAT"
	MMT AESTestMode = "MMT"
	MCT AESTestMode = "MCT"

	mctIterations = 1000
	mmtMaxBlocks  = 10
)

type AESGenParams struct {
	KeyBits         int  `json:"key_bits"`
	Count           int  `json:"count"`
	IncludeExpected bool `json:"include_expected"`
}

type EncRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	Plaintext  string `json:"plaintext"`
	Ciphertext string `json:"ciphertext,omitempty"`
}

type DecRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	Ciphertext string `json:"ciphertext"`
	Plaintext  string `json:"plaintext,omitempty"`
}

type AESTestVector struct {
	Algorithm string      `json:"algorithm"`
	Mode      string      `json:"mode"`
	TestMode  string      `json:"test_mode"`
	KeyBits   int         `json:"key_bits"`
	Encrypt   []EncRecord `json:"encrypt"`
	Decrypt   []DecRecord `json:"decrypt"`
}

func parseTestMode(test string) (AESTestMode, error) {
	switch AESTestMode(strings.ToUpper(strings.TrimSpace(test))) {
	case KAT:
		return KAT, nil
	case MMT:
		return MMT, nil
	case MCT:
		return MCT, nil
	}
	return "", fmt.Errorf("%w: unsupported test_mode %q", ErrInvalidParams, test)
}

// GenerateAESTestVectors builds ECB records on the local AES. KAT uses the
// all-zero key with random single blocks, MMT random keys with 1..10 block
// messages, and MCT 1000 chained encryptions from a random block.
func GenerateAESTestVectors(test string, p AESGenParams) (AESTestVector, error) {
	if p.Count <= 0 {
		p.Count = 10
	}
	if p.Count > maxGenCount {
		return AESTestVector{}, fmt.Errorf("%w: count must be at most %d", ErrInvalidParams, maxGenCount)
	}
	switch p.KeyBits {
	case 128, 192, 256:
	default:
		return AESTestVector{}, fmt.Errorf("%w: key_bits must be 128/192/256", ErrInvalidParams)
	}
	tmode, err := parseTestMode(test)
	if err != nil {
		return AESTestVector{}, err
	}

	keyLen := p.KeyBits / 8
	out := AESTestVector{
		Algorithm: AlgAES,
		Mode:      "ECB",
		TestMode:  string(tmode),
		KeyBits:   p.KeyBits,
	}

	for i := 0; i < p.Count; i++ {
		var key, pt []byte
		switch tmode {
		case KAT:
			key = make([]byte, keyLen)
			if pt, err = randBytes(aes.BlockSize); err != nil {
				return AESTestVector{}, err
			}
		case MMT:
			if key, err = randBytes(keyLen); err != nil {
				return AESTestVector{}, err
			}
			if pt, err = randBytes(aes.BlockSize * (i%mmtMaxBlocks + 1)); err != nil {
				return AESTestVector{}, err
			}
		case MCT:
			if key, err = randBytes(keyLen); err != nil {
				return AESTestVector{}, err
			}
			if pt, err = randBytes(aes.BlockSize); err != nil {
				return AESTestVector{}, err
			}
		}

		c, err := aes.NewCipher(key)
		if err != nil {
			return AESTestVector{}, err
		}
		var ct []byte
		if tmode == MCT {
			ct, err = monteCarlo(c, pt)
		} else {
			ct, err = ecbEncrypt(c, pt)
		}
		if err != nil {
			return AESTestVector{}, err
		}

		enc := EncRecord{Count: i, KeyHex: util.EncodeHex(key), Plaintext: util.EncodeHex(pt)}
		dec := DecRecord{Count: i, KeyHex: enc.KeyHex, Ciphertext: util.EncodeHex(ct)}
		if p.IncludeExpected {
			enc.Ciphertext = dec.Ciphertext
			dec.Plaintext = enc.Plaintext
		}
		out.Encrypt = append(out.Encrypt, enc)
		out.Decrypt = append(out.Decrypt, dec)
	}
	return out, nil
}

// monteCarlo encrypts pt mctIterations times, feeding each output back in.
// Decrypting the result the same number of times recovers pt.
func monteCarlo(c *aes.Cipher, pt []byte) ([]byte, error) {
	blk := pt
	for j := 0; j < mctIterations; j++ {
		next, err := c.Encrypt(blk)
		if err != nil {
			return nil, err
		}
		blk = next
	}
	return blk, nil
}

func (v AESTestVector) ToTXT() string {
	var b strings.Builder
	b.WriteString("# " + v.Algorithm + " " + v.Mode + " " + v.TestMode + "\n\n")
	b.WriteString("[ENCRYPT]\n\n")
	for _, r := range v.Encrypt {
		b.WriteString("COUNT = " + strconv.Itoa(r.Count) + "\n")
		b.WriteString("KEY = " + strings.ToLower(r.KeyHex) + "\n")
		b.WriteString("PLAINTEXT = " + strings.ToLower(r.Plaintext) + "\n")
		if r.Ciphertext != "" {
			b.WriteString("CIPHERTEXT = " + strings.ToLower(r.Ciphertext) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("[DECRYPT]\n\n")
	for _, r := range v.Decrypt {
		b.WriteString("COUNT = " + strconv.Itoa(r.Count) + "\n")
		b.WriteString("KEY = " + strings.ToLower(r.KeyHex) + "\n")
		b.WriteString("CIPHERTEXT = " + strings.ToLower(r.Ciphertext) + "\n")
		if r.Plaintext != "" {
			b.WriteString("PLAINTEXT = " + strings.ToLower(r.Plaintext) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
