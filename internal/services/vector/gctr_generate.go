package vector

import (
	"fmt"

	"aesgcm/aes"
	"aesgcm/gcm"
	"aesgcm/internal/util"
)

type GCTRParams struct {
	KeyHex   string `json:"key_hex,omitempty"`   // 16, 24, 32 bytes (hex)
	ICBHex   string `json:"icb_hex,omitempty"`   // 16 bytes (hex)
	InputHex string `json:"input_hex,omitempty"` // generated if empty
	Size     int    `json:"size,omitempty"`      // bytes for random input
}

// GenerateGCTR runs the GCM counter-mode primitive on AES. Empty key, ICB or
// input are filled with random bytes; the returned params carry what was used.
func GenerateGCTR(p GCTRParams) (outputHex string, used GCTRParams, err error) {
	var key []byte
	if p.KeyHex != "" {
		if key, err = util.DecodeHex("key_hex", p.KeyHex); err != nil {
			return "", p, err
		}
	} else if key, err = randBytes(32); err != nil {
		return "", p, err
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		return "", p, err
	}

	var icb []byte
	if p.ICBHex != "" {
		if icb, err = util.DecodeHex("icb_hex", p.ICBHex); err != nil {
			return "", p, err
		}
		if len(icb) != aes.BlockSize {
			return "", p, fmt.Errorf("%w: icb must be %d bytes", ErrInvalidParams, aes.BlockSize)
		}
	} else if icb, err = randBytes(aes.BlockSize); err != nil {
		return "", p, err
	}

	var in []byte
	if p.InputHex != "" {
		if in, err = util.DecodeHex("input_hex", p.InputHex); err != nil {
			return "", p, err
		}
	} else {
		if p.Size <= 0 {
			p.Size = 32
		}
		if p.Size > maxGenBytes {
			return "", p, fmt.Errorf("%w: size must be at most %d", ErrInvalidParams, maxGenBytes)
		}
		if in, err = randBytes(p.Size); err != nil {
			return "", p, err
		}
	}

	out, err := gcm.GCTR(c, [aes.BlockSize]byte(icb), in)
	if err != nil {
		return "", p, err
	}
	used = GCTRParams{
		KeyHex:   util.EncodeHex(key),
		ICBHex:   util.EncodeHex(icb),
		InputHex: util.EncodeHex(in),
	}
	return util.EncodeHex(out), used, nil
}
