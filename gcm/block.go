package gcm

import (
	"crypto/cipher"
	"fmt"

	"aesgcm/aes"
)

// Block is a 128-bit block cipher in the forward direction. *aes.Cipher
// satisfies it.
type Block interface {
	Encrypt(block []byte) ([]byte, error)
}

type stdBlock struct {
	b cipher.Block
}

// FromBlock adapts a crypto/cipher Block, such as Camellia or SEED, so it can
// drive GCM. Only 16-byte block ciphers are accepted.
func FromBlock(b cipher.Block) (Block, error) {
	if b.BlockSize() != aes.BlockSize {
		return nil, fmt.Errorf("%w: cipher block size %d", aes.ErrInvalidBlockLength, b.BlockSize())
	}
	return stdBlock{b: b}, nil
}

func (s stdBlock) Encrypt(block []byte) ([]byte, error) {
	if len(block) != aes.BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", aes.ErrInvalidBlockLength, len(block))
	}
	out := make([]byte, aes.BlockSize)
	s.b.Encrypt(out, block)
	return out, nil
}
