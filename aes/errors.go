package aes

import "errors"

var (
	ErrInvalidKeyLength   = errors.New("aes: invalid key length")
	ErrInvalidBlockLength = errors.New("aes: invalid block length")
)
