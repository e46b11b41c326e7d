package util

import (
	"errors"
	"fmt"
	"strings"

	fasthex "github.com/tmthrgd/go-hex"
)

var ErrInvalidHex = errors.New("invalid hex")

// normalizeHex strips whitespace and lowercases s.
func normalizeHex(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// DecodeHex decodes a hex field from a request. Empty input yields an empty,
// non-nil slice. name is used in the error.
func DecodeHex(name, s string) ([]byte, error) {
	b, err := fasthex.DecodeString(normalizeHex(s))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrInvalidHex, err)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func EncodeHex(b []byte) string {
	return fasthex.EncodeToString(b)
}
