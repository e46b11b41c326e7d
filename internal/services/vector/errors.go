package vector

import "errors"

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrInvalidParams        = errors.New("invalid parameters")
)
