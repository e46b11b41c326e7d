package gcm

import "errors"

var (
	ErrUnsupportedIVLength = errors.New("gcm: unsupported IV length")
	ErrInvalidTagLength    = errors.New("gcm: invalid tag length")
	// ErrAuthenticationFailure carries no detail about the mismatch.
	ErrAuthenticationFailure = errors.New("gcm: message authentication failed")
)
