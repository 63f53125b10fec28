package ecdsa25519

import "errors"

var (
	ErrHashLength      = errors.New("message hash must be 32 bytes")
	ErrSecretLength    = errors.New("secret key must be 32 bytes")
	ErrSignatureLength = errors.New("signature must be 64 bytes")
	ErrPubkeyLength    = errors.New("public key must be 32 bytes")

	// ErrInvalidPubkey is returned for keys that do not decode to a point of
	// the prime-order subgroup; such a key should be skipped, not trusted
	ErrInvalidPubkey = errors.New("invalid public key")

	// ErrSignatureEncoding is returned for signature components that are not
	// canonical scalars
	ErrSignatureEncoding = errors.New("invalid signature: non-canonical scalar")

	// ErrZeroComponent is returned when r or s of a signature is zero
	ErrZeroComponent = errors.New("invalid signature: r or s is zero")

	// ErrAllocation is returned when a set cannot grow; the set is unchanged
	ErrAllocation = errors.New("set allocation failed")

	ErrElementSize = errors.New("element size mismatch")
)
