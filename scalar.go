package ecdsa25519

import (
	"filippo.io/edwards25519"
)

// ScalarSize is the size of an encoded scalar
const ScalarSize = 32

var (
	scalarZero = edwards25519.NewScalar()

	// scalarOrderMinusOne is n-1 ≡ -1 (mod n)
	scalarOrderMinusOne = edwards25519.NewScalar().Subtract(
		edwards25519.NewScalar(),
		mustCanonicalScalar([ScalarSize]byte{1}),
	)
)

func mustCanonicalScalar(b [ScalarSize]byte) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

// scalarReduce interprets a 32-byte little-endian value as an integer and
// reduces it modulo the group order
func scalarReduce(b32 []byte) *edwards25519.Scalar {
	if len(b32) != ScalarSize {
		panic("scalar must be 32 bytes")
	}
	var wide [64]byte
	copy(wide[:], b32)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return s
}

// scalarSanitize applies the curve25519 secret-scalar clamping to a 32-byte
// value and returns it as a scalar modulo the group order
func scalarSanitize(b32 []byte) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetBytesWithClamping(b32)
	if err != nil {
		panic("scalar must be 32 bytes")
	}
	return s
}

// sanitizeSecret clamps a raw 32-byte secret in place: low three bits
// cleared, bit 255 cleared, bit 254 set
func sanitizeSecret(b32 []byte) {
	b32[0] &= 248
	b32[31] &= 127
	b32[31] |= 64
}

func scalarIsZero(s *edwards25519.Scalar) bool {
	return s.Equal(scalarZero) == 1
}

// scalarClear overwrites a scalar with zero
func scalarClear(s *edwards25519.Scalar) {
	s.Set(scalarZero)
}
