package ecdsa25519

import (
	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// PublicKeySize is the size of a packed public key
const PublicKeySize = 32

// legacyScale maps an edwards25519 x-coordinate onto the legacy curve model
// 486664*x^2 + y^2 = 1 + 486660*x^2*y^2, i.e. x_legacy = x * sqrt(-1/486664).
var legacyScale = func() *field.Element {
	var a [32]byte
	a[0], a[1], a[2] = 0x08, 0x6d, 0x07 // 486664 = 0x076d08

	u := new(field.Element).Negate(new(field.Element).One())
	v, err := new(field.Element).SetBytes(a[:])
	if err != nil {
		panic(err)
	}
	r, wasSquare := new(field.Element).SqrtRatio(u, v)
	if wasSquare != 1 {
		panic("-1/486664 is not a square")
	}
	return r
}()

// PublicKey is a point of the prime-order subgroup used as a verification key
type PublicKey struct {
	p edwards25519.Point
}

// ParsePublicKey decodes a packed 32-byte public key and checks that it is a
// valid member of the prime-order subgroup
func ParsePublicKey(data []byte) (*PublicKey, error) {
	pub, err := loadPublicKey(data)
	if err != nil {
		return nil, err
	}
	if !IsValidPubkey(pub) {
		return nil, ErrInvalidPubkey
	}
	return pub, nil
}

// loadPublicKey decodes a packed point without the subgroup check
func loadPublicKey(data []byte) (*PublicKey, error) {
	if len(data) != PublicKeySize {
		return nil, ErrPubkeyLength
	}
	p, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return nil, ErrInvalidPubkey
	}
	pub := &PublicKey{}
	pub.p.Set(p)
	return pub, nil
}

// Serialize returns the canonical packed encoding of the key. Two keys that
// decode to the same point always serialize identically.
func (pub *PublicKey) Serialize() [PublicKeySize]byte {
	var out [PublicKeySize]byte
	copy(out[:], pub.p.Bytes())
	return out
}

// Equal reports whether two keys are the same point
func (pub *PublicKey) Equal(other *PublicKey) bool {
	return pub.p.Equal(&other.p) == 1
}

// pointIsIdentity reports whether p is the neutral element
func pointIsIdentity(p *edwards25519.Point) bool {
	return p.Equal(edwards25519.NewIdentityPoint()) == 1
}

// pointLegacyX writes the x-coordinate of p, in the legacy curve model, as
// a canonical little-endian field element
func pointLegacyX(out32 []byte, p *edwards25519.Point) {
	X, _, Z, _ := p.ExtendedCoordinates()
	x := new(field.Element).Invert(Z)
	x.Multiply(x, X)
	x.Multiply(x, legacyScale)
	copy(out32, x.Bytes())
}
