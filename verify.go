package ecdsa25519

import (
	"filippo.io/edwards25519"
)

// VerifyContext holds the part of a verification that does not depend on
// the public key, so one hash/signature pair can be checked against many
// candidate keys for one scalar multiplication each. It is immutable once
// created.
type VerifyContext struct {
	s1    edwards25519.Point
	u2    edwards25519.Scalar
	r     edwards25519.Scalar
	valid bool
}

// NewVerifyContext prepares a signature over a 32-byte message hash for
// checking against public keys.
func NewVerifyContext(msghash32 []byte, sig *Signature) (*VerifyContext, error) {
	if len(msghash32) != HashSize {
		return nil, ErrHashLength
	}

	ctx := &VerifyContext{}
	ctx.r.Set(&sig.r)
	// A zero component can never verify; s = 0 has no inverse
	ctx.valid = !scalarIsZero(&sig.r) && !scalarIsZero(&sig.s)

	w := edwards25519.NewScalar().Invert(&sig.s)
	u1 := scalarReduce(msghash32)
	u1.Multiply(u1, w)
	ctx.u2.Multiply(&ctx.r, w)
	ctx.s1.ScalarBaseMult(u1)

	return ctx, nil
}

// Verify checks the prepared signature against a public key. The key must
// already have passed IsValidPubkey; no subgroup check is done here.
func (ctx *VerifyContext) Verify(pub *PublicKey) bool {
	if !ctx.valid {
		return false
	}

	var s2, work edwards25519.Point
	s2.ScalarMult(&ctx.u2, &pub.p)
	work.Add(&ctx.s1, &s2)

	var xbuf [32]byte
	pointLegacyX(xbuf[:], &work)
	w := scalarReduce(xbuf[:])

	tmp := edwards25519.NewScalar().Subtract(&ctx.r, w)
	return scalarIsZero(tmp)
}

// IsValidPubkey reports whether pub is a non-identity member of the
// prime-order subgroup. Every externally supplied key must pass this before
// it is used with Verify or VerifyList.
func IsValidPubkey(pub *PublicKey) bool {
	if pointIsIdentity(&pub.p) {
		return false
	}

	// n·P = (n-1)·P + P should be the identity element
	var work edwards25519.Point
	work.ScalarMult(scalarOrderMinusOne, &pub.p)
	work.Add(&work, &pub.p)
	return pointIsIdentity(&work)
}

// ECDSAVerify verifies a signature against a message hash and public key in
// one step
func ECDSAVerify(sig *Signature, msghash32 []byte, pub *PublicKey) bool {
	ctx, err := NewVerifyContext(msghash32, sig)
	if err != nil {
		return false
	}
	return ctx.Verify(pub)
}

// ECDSAVerifyCompact verifies a compact signature
func ECDSAVerifyCompact(compact *SignatureCompact, msghash32 []byte, pub *PublicKey) bool {
	sig, err := ParseSignature(compact[:])
	if err != nil {
		return false
	}
	return ECDSAVerify(sig, msghash32, pub)
}
