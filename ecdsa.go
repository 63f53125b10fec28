package ecdsa25519

import (
	"unsafe"

	"filippo.io/edwards25519"
)

// SignatureSize is the size of the compact r || s wire form
const SignatureSize = 64

// Signature represents an ECDSA signature over the curve25519 group
type Signature struct {
	r, s edwards25519.Scalar
}

// SignatureCompact is the 64-byte wire form of a signature (r || s)
type SignatureCompact [SignatureSize]byte

// ParseSignature decodes the compact r || s form. Components must be
// canonical; zero components are accepted here but never verify.
func ParseSignature(data []byte) (*Signature, error) {
	if len(data) != SignatureSize {
		return nil, ErrSignatureLength
	}
	sig := &Signature{}
	if _, err := sig.r.SetCanonicalBytes(data[:32]); err != nil {
		return nil, ErrSignatureEncoding
	}
	if _, err := sig.s.SetCanonicalBytes(data[32:]); err != nil {
		return nil, ErrSignatureEncoding
	}
	return sig, nil
}

// Serialize returns the compact r || s form
func (sig *Signature) Serialize() SignatureCompact {
	var out SignatureCompact
	copy(out[:32], sig.r.Bytes())
	copy(out[32:], sig.s.Bytes())
	return out
}

// R returns the encoded r component
func (sig *Signature) R() [ScalarSize]byte {
	var out [ScalarSize]byte
	copy(out[:], sig.r.Bytes())
	return out
}

// S returns the encoded s component
func (sig *Signature) S() [ScalarSize]byte {
	var out [ScalarSize]byte
	copy(out[:], sig.s.Bytes())
	return out
}

// nonceSource yields successive 32-byte nonce candidates
type nonceSource interface {
	next() [32]byte
}

// ECDSASign creates a deterministic signature for a 32-byte message hash
// using a 32-byte secret key. The same inputs always give the same
// signature. Errors are only returned for wrongly sized inputs.
func ECDSASign(sig *Signature, msghash32 []byte, seckey []byte) error {
	if len(msghash32) != HashSize {
		return ErrHashLength
	}
	if len(seckey) != ScalarSize {
		return ErrSecretLength
	}

	// Reduce hash (instead of clearing the top bits)
	msg := scalarReduce(msghash32)

	rng := NewRFC6979(seckey, msg.Bytes())
	ecdsaSignWith(sig, msg, seckey, rng)
	rng.Clear()
	return nil
}

// ecdsaSignWith runs the signing loop, drawing nonce candidates until both
// r and s are non-zero
func ecdsaSignWith(sig *Signature, msg *edwards25519.Scalar, seckey []byte, nonces nonceSource) {
	sec := scalarReduce(seckey)
	kinv := edwards25519.NewScalar()
	s := edwards25519.NewScalar()
	var kG edwards25519.Point
	var xbuf [32]byte

	for {
		candidate := nonces.next()
		k := scalarSanitize(candidate[:])
		memclear(unsafe.Pointer(&candidate), unsafe.Sizeof(candidate))

		kinv.Invert(k)
		kG.ScalarBaseMult(k)
		scalarClear(k)

		// r = x(kG) mod n
		pointLegacyX(xbuf[:], &kG)
		r := scalarReduce(xbuf[:])
		if scalarIsZero(r) {
			continue
		}

		// s = k^-1 * (hash + r*secret) mod n
		s.MultiplyAdd(r, sec, msg)
		s.Multiply(kinv, s)
		if scalarIsZero(s) {
			continue
		}

		sig.r.Set(r)
		sig.s.Set(s)
		break
	}

	scalarClear(sec)
	scalarClear(kinv)
	scalarClear(s)
}

// ECDSASignCompact creates a signature in compact form
func ECDSASignCompact(compact *SignatureCompact, msghash32 []byte, seckey []byte) error {
	var sig Signature
	if err := ECDSASign(&sig, msghash32, seckey); err != nil {
		return err
	}
	*compact = sig.Serialize()
	return nil
}

// Check returns ErrZeroComponent if r or s is zero. Such a signature can
// never verify.
func (sig *Signature) Check() error {
	if scalarIsZero(&sig.r) || scalarIsZero(&sig.s) {
		return ErrZeroComponent
	}
	return nil
}
