package ecdsa25519

import (
	"crypto/rand"
	"io"

	"filippo.io/edwards25519"
)

// ECSeckeyGenerate generates a new sanitized secret key from system entropy
func ECSeckeyGenerate() ([]byte, error) {
	return ECSeckeyGenerateFrom(rand.Reader)
}

// ECSeckeyGenerateFrom generates a new sanitized secret key reading 32
// bytes from r
func ECSeckeyGenerateFrom(r io.Reader) ([]byte, error) {
	seckey := make([]byte, ScalarSize)
	if _, err := io.ReadFull(r, seckey); err != nil {
		return nil, err
	}
	sanitizeSecret(seckey)
	return seckey, nil
}

// ECPubkeyCreate computes the public key secret·B for a 32-byte secret
func ECPubkeyCreate(seckey []byte) (*PublicKey, error) {
	if len(seckey) != ScalarSize {
		return nil, ErrSecretLength
	}
	sec := scalarReduce(seckey)
	pub := &PublicKey{}
	pub.p.ScalarBaseMult(sec)
	scalarClear(sec)
	return pub, nil
}

// ECKeyPairGenerate generates a new secret key and its public key
func ECKeyPairGenerate() (seckey []byte, pubkey *PublicKey, err error) {
	seckey, err = ECSeckeyGenerate()
	if err != nil {
		return nil, nil, err
	}

	pubkey, err = ECPubkeyCreate(seckey)
	if err != nil {
		return nil, nil, err
	}

	return seckey, pubkey, nil
}

// ECDH computes SHA-256 of the packed point secret·pub. The peer key must
// already have passed IsValidPubkey.
func ECDH(out32 []byte, pub *PublicKey, seckey []byte) error {
	if len(out32) != HashSize {
		panic("ECDH output must be 32 bytes")
	}
	if len(seckey) != ScalarSize {
		return ErrSecretLength
	}

	sec := scalarReduce(seckey)
	var shared edwards25519.Point
	shared.ScalarMult(sec, &pub.p)
	scalarClear(sec)

	if pointIsIdentity(&shared) {
		return ErrInvalidPubkey
	}

	var h SHA256
	h.Initialize()
	h.Write(shared.Bytes())
	h.Finalize(out32)
	return nil
}
