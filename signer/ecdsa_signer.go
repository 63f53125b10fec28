package signer

import (
	"errors"

	"ecdsa25519.dev"
)

// Signer holds a key pair and signs 32-byte message hashes with
// deterministic curve25519 ECDSA
type Signer struct {
	seckey    []byte
	pubkey    *ecdsa25519.PublicKey
	hasSecret bool // Whether we have the secret key (if false, can only verify)
}

// NewSigner creates a new Signer instance
func NewSigner() *Signer {
	return &Signer{}
}

// Generate creates a fresh new key pair from system entropy
func (s *Signer) Generate() error {
	seckey, pubkey, err := ecdsa25519.ECKeyPairGenerate()
	if err != nil {
		return err
	}

	s.Zero()
	s.seckey = seckey
	s.pubkey = pubkey
	s.hasSecret = true
	return nil
}

// InitSec initialises the secret (signing) key from the raw bytes, and also derives the public key
func (s *Signer) InitSec(sec []byte) error {
	if len(sec) != ecdsa25519.ScalarSize {
		return ecdsa25519.ErrSecretLength
	}

	pubkey, err := ecdsa25519.ECPubkeyCreate(sec)
	if err != nil {
		return err
	}

	s.Zero()
	s.seckey = append([]byte(nil), sec...)
	s.pubkey = pubkey
	s.hasSecret = true
	return nil
}

// InitPub initializes the public (verification) key from its packed 32 byte form
func (s *Signer) InitPub(pub []byte) error {
	pubkey, err := ecdsa25519.ParsePublicKey(pub)
	if err != nil {
		return err
	}

	s.Zero()
	s.pubkey = pubkey
	return nil
}

// Sec returns the secret key bytes
func (s *Signer) Sec() []byte {
	if !s.hasSecret {
		return nil
	}
	return s.seckey
}

// Pub returns the packed public key bytes
func (s *Signer) Pub() []byte {
	if s.pubkey == nil {
		return nil
	}
	serialized := s.pubkey.Serialize()
	return serialized[:]
}

// Sign creates a signature of a 32-byte message hash using the stored secret key
func (s *Signer) Sign(msg []byte) (sig []byte, err error) {
	if !s.hasSecret {
		return nil, errors.New("no secret key available for signing")
	}

	var compact ecdsa25519.SignatureCompact
	if err := ecdsa25519.ECDSASignCompact(&compact, msg, s.seckey); err != nil {
		return nil, err
	}
	return compact[:], nil
}

// Verify checks a message hash and signature match the stored public key
func (s *Signer) Verify(msg, sig []byte) (valid bool, err error) {
	if s.pubkey == nil {
		return false, errors.New("no public key available for verification")
	}

	parsed, err := ecdsa25519.ParseSignature(sig)
	if err != nil {
		return false, err
	}

	ctx, err := ecdsa25519.NewVerifyContext(msg, parsed)
	if err != nil {
		return false, err
	}
	return ctx.Verify(s.pubkey), nil
}

// Zero wipes the secret key to prevent memory leaks
func (s *Signer) Zero() {
	for i := range s.seckey {
		s.seckey[i] = 0
	}
	s.seckey = nil
	s.pubkey = nil
	s.hasSecret = false
}

// ECDH returns a shared secret derived using Elliptic Curve Diffie-Hellman on the stored secret and provided pubkey
func (s *Signer) ECDH(pub []byte) (secret []byte, err error) {
	if !s.hasSecret {
		return nil, errors.New("no secret key available for ECDH")
	}

	pubkey, err := ecdsa25519.ParsePublicKey(pub)
	if err != nil {
		return nil, err
	}

	var shared [32]byte
	if err := ecdsa25519.ECDH(shared[:], pubkey, s.seckey); err != nil {
		return nil, err
	}
	return shared[:], nil
}
