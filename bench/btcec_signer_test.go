package bench

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"ecdsa25519.dev/signer"
)

var _ signer.I = (*btcecSigner)(nil)

// btcecSigner implements signer.I with secp256k1 ECDSA from btcec, as a
// reference point for the curve25519 signer. Public keys are 33-byte
// compressed points and signatures are DER encoded.
type btcecSigner struct {
	privKey   *btcec.PrivateKey
	pubKey    *btcec.PublicKey
	hasSecret bool
}

func newBtcecSigner() *btcecSigner {
	return &btcecSigner{}
}

func (s *btcecSigner) Generate() error {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return err
	}
	s.privKey = privKey
	s.pubKey = privKey.PubKey()
	s.hasSecret = true
	return nil
}

func (s *btcecSigner) InitSec(sec []byte) error {
	if len(sec) != 32 {
		return errors.New("secret key must be 32 bytes")
	}
	s.privKey, s.pubKey = btcec.PrivKeyFromBytes(sec)
	s.hasSecret = true
	return nil
}

func (s *btcecSigner) InitPub(pub []byte) error {
	pubKey, err := btcec.ParsePubKey(pub)
	if err != nil {
		return err
	}
	s.pubKey = pubKey
	s.privKey = nil
	s.hasSecret = false
	return nil
}

func (s *btcecSigner) Sec() []byte {
	if !s.hasSecret || s.privKey == nil {
		return nil
	}
	return s.privKey.Serialize()
}

func (s *btcecSigner) Pub() []byte {
	if s.pubKey == nil {
		return nil
	}
	return s.pubKey.SerializeCompressed()
}

func (s *btcecSigner) Sign(msg []byte) (sig []byte, err error) {
	if !s.hasSecret || s.privKey == nil {
		return nil, errors.New("no secret key available for signing")
	}
	if len(msg) != 32 {
		return nil, errors.New("message must be 32 bytes")
	}
	return ecdsa.Sign(s.privKey, msg).Serialize(), nil
}

func (s *btcecSigner) Verify(msg, sig []byte) (valid bool, err error) {
	if s.pubKey == nil {
		return false, errors.New("no public key available for verification")
	}
	if len(msg) != 32 {
		return false, errors.New("message must be 32 bytes")
	}
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false, err
	}
	return signature.Verify(msg, s.pubKey), nil
}

func (s *btcecSigner) Zero() {
	if s.privKey != nil {
		s.privKey.Zero()
		s.privKey = nil
	}
	s.hasSecret = false
	s.pubKey = nil
}

func (s *btcecSigner) ECDH(pub []byte) (secret []byte, err error) {
	if !s.hasSecret || s.privKey == nil {
		return nil, errors.New("no secret key available for ECDH")
	}
	pubKey, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, err
	}
	return btcec.GenerateSharedSecret(s.privKey, pubKey), nil
}
