package ecdsa25519

import (
	"crypto/rand"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedNonces replays fixed nonce candidates and counts draws
type scriptedNonces struct {
	candidates [][32]byte
	draws      int
}

func (s *scriptedNonces) next() [32]byte {
	if s.draws >= len(s.candidates) {
		panic("scripted nonces exhausted")
	}
	c := s.candidates[s.draws]
	s.draws++
	return c
}

func randomBytes32(t testing.TB) []byte {
	t.Helper()
	b := make([]byte, 32)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func newTestKey(t testing.TB) ([]byte, *PublicKey) {
	t.Helper()
	seckey, pubkey, err := ECKeyPairGenerate()
	require.NoError(t, err)
	return seckey, pubkey
}

func TestECDSASignVerify(t *testing.T) {
	for i := 0; i < 8; i++ {
		seckey, pubkey := newTestKey(t)
		msghash := randomBytes32(t)

		var sig Signature
		require.NoError(t, ECDSASign(&sig, msghash, seckey))
		require.NoError(t, sig.Check())
		assert.True(t, ECDSAVerify(&sig, msghash, pubkey), "signature verification failed")

		ctx, err := NewVerifyContext(msghash, &sig)
		require.NoError(t, err)
		assert.True(t, ctx.Verify(pubkey))
		// A context can be reused
		assert.True(t, ctx.Verify(pubkey))

		_, otherPub := newTestKey(t)
		assert.False(t, ctx.Verify(otherPub), "signature verified under a different key")
	}
}

func TestECDSASignDeterministic(t *testing.T) {
	seckey := SHA256Sum([]byte("deterministic secret"))
	sanitizeSecret(seckey[:])
	msghash := SHA256Sum([]byte("message"))

	var a, b SignatureCompact
	require.NoError(t, ECDSASignCompact(&a, msghash[:], seckey[:]))
	require.NoError(t, ECDSASignCompact(&b, msghash[:], seckey[:]))
	assert.Equal(t, a, b)

	other := SHA256Sum([]byte("message 2"))
	var c SignatureCompact
	require.NoError(t, ECDSASignCompact(&c, other[:], seckey[:]))
	assert.NotEqual(t, a, c)
}

func TestECDSAHashReduction(t *testing.T) {
	seckey, pubkey := newTestKey(t)

	// h and h+n reduce to the same scalar and so sign identically
	h := edwards25519.NewScalar().Set(scalarReduce(randomBytes32(t)))
	hb := h.Bytes()
	// n = 2^252 + 27742317777372353535851937790883648493, little endian
	order := []byte{
		0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
		0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
	}
	var shifted [32]byte
	var carry uint16
	for i := 0; i < 32; i++ {
		v := uint16(hb[i]) + uint16(order[i]) + carry
		shifted[i] = byte(v)
		carry = v >> 8
	}
	require.Zero(t, carry)

	var a, b SignatureCompact
	require.NoError(t, ECDSASignCompact(&a, hb, seckey))
	require.NoError(t, ECDSASignCompact(&b, shifted[:], seckey))
	assert.Equal(t, a, b)
	assert.True(t, ECDSAVerifyCompact(&b, shifted[:], pubkey))
}

func TestECDSATamper(t *testing.T) {
	seckey, pubkey := newTestKey(t)
	msghash := randomBytes32(t)

	var compact SignatureCompact
	require.NoError(t, ECDSASignCompact(&compact, msghash, seckey))
	require.True(t, ECDSAVerifyCompact(&compact, msghash, pubkey))

	// Flip a spread of bits in the hash
	for _, bit := range []int{0, 7, 64, 130, 251, 255} {
		tampered := append([]byte(nil), msghash...)
		tampered[bit/8] ^= 1 << (bit % 8)
		assert.False(t, ECDSAVerifyCompact(&compact, tampered, pubkey), "hash bit %d", bit)
	}

	// Flip bits in r and s; results that are no longer canonical are
	// rejected at parse time, which also counts as a failed verification
	for _, bit := range []int{0, 9, 100, 200, 251, 256, 300, 400, 507} {
		tampered := compact
		tampered[bit/8] ^= 1 << (bit % 8)
		assert.False(t, ECDSAVerifyCompact(&tampered, msghash, pubkey), "signature bit %d", bit)
	}
}

func TestECDSAZeroComponents(t *testing.T) {
	seckey, pubkey := newTestKey(t)
	msghash := randomBytes32(t)

	var compact SignatureCompact
	require.NoError(t, ECDSASignCompact(&compact, msghash, seckey))

	zeroR := compact
	copy(zeroR[:32], make([]byte, 32))
	zeroS := compact
	copy(zeroS[32:], make([]byte, 32))
	var zeroBoth SignatureCompact

	for name, c := range map[string]SignatureCompact{"r": zeroR, "s": zeroS, "both": zeroBoth} {
		sig, err := ParseSignature(c[:])
		require.NoError(t, err, name)
		assert.ErrorIs(t, sig.Check(), ErrZeroComponent, name)

		ctx, err := NewVerifyContext(msghash, sig)
		require.NoError(t, err, name)
		assert.False(t, ctx.Verify(pubkey), "zero %s verified", name)
	}

	// With r = s = 0 the verification equation degenerates to 0 == 0
	// for any key; the context must still refuse it
	sig, err := ParseSignature(zeroBoth[:])
	require.NoError(t, err)
	ctx, err := NewVerifyContext(make([]byte, 32), sig)
	require.NoError(t, err)
	assert.False(t, ctx.Verify(pubkey))
}

func TestECDSASignRetriesOnZeroS(t *testing.T) {
	seckey, pubkey := newTestKey(t)
	sec := scalarReduce(seckey)

	var c1, c2 [32]byte
	copy(c1[:], randomBytes32(t))
	copy(c2[:], randomBytes32(t))

	// Pick the hash so that the first nonce gives s = 0:
	// h = -r1 * secret  =>  h + r1 * secret = 0
	var kG edwards25519.Point
	var xbuf [32]byte
	kG.ScalarBaseMult(scalarSanitize(c1[:]))
	pointLegacyX(xbuf[:], &kG)
	r1 := scalarReduce(xbuf[:])
	msg := edwards25519.NewScalar().Multiply(r1, sec)
	msg.Negate(msg)

	nonces := &scriptedNonces{candidates: [][32]byte{c1, c2}}
	var sig Signature
	ecdsaSignWith(&sig, msg, seckey, nonces)

	assert.Equal(t, 2, nonces.draws, "first candidate should have been rejected")
	require.NoError(t, sig.Check())

	kG.ScalarBaseMult(scalarSanitize(c2[:]))
	pointLegacyX(xbuf[:], &kG)
	r2 := scalarReduce(xbuf[:])
	assert.Equal(t, r2.Bytes(), sig.r.Bytes(), "r should come from the second candidate")

	assert.True(t, ECDSAVerify(&sig, msg.Bytes(), pubkey))
}

func TestECDSASignSingleDraw(t *testing.T) {
	seckey, pubkey := newTestKey(t)
	msghash := randomBytes32(t)

	var c [32]byte
	copy(c[:], randomBytes32(t))
	nonces := &scriptedNonces{candidates: [][32]byte{c}}

	var sig Signature
	ecdsaSignWith(&sig, scalarReduce(msghash), seckey, nonces)
	assert.Equal(t, 1, nonces.draws)
	assert.True(t, ECDSAVerify(&sig, msghash, pubkey))
}

func TestECDSABadLengths(t *testing.T) {
	var sig Signature
	assert.ErrorIs(t, ECDSASign(&sig, make([]byte, 31), make([]byte, 32)), ErrHashLength)
	assert.ErrorIs(t, ECDSASign(&sig, make([]byte, 32), make([]byte, 33)), ErrSecretLength)

	_, err := ParseSignature(make([]byte, 63))
	assert.ErrorIs(t, err, ErrSignatureLength)

	_, err = NewVerifyContext(make([]byte, 16), &sig)
	assert.ErrorIs(t, err, ErrHashLength)
}

func TestParseSignatureNonCanonical(t *testing.T) {
	var compact SignatureCompact
	for i := range compact {
		compact[i] = 0xff
	}
	_, err := ParseSignature(compact[:])
	assert.ErrorIs(t, err, ErrSignatureEncoding)
}

func TestSignatureRoundTrip(t *testing.T) {
	seckey, _ := newTestKey(t)
	msghash := randomBytes32(t)

	var sig Signature
	require.NoError(t, ECDSASign(&sig, msghash, seckey))

	compact := sig.Serialize()
	r, s := sig.R(), sig.S()
	assert.Equal(t, r[:], compact[:32])
	assert.Equal(t, s[:], compact[32:])

	parsed, err := ParseSignature(compact[:])
	require.NoError(t, err)
	assert.Equal(t, compact, parsed.Serialize())
}
