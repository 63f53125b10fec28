package ecdsa25519

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

const (
	// HashSize is the number of bytes in a SHA-256 digest
	HashSize = 32

	// HMACKeySize is the number of bytes in an HMAC-SHA256 key
	HMACKeySize = 32

	sha256BlockSize = 64
)

// SHA-256 round constants (FIPS 180-4, 4.2.2)
var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// SHA256 represents a streaming SHA-256 hash context.
//
// A context is owned by a single caller. After Finalize it is spent and must
// be re-initialized with Initialize before it can be written to again.
type SHA256 struct {
	s      [8]uint32
	buf    [sha256BlockSize]byte
	nbuf   int
	length uint64 // bits processed, mod 2^64
	spent  bool
}

// NewSHA256 creates a new, initialized SHA-256 hash context
func NewSHA256() *SHA256 {
	h := &SHA256{}
	h.Initialize()
	return h
}

// Initialize resets the context to the FIPS 180-4 initial hash values
func (h *SHA256) Initialize() {
	h.s = [8]uint32{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	}
	h.buf = [sha256BlockSize]byte{}
	h.nbuf = 0
	h.length = 0
	h.spent = false
}

// Write adds data to the hash. Chunking is transparent: any split of the
// same input yields the same digest. It never returns an error; the
// signature lets a context be used as an io.Writer.
func (h *SHA256) Write(data []byte) (int, error) {
	if h.spent {
		panic("SHA-256 context written after Finalize")
	}
	n := len(data)
	h.length += uint64(n) << 3

	if h.nbuf > 0 {
		c := copy(h.buf[h.nbuf:], data)
		h.nbuf += c
		data = data[c:]
		if h.nbuf < sha256BlockSize {
			return n, nil
		}
		sha256Transform(&h.s, h.buf[:])
		h.nbuf = 0
	}

	for len(data) >= sha256BlockSize {
		sha256Transform(&h.s, data[:sha256BlockSize])
		data = data[sha256BlockSize:]
	}

	h.nbuf = copy(h.buf[:], data)
	return n, nil
}

// Finalize pads the message, runs the last one or two compressions and
// writes the big-endian digest to out32 (must be 32 bytes). The context is
// spent afterwards.
func (h *SHA256) Finalize(out32 []byte) {
	if len(out32) != HashSize {
		panic("SHA-256 output must be 32 bytes")
	}
	if h.spent {
		panic("SHA-256 context finalized twice")
	}

	bitLen := h.length

	h.buf[h.nbuf] = 0x80
	h.nbuf++

	// Not enough room for the 64-bit length: pad out this block first
	if h.nbuf > sha256BlockSize-8 {
		for i := h.nbuf; i < sha256BlockSize; i++ {
			h.buf[i] = 0
		}
		sha256Transform(&h.s, h.buf[:])
		h.nbuf = 0
	}

	for i := h.nbuf; i < sha256BlockSize-8; i++ {
		h.buf[i] = 0
	}
	binary.BigEndian.PutUint64(h.buf[sha256BlockSize-8:], bitLen)
	sha256Transform(&h.s, h.buf[:])

	for i := 0; i < 8; i++ {
		binary.BigEndian.PutUint32(out32[i*4:], h.s[i])
	}

	h.spent = true
}

// Sum finalizes the hash and returns the digest as an array
func (h *SHA256) Sum() [HashSize]byte {
	var out [HashSize]byte
	h.Finalize(out[:])
	return out
}

// Clear wipes the context, including buffered input
func (h *SHA256) Clear() {
	memclear(unsafe.Pointer(h), unsafe.Sizeof(*h))
	h.spent = true
}

// SHA256Sum computes the SHA-256 digest of data in one call
func SHA256Sum(data []byte) [HashSize]byte {
	var h SHA256
	h.Initialize()
	h.Write(data)
	return h.Sum()
}

// sha256Transform runs the compression function over one 64-byte block
func sha256Transform(s *[8]uint32, block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		v1 := w[i-2]
		t1 := bits.RotateLeft32(v1, -17) ^ bits.RotateLeft32(v1, -19) ^ (v1 >> 10)
		v2 := w[i-15]
		t2 := bits.RotateLeft32(v2, -7) ^ bits.RotateLeft32(v2, -18) ^ (v2 >> 3)
		w[i] = t1 + w[i-7] + t2 + w[i-16]
	}

	a, b, c, d, e, f, g, hh := s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]

	for i := 0; i < 64; i++ {
		t1 := hh + (bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)) +
			((e & f) ^ (^e & g)) + sha256K[i] + w[i]
		t2 := (bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)) +
			((a & b) ^ (a & c) ^ (b & c))

		hh = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	s[0] += a
	s[1] += b
	s[2] += c
	s[3] += d
	s[4] += e
	s[5] += f
	s[6] += g
	s[7] += hh
}

// HMACSHA256 computes HMAC-SHA256 (RFC 2104) of data under a 32-byte key
// and writes the MAC to mac32. The key is shorter than the block size, so it
// is only zero padded, never hashed.
//
// mac32 may alias key32.
func HMACSHA256(mac32, key32 []byte, data ...[]byte) {
	if len(mac32) != HashSize {
		panic("HMAC output must be 32 bytes")
	}
	if len(key32) != HMACKeySize {
		panic("HMAC key must be 32 bytes")
	}

	var ikey, okey [sha256BlockSize]byte
	for i := 0; i < HMACKeySize; i++ {
		ikey[i] = key32[i] ^ 0x36
		okey[i] = key32[i] ^ 0x5c
	}
	for i := HMACKeySize; i < sha256BlockSize; i++ {
		ikey[i] = 0x36
		okey[i] = 0x5c
	}

	var inner [HashSize]byte
	var h SHA256
	h.Initialize()
	h.Write(ikey[:])
	for _, d := range data {
		h.Write(d)
	}
	h.Finalize(inner[:])

	h.Initialize()
	h.Write(okey[:])
	h.Write(inner[:])
	h.Finalize(mac32)

	memclear(unsafe.Pointer(&ikey), unsafe.Sizeof(ikey))
	memclear(unsafe.Pointer(&okey), unsafe.Sizeof(okey))
	memclear(unsafe.Pointer(&inner), unsafe.Sizeof(inner))
	h.Clear()
}

// RFC6979 implements RFC 6979 deterministic nonce generation with
// HMAC-SHA256, specialised to a 256-bit group order. Since qlen = hlen the
// T accumulation of step h collapses to a single HMAC per candidate.
type RFC6979 struct {
	v [32]byte
	k [32]byte
}

// NewRFC6979 prepares the generator state from a 32-byte secret and a
// 32-byte (already reduced) message hash. The candidate sequence is a pure
// function of these two inputs.
func NewRFC6979(secret32, hash32 []byte) *RFC6979 {
	if len(secret32) != 32 {
		panic("RFC6979 secret must be 32 bytes")
	}
	if len(hash32) != HashSize {
		panic("RFC6979 hash must be 32 bytes")
	}

	rng := &RFC6979{}

	// b. V = 0x01 0x01 ... 0x01
	for i := range rng.v {
		rng.v[i] = 0x01
	}
	// c. K = 0x00 0x00 ... 0x00

	// d. K = HMAC_K(V || 0x00 || x || h1)
	HMACSHA256(rng.k[:], rng.k[:], rng.v[:], []byte{0x00}, secret32, hash32)
	// e. V = HMAC_K(V)
	HMACSHA256(rng.v[:], rng.k[:], rng.v[:])
	// f. K = HMAC_K(V || 0x01 || x || h1)
	HMACSHA256(rng.k[:], rng.k[:], rng.v[:], []byte{0x01}, secret32, hash32)
	// g. V = HMAC_K(V)
	HMACSHA256(rng.v[:], rng.k[:], rng.v[:])

	return rng
}

// Generate draws the next 32-byte candidate into out32 and primes the state
// for a further draw, whether or not the caller accepts this candidate.
func (rng *RFC6979) Generate(out32 []byte) {
	if len(out32) != 32 {
		panic("RFC6979 output must be 32 bytes")
	}

	// h. T = V = HMAC_K(V)
	HMACSHA256(rng.v[:], rng.k[:], rng.v[:])
	copy(out32, rng.v[:])

	// K = HMAC_K(V || 0x00), V = HMAC_K(V)
	HMACSHA256(rng.k[:], rng.k[:], rng.v[:], []byte{0x00})
	HMACSHA256(rng.v[:], rng.k[:], rng.v[:])
}

// next satisfies nonceSource
func (rng *RFC6979) next() [32]byte {
	var out [32]byte
	rng.Generate(out[:])
	return out
}

// Clear wipes the generator state
func (rng *RFC6979) Clear() {
	memclear(unsafe.Pointer(rng), unsafe.Sizeof(*rng))
}

// memclear clears memory to prevent leaking sensitive information
func memclear(ptr unsafe.Pointer, n uintptr) {
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(uintptr(ptr) + i)) = 0
	}
}
