package ecdsa25519

import (
	"bytes"
	"math"
	"math/bits"
	"unsafe"
)

// Set is an ascending, duplicate-free sequence of fixed-size byte elements,
// ordered by raw byte comparison. It is used to collect unique signatures
// and public keys before batch verification.
//
// Storage grows by doubling and never shrinks. Every size computation is
// overflow checked; a failed Add leaves the set unchanged.
type Set struct {
	elSize  int
	limit   int
	size    int
	content []byte
}

// NewSet creates an empty set for elements of elSize bytes with room for n
// elements
func NewSet(elSize, n int) (*Set, error) {
	if elSize <= 0 {
		return nil, ErrElementSize
	}
	if n < 1 {
		n = 1
	}
	s := &Set{elSize: elSize}
	if err := s.resize(n); err != nil {
		return nil, err
	}
	return s, nil
}

// addCheck returns a+b and false if the sum overflows an int
func addCheck(a, b int) (int, bool) {
	c := a + b
	return c, c >= a
}

// mulCheck returns a*b and false if the product overflows an int
func mulCheck(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// allocBytes allocates n bytes, turning a failed allocation into an error
func allocBytes(n int) (b []byte, err error) {
	defer func() {
		if recover() != nil {
			b, err = nil, ErrAllocation
		}
	}()
	return make([]byte, n), nil
}

func (s *Set) index(i int) []byte {
	off := s.elSize * i
	return s.content[off : off+s.elSize : off+s.elSize]
}

// resize changes the capacity to n elements, keeping the content
func (s *Set) resize(n int) error {
	if n < s.size {
		return ErrAllocation
	}
	allocSize, ok := mulCheck(s.elSize, n)
	if !ok {
		return ErrAllocation
	}

	p, err := allocBytes(allocSize)
	if err != nil {
		return err
	}
	copy(p, s.content[:s.size*s.elSize])

	s.content = p
	s.limit = n
	return nil
}

// incrementSize makes room for one more element, doubling the capacity
// when full
func (s *Set) incrementSize() error {
	newSize, ok := addCheck(s.size, 1)
	if !ok {
		return ErrAllocation
	}

	if s.limit < newSize {
		newLimit, ok := mulCheck(s.limit, 2)
		if !ok {
			return ErrAllocation
		}
		if newLimit < newSize {
			newLimit = newSize
		}
		if err := s.resize(newLimit); err != nil {
			return err
		}
	}

	s.size = newSize
	return nil
}

// search returns the position of el, or the position it would be inserted
// at, and whether it is present
func (s *Set) search(el []byte) (int, bool) {
	min, max := 0, s.size

	for max > min {
		cur := min + (max-min)/2
		cmp := bytes.Compare(s.index(cur), el)

		if cmp == 0 {
			return cur, true
		} else if cmp > 0 {
			max = cur
		} else {
			min = cur + 1
		}
	}

	return min, false
}

// Add inserts el keeping the set sorted. Adding an element that is already
// present is a no-op and succeeds. On ErrAllocation the set is unchanged.
func (s *Set) Add(el []byte) error {
	if len(el) != s.elSize {
		return ErrElementSize
	}

	pos, found := s.search(el)
	if found {
		return nil
	}

	rest := s.size - pos
	if err := s.incrementSize(); err != nil {
		return err
	}

	off := pos * s.elSize
	copy(s.content[off+s.elSize:], s.content[off:off+rest*s.elSize])
	copy(s.content[off:], el)
	return nil
}

// Index returns the position of el and whether it is in the set
func (s *Set) Index(el []byte) (int, bool) {
	if len(el) != s.elSize {
		return 0, false
	}
	return s.search(el)
}

// Contains reports whether el is in the set
func (s *Set) Contains(el []byte) bool {
	_, found := s.Index(el)
	return found
}

// Len returns the number of elements
func (s *Set) Len() int { return s.size }

// Cap returns the number of elements that fit without growing
func (s *Set) Cap() int { return s.limit }

// ElementSize returns the size of one element in bytes
func (s *Set) ElementSize() int { return s.elSize }

// At returns the i-th smallest element. The returned slice aliases the set
// storage and must not be modified.
func (s *Set) At(i int) []byte {
	if i < 0 || i >= s.size {
		panic("set index out of range")
	}
	return s.index(i)
}

// Remove deletes the i-th element, shifting later elements down
func (s *Set) Remove(i int) {
	if i < 0 || i >= s.size {
		panic("set index out of range")
	}

	s.size--
	off := i * s.elSize
	copy(s.content[off:], s.content[off+s.elSize:(s.size+1)*s.elSize])
	last := s.size * s.elSize
	for j := last; j < last+s.elSize; j++ {
		s.content[j] = 0
	}
}

// Each calls fn for every element in ascending order until fn returns false
func (s *Set) Each(fn func(i int, el []byte) bool) {
	for i := 0; i < s.size; i++ {
		if !fn(i, s.index(i)) {
			return
		}
	}
}

// Clear zeroes the storage and empties the set, keeping its capacity
func (s *Set) Clear() {
	if len(s.content) > 0 {
		memclear(unsafe.Pointer(&s.content[0]), uintptr(len(s.content)))
	}
	s.size = 0
}
