package bloomy

import (
	"bytes"
	"fmt"
	"math/bits"
	"strings"
)

// BitVec is a packed bit vector backed by a byte slice. Bit index i lives in
// byte i/8 at position i%8, least-significant bit first.
type BitVec struct {
	bytes []byte
	nbits int
}

// NewBitVec creates a zero-filled bit vector of the given capacity, in bits.
// The capacity does not have to be a multiple of 8; unused bits in the last
// byte stay zero and are never addressable.
func NewBitVec(capacity int) *BitVec {
	byteLength := capacity / 8
	if capacity%8 != 0 {
		byteLength++
	}

	return &BitVec{
		bytes: make([]byte, byteLength),
		nbits: capacity,
	}
}

// BitVecFromBytes creates a bit vector backed by the given buffer. The buffer
// is retained, not copied, and the bit length is always len(b)*8.
func BitVecFromBytes(b []byte) *BitVec {
	return &BitVec{
		bytes: b,
		nbits: len(b) * 8,
	}
}

// Len returns the length of the vector in bits.
func (v *BitVec) Len() int {
	return v.nbits
}

// IsEmpty reports whether the vector has a length of zero.
func (v *BitVec) IsEmpty() bool {
	return v.nbits == 0
}

// Clear sets all bits to zero.
func (v *BitVec) Clear() {
	for i := range v.bytes {
		v.bytes[i] = 0
	}
}

// Set sets the bit at the given index to 1. It panics if the index is out of
// range.
func (v *BitVec) Set(index int) {
	if index >= v.nbits || index < 0 {
		panic(fmt.Sprintf("bloomy: index out of bounds: the len is %d but the index is %d", v.nbits, index))
	}
	v.bytes[index/8] |= 1 << (index % 8)
}

// IsSet reports whether the bit at the given index is set. It panics if the
// index is out of range.
func (v *BitVec) IsSet(index int) bool {
	if index >= v.nbits || index < 0 {
		panic(fmt.Sprintf("bloomy: index out of bounds: the len is %d but the index is %d", v.nbits, index))
	}
	return v.bytes[index/8]&(1<<(index%8)) != 0
}

// CountOnes returns the number of bits set to 1.
func (v *BitVec) CountOnes() int {
	var count int
	for _, b := range v.bytes {
		count += bits.OnesCount8(b)
	}
	return count
}

// CountZeros returns the number of bits set to 0.
func (v *BitVec) CountZeros() int {
	return v.nbits - v.CountOnes()
}

// Union returns the bitwise OR of two vectors of identical length as a new
// vector. It panics if the lengths differ.
func (v *BitVec) Union(other *BitVec) *BitVec {
	if v.nbits != other.nbits {
		panic(fmt.Sprintf("bloomy: unable to union bit vectors with different lengths: %d and %d", v.nbits, other.nbits))
	}
	merged := make([]byte, len(v.bytes))
	for i := range v.bytes {
		merged[i] = v.bytes[i] | other.bytes[i]
	}
	return &BitVec{bytes: merged, nbits: v.nbits}
}

// Intersection returns the bitwise AND of two vectors of identical length as
// a new vector. It panics if the lengths differ.
func (v *BitVec) Intersection(other *BitVec) *BitVec {
	if v.nbits != other.nbits {
		panic(fmt.Sprintf("bloomy: unable to intersect bit vectors with different lengths: %d and %d", v.nbits, other.nbits))
	}
	merged := make([]byte, len(v.bytes))
	for i := range v.bytes {
		merged[i] = v.bytes[i] & other.bytes[i]
	}
	return &BitVec{bytes: merged, nbits: v.nbits}
}

// Bytes returns the underlying byte storage, including any unused bits in the
// last byte. The slice is not a copy.
func (v *BitVec) Bytes() []byte {
	return v.bytes
}

// Equal reports whether two vectors have the same length and the same bits
// set.
func (v *BitVec) Equal(other *BitVec) bool {
	return v.nbits == other.nbits && bytes.Equal(v.bytes, other.bytes)
}

// Clone returns a copy of the vector with its own backing storage.
func (v *BitVec) Clone() *BitVec {
	dup := make([]byte, len(v.bytes))
	copy(dup, v.bytes)
	return &BitVec{bytes: dup, nbits: v.nbits}
}

// String renders the vector as a bit string, lowest index first.
func (v *BitVec) String() string {
	var sb strings.Builder
	sb.WriteString("BitVec(")
	for i := 0; i < v.nbits; i++ {
		if v.IsSet(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
