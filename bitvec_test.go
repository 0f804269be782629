package bloomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test that the byte storage grows with the bit capacity.
func TestBitVecLength(t *testing.T) {
	v := NewBitVec(1)
	assert.Equal(t, 1, v.Len())
	assert.Len(t, v.Bytes(), 1)

	v = NewBitVec(8)
	assert.Equal(t, 8, v.Len())
	assert.Len(t, v.Bytes(), 1)

	v = NewBitVec(9)
	assert.Equal(t, 9, v.Len())
	assert.Len(t, v.Bytes(), 2)
}

func TestBitVecEmpty(t *testing.T) {
	assert.True(t, NewBitVec(0).IsEmpty())
	assert.False(t, NewBitVec(1).IsEmpty())
}

func TestBitVecSetFirstBitOnly(t *testing.T) {
	v := NewBitVec(3)
	v.Set(0)

	assert.True(t, v.IsSet(0))
	assert.False(t, v.IsSet(1))
	assert.False(t, v.IsSet(2))
}

func TestBitVecSetLastBitOnly(t *testing.T) {
	v := NewBitVec(9)
	v.Set(8)

	for i := 0; i < 8; i++ {
		assert.False(t, v.IsSet(i))
	}
	assert.True(t, v.IsSet(8))
}

// Indexing at the length must fail; indexing just below it must not.
func TestBitVecBounds(t *testing.T) {
	v := NewBitVec(5)

	assert.Panics(t, func() { v.Set(5) })
	assert.Panics(t, func() { v.IsSet(5) })
	assert.NotPanics(t, func() { v.Set(4) })
	assert.NotPanics(t, func() { v.IsSet(4) })

	assert.Panics(t, func() { NewBitVec(12).IsSet(12) })
}

func TestBitVecSet(t *testing.T) {
	v := NewBitVec(24)
	for i := 0; i < 24; i++ {
		assert.False(t, v.IsSet(i))
	}

	v.Set(0)
	v.Set(7)
	v.Set(8)
	v.Set(23)

	assert.True(t, v.IsSet(0))
	assert.True(t, v.IsSet(7))
	assert.True(t, v.IsSet(8))
	assert.True(t, v.IsSet(23))
	assert.Equal(t, 4, v.CountOnes())
}

// Setting a bit twice must not change the count.
func TestBitVecSetIdempotent(t *testing.T) {
	v := NewBitVec(16)
	v.Set(3)
	v.Set(3)

	assert.Equal(t, 1, v.CountOnes())
	assert.Equal(t, 15, v.CountZeros())
}

func TestBitVecSetEachBitOneByOne(t *testing.T) {
	v := NewBitVec(9)
	assert.Equal(t, 0, v.CountOnes())
	assert.Equal(t, 9, v.CountZeros())

	for i := 0; i < 9; i++ {
		v.Set(i)
		assert.True(t, v.IsSet(i))
		assert.Equal(t, i+1, v.CountOnes())
		assert.Equal(t, 9-(i+1), v.CountZeros())
	}
}

func TestBitVecClear(t *testing.T) {
	v := NewBitVec(12)
	v.Set(0)
	v.Set(11)
	require.Equal(t, 2, v.CountOnes())

	v.Clear()
	assert.Equal(t, 0, v.CountOnes())
	assert.Equal(t, 12, v.Len(), "clearing must not change the length")
}

func TestBitVecUnion(t *testing.T) {
	a := NewBitVec(6)
	a.Set(0)
	a.Set(3)

	b := NewBitVec(6)
	b.Set(2)
	b.Set(3)
	b.Set(5)

	v := a.Union(b)
	assert.Equal(t, 4, v.CountOnes())
	assert.Equal(t, 2, v.CountZeros())
	assert.True(t, v.IsSet(0))
	assert.True(t, v.IsSet(2))
	assert.True(t, v.IsSet(3))
	assert.True(t, v.IsSet(5))

	// The union is at least as full as either input.
	assert.GreaterOrEqual(t, v.CountOnes(), a.CountOnes())
	assert.GreaterOrEqual(t, v.CountOnes(), b.CountOnes())
}

func TestBitVecIntersection(t *testing.T) {
	a := NewBitVec(6)
	a.Set(0)
	a.Set(3)

	b := NewBitVec(6)
	b.Set(2)
	b.Set(3)
	b.Set(5)

	v := a.Intersection(b)
	assert.Equal(t, 1, v.CountOnes())
	assert.Equal(t, 5, v.CountZeros())
	assert.False(t, v.IsSet(0))
	assert.False(t, v.IsSet(2))
	assert.True(t, v.IsSet(3))
	assert.False(t, v.IsSet(5))

	// The intersection is at most as full as either input.
	assert.LessOrEqual(t, v.CountOnes(), a.CountOnes())
	assert.LessOrEqual(t, v.CountOnes(), b.CountOnes())
}

func TestBitVecMergeLengthMismatch(t *testing.T) {
	a := NewBitVec(6)
	b := NewBitVec(7)

	assert.Panics(t, func() { a.Union(b) })
	assert.Panics(t, func() { a.Intersection(b) })
}

func TestBitVecFromBytes(t *testing.T) {
	v := BitVecFromBytes([]byte{0x01, 0x80})

	assert.Equal(t, 16, v.Len())
	assert.True(t, v.IsSet(0))
	assert.True(t, v.IsSet(15))
	assert.Equal(t, 2, v.CountOnes())
	assert.Equal(t, []byte{0x01, 0x80}, v.Bytes())
}

func TestBitVecEqualClone(t *testing.T) {
	a := NewBitVec(10)
	a.Set(1)
	a.Set(9)

	b := a.Clone()
	require.True(t, a.Equal(b))

	// The clone has its own storage.
	b.Set(4)
	assert.False(t, a.Equal(b))
	assert.False(t, a.IsSet(4))

	// Same bytes, different logical length.
	assert.False(t, NewBitVec(9).Equal(NewBitVec(10)))
}

func TestBitVecString(t *testing.T) {
	v := NewBitVec(4)
	v.Set(1)

	assert.Equal(t, "BitVec(0100)", v.String())
}
