package bloomy

import (
	"fmt"
	"math"

	"github.com/spaolacci/murmur3"
)

// DefaultFalsePositiveRate is the false positive probability used by filters
// that are not constructed with an explicit rate, 1%.
const DefaultFalsePositiveRate = 0.01

// ln(2) squared.
const ln2Sqr = math.Ln2 * math.Ln2

// Seeds used to key the two murmur3 digests. These are fixed constants shared
// by every filter of a given build; two filters hash items identically if and
// only if they carry the same seed pair, which is what makes them comparable.
var hashSeeds = [2]uint32{0x88a81cfb, 0x67ecb1d4}

// Filter is a Bloom filter: a space-efficient set that answers membership
// queries with no false negatives and a bounded false positive rate. Items
// can be inserted but never removed.
//
// A Filter is not safe for concurrent mutation; concurrent reads of an
// unmutated filter are safe.
type Filter struct {
	bits    *BitVec
	nhashes int
	seeds   [2]uint32
}

// New returns a filter sized for the given approximate item capacity at
// DefaultFalsePositiveRate.
func New(capacity int) *Filter {
	return NewWithRate(capacity, DefaultFalsePositiveRate)
}

// NewWithRate returns a filter sized for the given approximate item capacity
// and desired false positive rate.
func NewWithRate(capacity int, fpRate float64) *Filter {
	nbits := OptimalBits(capacity, fpRate)
	nhashes := OptimalHashes(nbits, capacity)

	return &Filter{
		bits:    NewBitVec(nbits),
		nhashes: nhashes,
		seeds:   hashSeeds,
	}
}

// NewWithSize returns a filter with an exact byte footprint. The item
// capacity and hash count are the ones implied by that size at
// DefaultFalsePositiveRate.
func NewWithSize(nbytes int) *Filter {
	nbits := nbytes * 8
	capacity := OptimalCapacity(nbits, DefaultFalsePositiveRate)
	nhashes := OptimalHashes(nbits, capacity)

	return &Filter{
		bits:    NewBitVec(nbits),
		nhashes: nhashes,
		seeds:   hashSeeds,
	}
}

// FilterFromBytes reconstructs a filter from a raw bit vector buffer, as
// returned by Bytes. The buffer carries no metadata, so the hash count is
// re-derived under the DefaultFalsePositiveRate assumption: a filter that was
// originally built with a non-default rate comes back with the same bits but
// possibly a different reported hash count. The buffer is retained, not
// copied.
func FilterFromBytes(b []byte) *Filter {
	bits := BitVecFromBytes(b)
	capacity := OptimalCapacity(bits.Len(), DefaultFalsePositiveRate)
	nhashes := OptimalHashes(bits.Len(), capacity)

	return &Filter{
		bits:    bits,
		nhashes: nhashes,
		seeds:   hashSeeds,
	}
}

// Insert adds an item to the filter. Inserting the same item more than once
// leaves the filter unchanged.
func (f *Filter) Insert(item []byte) {
	h1, h2 := f.itemHashes(item)

	for i := 0; i < f.nhashes; i++ {
		f.bits.Set(int(f.bloomHash(h1, h2, uint64(i))))
	}
}

// Contains reports whether an item is likely in the filter. False positives
// occur with a probability bounded by the configured rate; false negatives
// never occur.
func (f *Filter) Contains(item []byte) bool {
	h1, h2 := f.itemHashes(item)

	for i := 0; i < f.nhashes; i++ {
		if !f.bits.IsSet(int(f.bloomHash(h1, h2, uint64(i)))) {
			return false
		}
	}
	return true
}

// Clear resets the filter to its freshly constructed state.
func (f *Filter) Clear() {
	f.bits.Clear()
}

// Bits returns the length of the underlying bit vector.
func (f *Filter) Bits() int {
	return f.bits.Len()
}

// Hashes returns the number of hash positions derived per item, the `k`
// parameter.
func (f *Filter) Hashes() int {
	return f.nhashes
}

// Count estimates the number of distinct items inserted into the filter. The
// estimate degrades as the bit vector saturates; a fully saturated filter
// reports math.MaxInt.
func (f *Filter) Count() int {
	nbits := float64(f.bits.Len())
	nbitsSet := float64(f.bits.CountOnes())
	if nbitsSet == nbits {
		// The estimator diverges once every bit is set.
		return math.MaxInt
	}
	count := -(nbits / float64(f.nhashes)) * math.Log(1-nbitsSet/nbits)

	return int(math.Round(count))
}

// Union returns a new filter containing every item inserted into either
// input. It panics if the filters are not comparable. The union's false
// positive rate is higher than either input's.
func (f *Filter) Union(other *Filter) *Filter {
	if !f.IsComparable(other) {
		panic("bloomy: unable to union filters with different configurations")
	}
	return &Filter{
		bits:    f.bits.Union(other.bits),
		nhashes: f.nhashes,
		seeds:   f.seeds,
	}
}

// Intersection returns a new filter approximating the items inserted into
// both inputs. It panics if the filters are not comparable. The bitwise AND
// can set positions that correspond to no common item, so the result may
// report false positives that neither input would.
func (f *Filter) Intersection(other *Filter) *Filter {
	if !f.IsComparable(other) {
		panic("bloomy: unable to intersect filters with different configurations")
	}
	return &Filter{
		bits:    f.bits.Intersection(other.bits),
		nhashes: f.nhashes,
		seeds:   f.seeds,
	}
}

// Similarity estimates the Jaccard index of the two underlying sets, the
// ratio of the intersection count to the union count. It panics if the
// filters are not comparable.
func (f *Filter) Similarity(other *Filter) float64 {
	if !f.IsComparable(other) {
		panic("bloomy: unable to compare filters with different configurations")
	}
	intersection := float64(f.Intersection(other).Count())
	union := float64(f.Union(other).Count())

	return intersection / union
}

// Overlap estimates the overlap coefficient of the two underlying sets, the
// ratio of the intersection count to the smaller of the two item counts. It
// panics if the filters are not comparable.
func (f *Filter) Overlap(other *Filter) float64 {
	if !f.IsComparable(other) {
		panic("bloomy: unable to compare filters with different configurations")
	}
	intersection := float64(f.Intersection(other).Count())
	smallest := float64(minInt(f.Count(), other.Count()))

	return intersection / smallest
}

// IsComparable reports whether two filters share the same bit vector length,
// hash count and hash seeds, and may therefore be unioned, intersected and
// compared.
func (f *Filter) IsComparable(other *Filter) bool {
	return f.nhashes == other.nhashes &&
		f.bits.Len() == other.bits.Len() &&
		f.seeds == other.seeds
}

// Bytes returns the filter's raw packed bit vector. There is no header and no
// length prefix; this is the serialized form consumed by FilterFromBytes.
func (f *Filter) Bytes() []byte {
	return f.bits.Bytes()
}

// Equal reports whether two filters have the same bits set and the same hash
// count.
func (f *Filter) Equal(other *Filter) bool {
	return f.bits.Equal(other.bits) && f.nhashes == other.nhashes
}

// Clone returns a copy of the filter with its own bit vector.
func (f *Filter) Clone() *Filter {
	return &Filter{
		bits:    f.bits.Clone(),
		nhashes: f.nhashes,
		seeds:   f.seeds,
	}
}

// String describes the filter's configuration and fill.
func (f *Filter) String() string {
	return fmt.Sprintf("Filter(bits=%d, hashes=%d, set=%d)", f.bits.Len(), f.nhashes, f.bits.CountOnes())
}

// itemHashes computes the two independent 64-bit digests of an item.
func (f *Filter) itemHashes(item []byte) (uint64, uint64) {
	h1 := murmur3.Sum64WithSeed(item, f.seeds[0])
	h2 := murmur3.Sum64WithSeed(item, f.seeds[1])

	return h1, h2
}

// bloomHash derives the i-th bit position from the two digests using
// enhanced double hashing: g_i = h1 + i*h2 + i^3 (mod m).
func (f *Filter) bloomHash(h1, h2, i uint64) uint64 {
	return (h1 + i*h2 + i*i*i) % uint64(f.bits.Len())
}

// OptimalBits returns the bit vector size needed to hold the given number of
// items at the desired false positive rate.
func OptimalBits(capacity int, fpRate float64) int {
	return int(math.Ceil(-(math.Log(fpRate) * float64(capacity)) / ln2Sqr))
}

// OptimalCapacity returns the item capacity implied by a bit vector size and
// a false positive rate. It is the inverse of OptimalBits, rounded to the
// nearest whole item.
func OptimalCapacity(nbits int, fpRate float64) int {
	return int(math.Round(-(float64(nbits) * ln2Sqr) / math.Log(fpRate)))
}

// OptimalHashes returns the number of hash functions to use for a bit vector
// size and an approximate item capacity. Also called `k`. The bits-per-item
// ratio is truncated to a whole number before scaling.
func OptimalHashes(nbits, capacity int) int {
	return int(math.Ceil(float64(nbits/capacity) * math.Ln2))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
