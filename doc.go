// Package bloomy implements a Bloom filter, a space-efficient probabilistic
// data structure for testing set membership.
//
// A Bloom filter answers "possibly in the set" or "definitely not in the
// set". Items can be inserted but never removed, and the more items are
// inserted the higher the probability of a false positive becomes. Fewer than
// 10 bits per item are required for a 1% false positive probability,
// independent of the number or size of the items.
//
// A filter is created for an approximate item capacity and an optional false
// positive rate, or for an exact byte footprint. Filters sharing a
// configuration can be combined with Union and Intersection, compared with
// Similarity and Overlap, and queried for an approximate item count.
//
// # Enhanced double hashing
//
// Bit positions are derived from two keyed murmur3 digests using enhanced
// double hashing:
//
//	g_i(x) = (h1(x) + i*h2(x) + i^3) mod m
//
// Kirsch and Mitzenmacher showed in "Less Hashing, Same Performance: Building
// a Better Bloom Filter" that two hash functions suffice without loss in the
// asymptotic false positive probability.
//
// # Example
//
//	filter := bloomy.New(32)
//
//	filter.Insert([]byte("foo"))
//	filter.Insert([]byte("bar"))
//
//	filter.Contains([]byte("foo")) // true
//	filter.Contains([]byte("baz")) // false
//
//	filter.Count() // 2
package bloomy
