package csa

import "math/bits"

// RankBitVector is a fixed bit-vector with O(1) rank-1 queries via a dense
// prefix-popcount table, used for the document-boundary bit-vector (DBS):
// one set bit at each position where a new document begins.
type RankBitVector struct {
	words []uint64
	n     int
	// prefix[i] is the number of set bits in words[0:i].
	prefix []int
}

// NewRankBitVector builds a bit-vector of length n with bits at the given
// set positions turned on.
func NewRankBitVector(n int, setBits []int) *RankBitVector {
	words := make([]uint64, (n+63)/64)
	for _, b := range setBits {
		words[b/64] |= 1 << uint(b%64)
	}
	prefix := make([]int, len(words)+1)
	for i, w := range words {
		prefix[i+1] = prefix[i] + bits.OnesCount64(w)
	}
	return &RankBitVector{words: words, n: n, prefix: prefix}
}

// Len returns the bit-vector's length.
func (bv *RankBitVector) Len() int { return bv.n }

// Get returns the bit at position i.
func (bv *RankBitVector) Get(i int) bool {
	return bv.words[i/64]&(1<<uint(i%64)) != 0
}

// Rank1 returns the number of set bits in [0, i).
func (bv *RankBitVector) Rank1(i int) int {
	word := i / 64
	count := bv.prefix[word]
	if rem := i % 64; rem != 0 {
		count += bits.OnesCount64(bv.words[word] & (1<<uint(rem) - 1))
	}
	return count
}

// DocEndsToBitVector converts a Text's document-end offsets into a
// RankBitVector marking each document's start position, for use as the DBS.
func DocEndsToBitVector(t *Text) *RankBitVector {
	sets := make([]int, 0, len(t.DocEnds))
	start := 0
	for _, end := range t.DocEnds {
		sets = append(sets, start)
		start = int(end)
	}
	return NewRankBitVector(t.Len(), sets)
}
