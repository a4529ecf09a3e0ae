package csa

import "golang.org/x/exp/slices"

// BuildSuffixArray constructs the suffix array of t by prefix doubling:
// O(n log^2 n) comparisons, which is adequate for the collection sizes this
// module targets (succinct, sub-linear-space construction is explicitly out
// of scope, see package doc).
func BuildSuffixArray(t *Text) []uint32 {
	n := len(t.Symbols)
	sa := make([]uint32, n)
	rank := make([]int64, n)
	tmp := make([]int64, n)

	for i := 0; i < n; i++ {
		sa[i] = uint32(i)
		rank[i] = int64(t.Symbols[i])
	}

	for k := 1; k < n; k *= 2 {
		key := func(i uint32) (int64, int64) {
			a := rank[i]
			b := int64(-1)
			if int(i)+k < n {
				b = rank[int(i)+k]
			}
			return a, b
		}
		slices.SortFunc(sa, func(i, j uint32) bool {
			ai, aj := key(i)
			bi, bj := key(j)
			if ai != bi {
				return ai < bi
			}
			return aj < bj
		})

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			a1, a2 := key(sa[i-1])
			b1, b2 := key(sa[i])
			if a1 != b1 || a2 != b2 {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if rank[sa[n-1]] == int64(n-1) {
			break
		}
	}
	return sa
}

// InverseSuffixArray returns isa such that isa[sa[i]] == i, the rank of
// each text position in the suffix array.
func InverseSuffixArray(sa []uint32) []uint32 {
	isa := make([]uint32, len(sa))
	for i, p := range sa {
		isa[p] = uint32(i)
	}
	return isa
}
