package csa

import "sort"

// BWT is the Burrows-Wheeler transform of a Text's suffix array, giving
// backward_search via LF-mapping. Adapted from the rotate-sort-skiplist
// construction for byte strings to an integer alphabet of arbitrary symbol
// values, and backed by per-symbol sorted occurrence lists instead of a
// wavelet tree, since package csa's WaveletTree already serves that role
// for the suffix-array values themselves (see wavelettree.go); BWT only
// needs Rank over its own (much smaller-alphabet-agnostic) last column.
type BWT struct {
	last  []uint64         // last column, L[i] = Symbols[(SA[i]-1+n) % n]
	occ   map[uint64][]int // symbol -> sorted positions in last where it occurs
	first []firstRun       // first column, run-length encoded (always sorted)
}

type firstRun struct {
	symbol uint64
	start  int // inclusive
	end    int // exclusive
}

// BuildBWT constructs the BWT of t from its already-computed suffix array.
func BuildBWT(t *Text, sa []uint32) *BWT {
	n := len(t.Symbols)
	last := make([]uint64, n)
	for i, p := range sa {
		prev := (int(p) - 1 + n) % n
		last[i] = t.Symbols[prev]
	}

	occ := make(map[uint64][]int)
	for i, s := range last {
		occ[s] = append(occ[s], i)
	}

	first := make([]uint64, n)
	for i, p := range sa {
		first[i] = t.Symbols[p]
	}
	runs := make([]firstRun, 0, len(occ))
	i := 0
	for i < n {
		j := i
		for j < n && first[j] == first[i] {
			j++
		}
		runs = append(runs, firstRun{symbol: first[i], start: i, end: j})
		i = j
	}

	return &BWT{last: last, occ: occ, first: runs}
}

// rank returns the number of occurrences of symbol within last[0:i).
func (b *BWT) rank(symbol uint64, i int) int {
	positions := b.occ[symbol]
	return sort.Search(len(positions), func(k int) bool { return positions[k] >= i })
}

func (b *BWT) firstRunFor(symbol uint64) (firstRun, bool) {
	idx := sort.Search(len(b.first), func(k int) bool { return b.first[k].symbol >= symbol })
	if idx < len(b.first) && b.first[idx].symbol == symbol {
		return b.first[idx], true
	}
	return firstRun{}, false
}

// BackwardSearch extends the half-open SA range [sp, ep) one symbol to the
// left by c, returning the updated range and whether it is non-empty.
// Repeated calls from right to left over a pattern implement
// backward_search.
func (b *BWT) BackwardSearch(sp, ep int, c uint64) (int, int, bool) {
	run, ok := b.firstRunFor(c)
	if !ok {
		return 0, 0, false
	}
	newSp := run.start + b.rank(c, sp)
	newEp := run.start + b.rank(c, ep)
	return newSp, newEp, newSp < newEp
}

// Search runs BackwardSearch over pattern (read right to left) starting
// from the full range [0, n), returning the final SA range.
func (b *BWT) Search(pattern []uint64) (int, int, bool) {
	sp, ep := 0, len(b.last)
	for i := len(pattern) - 1; i >= 0; i-- {
		var ok bool
		sp, ep, ok = b.BackwardSearch(sp, ep, pattern[i])
		if !ok {
			return 0, 0, false
		}
	}
	return sp, ep, true
}
