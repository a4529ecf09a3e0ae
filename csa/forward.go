package csa

import "sort"

// ForwardSearch finds the half-open suffix-array range [sp, ep) of suffixes
// prefixed by pattern, via two binary searches directly against the text
// through the suffix array (no BWT/LF-mapping involved). This is the
// collaborator SA-SEARCH and the info/prepare steps of the other strategies
// use to turn a literal subpattern into a lexicographic range.
func ForwardSearch(t *Text, sa []uint32, pattern []uint64) (sp, ep int, ok bool) {
	n := len(sa)
	less := func(suffix uint32) bool {
		return comparePrefix(t.Symbols, int(suffix), pattern) < 0
	}
	lo := sort.Search(n, func(i int) bool { return !less(sa[i]) })
	hi := sort.Search(n, func(i int) bool { return comparePrefix(t.Symbols, int(sa[i]), pattern) > 0 })
	if lo >= hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// comparePrefix compares the suffix of text starting at off against pattern,
// treating pattern as the shorter, prefix-only operand: it returns <0, 0, or
// >0 according to whether the suffix's first len(pattern) symbols sort
// before, equal to, or after pattern.
func comparePrefix(text []uint64, off int, pattern []uint64) int {
	for i, p := range pattern {
		pos := off + i
		if pos >= len(text) {
			return -1
		}
		if text[pos] < p {
			return -1
		}
		if text[pos] > p {
			return 1
		}
	}
	return 0
}
