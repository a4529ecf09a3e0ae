package qgram

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gapidx/gapmatch/csa"
	"golang.org/x/exp/slices"
)

// QGramMap indexes every length-Q substring (q-gram) of a text by its
// occurrence positions.
type QGramMap struct {
	Q        int
	postings map[string]PositionList
}

// qgramKey builds a canonical, alphabet-agnostic key for a q-gram so an
// integer-alphabet text indexes the same way a byte text would.
func qgramKey(symbols []uint64) string {
	var b strings.Builder
	for i, s := range symbols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(s, 10))
	}
	return b.String()
}

// densityThreshold selects a RoaringList once a q-gram's postings are dense
// enough that run-length containers beat a flat array; among the remaining
// lists, sparseThreshold is the minimum length at which Elias-Fano is used.
// Shorter lists use ArrayList, which avoids both encodings' overhead.
const (
	densityThreshold = 0.05 // postings per text position
	sparseThreshold  = 500  // minimum list length before EF pays off
)

// Build scans t for every length-q substring and returns a QGramMap
// choosing a PositionList representation per q-gram based on its density,
// per the polymorphism the search design calls for.
func Build(t *csa.Text, q int) *QGramMap {
	buckets := make(map[string][]uint64)
	n := t.Len() - 1 // exclude sentinel
	for i := 0; i+q <= n; i++ {
		key := qgramKey(t.Symbols[i : i+q])
		buckets[key] = append(buckets[key], uint64(i))
	}

	m := &QGramMap{Q: q, postings: make(map[string]PositionList, len(buckets))}
	for key, positions := range buckets {
		slices.Sort(positions)
		density := float64(len(positions)) / float64(n)
		switch {
		case density >= densityThreshold:
			m.postings[key] = NewRoaringList(positions)
		case len(positions) >= sparseThreshold:
			m.postings[key] = NewEliasFanoList(positions)
		default:
			m.postings[key] = NewArrayList(positions)
		}
	}
	return m
}

// Lookup returns the posting list for a literal's q-gram at the given
// offset within it, and whether one was found.
func (m *QGramMap) Lookup(literal []uint64, offset int) (PositionList, bool) {
	key := qgramKey(literal[offset : offset+m.Q])
	pl, ok := m.postings[key]
	return pl, ok
}

// QGramsOf splits literal into its overlapping q-grams, returning the byte
// offset of each within literal.
func (m *QGramMap) QGramsOf(literal []uint64) []int {
	if len(literal) < m.Q {
		return nil
	}
	offsets := make([]int, 0, len(literal)-m.Q+1)
	for i := 0; i+m.Q <= len(literal); i++ {
		offsets = append(offsets, i)
	}
	return offsets
}

// smallestPosting returns the posting list among candidates with the
// fewest positions, the standard q-gram-filter heuristic for minimizing
// intersection work.
func smallestPosting(lists []PositionList) PositionList {
	best := lists[0]
	for _, l := range lists[1:] {
		if l.Len() < best.Len() {
			best = l
		}
	}
	return best
}

// sortedIntersect reports whether needle occurs in the sorted haystack;
// used by Filter to check a shifted candidate position against another
// q-gram's postings.
func sortedIntersect(haystack []uint64, needle uint64) bool {
	i := sort.Search(len(haystack), func(i int) bool { return haystack[i] >= needle })
	return i < len(haystack) && haystack[i] == needle
}
