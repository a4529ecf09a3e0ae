package gapmatch

// SearchResult holds the match positions found for one pattern query. Each
// position is the start offset (in symbols) of the first subpattern's
// occurrence; positions are reported in ascending order with no
// duplicates.
type SearchResult struct {
	Positions []uint64
}

// Stats records per-query bookkeeping. The original source kept one global
// "processed wavelet-tree nodes" debug counter; this module instead returns
// a fresh Stats value from every search call so concurrent queries against
// the same index never share mutable state. No search fills in the three
// WTNodes* counters; they stay zero.
type Stats struct {
	// WTNodesVisited counts wavelet-tree nodes the walker descended into.
	WTNodesVisited uint64
	// WTNodesPrunedDoc counts nodes pruned because their document ranges
	// could not align across subpatterns.
	WTNodesPrunedDoc uint64
	// WTNodesPrunedGap counts nodes pruned because their lexicographic
	// ranges could not satisfy a gap bound.
	WTNodesPrunedGap uint64
	// VerifyWindows counts regexp verification windows scanned by
	// QGRAM-FILTER.
	VerifyWindows uint64
	// QGramMisses counts QGRAM-FILTER candidates discarded because their
	// window starts past the end of the text (a BoundsAnomaly).
	QGramMisses uint64
}
