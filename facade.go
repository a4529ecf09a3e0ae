package gapmatch

import (
	"github.com/gapidx/gapmatch/csa"
	"github.com/gapidx/gapmatch/qgram"
	"github.com/gapidx/gapmatch/query"
	"github.com/sourcegraph/log"
	"golang.org/x/exp/slices"
)

// Strategy names one of the three search engines.
type Strategy string

const (
	StrategySA    Strategy = "sa-search"
	StrategyWC    Strategy = "wc-search"
	StrategyQGram Strategy = "qgram-filter"
)

// Facade is the query façade: it parses nothing itself (callers hand it an
// already-parsed *query.Pattern) but owns the cost heuristic that picks a
// search strategy and dispatches to it.
type Facade struct {
	index   *Index
	text    *csa.Text
	qfilter *qgram.Filter
	logger  log.Logger
}

// NewFacade builds a façade over a search-ready Index and its paired
// q-gram filter.
func NewFacade(index *Index, text *csa.Text, qfilter *qgram.Filter, logger log.Logger) *Facade {
	return &Facade{index: index, text: text, qfilter: qfilter, logger: logger}
}

// Search picks a strategy for pat via a cost heuristic and runs it,
// returning match positions in ascending order plus per-query stats.
func (f *Facade) Search(pat *query.Pattern) (*SearchResult, *Stats, Strategy) {
	strategy := f.choose(pat)
	f.logger.Debug("dispatching gapped pattern search",
		log.String("strategy", string(strategy)),
		log.Int("terms", pat.NumTerms()))

	var res *SearchResult
	var stats *Stats
	switch strategy {
	case StrategyQGram:
		res, stats = f.searchQGram(pat)
	case StrategySA:
		res, stats = f.searchSA(pat)
	default:
		res, stats = f.searchWC(pat)
	}
	return res, stats, strategy
}

// SearchWithStrategy runs pat through a specific strategy, bypassing the
// cost heuristic. Exposed for conformance testing and for callers that have
// external knowledge of which strategy suits their workload.
func (f *Facade) SearchWithStrategy(pat *query.Pattern, strategy Strategy) (*SearchResult, *Stats) {
	switch strategy {
	case StrategyQGram:
		return f.searchQGram(pat)
	case StrategyWC:
		return f.searchWC(pat)
	default:
		return f.searchSA(pat)
	}
}

// choose estimates each strategy's candidate-set size without doing the
// full search, and picks the cheapest. WC-SEARCH and SA-SEARCH both cost
// roughly the product of their subpatterns' lexicographic-range sizes;
// QGRAM-FILTER costs roughly its anchor subpattern's smallest q-gram
// posting length. The smaller estimate wins; SA-SEARCH is preferred over
// WC-SEARCH on a tie since its linear merge has lower constant overhead
// than the wavelet-tree walk for small ranges.
func (f *Facade) choose(pat *query.Pattern) Strategy {
	rangeCost := 1
	for _, sub := range pat.Subpatterns {
		sp, ep, ok := f.index.ForwardSearch(sub)
		if !ok {
			return StrategySA // an empty range is cheapest to confirm directly
		}
		rangeCost *= ep - sp
	}

	qgramCost := f.qfilter.EstimateCost(pat)

	if qgramCost < rangeCost {
		return StrategyQGram
	}
	return StrategySA
}

func (f *Facade) searchSA(pat *query.Pattern) (*SearchResult, *Stats) {
	stats := &Stats{}
	lists := make([][]uint64, pat.NumTerms())
	for i, sub := range pat.Subpatterns {
		sp, ep, ok := f.index.ForwardSearch(sub)
		if !ok {
			return &SearchResult{}, stats
		}
		positions := append([]uint32(nil), f.saRange(sp, ep)...)
		slices.Sort(positions)
		lists[i] = toUint64(positions)
	}

	var out []uint64
	switch pat.NumTerms() {
	case 1:
		out = lists[0]
	case 2:
		minGap := pat.Gaps[0].Min + uint64(len(pat.Subpatterns[0]))
		maxGap := addUnlessUnbounded(pat.Gaps[0].Max, len(pat.Subpatterns[0]))
		out = MergeTwo(lists[0], lists[1], minGap, maxGap, uint64(len(pat.Subpatterns[1])))
	default:
		minGap1 := pat.Gaps[0].Min + uint64(len(pat.Subpatterns[0]))
		maxGap1 := addUnlessUnbounded(pat.Gaps[0].Max, len(pat.Subpatterns[0]))
		minGap2 := pat.Gaps[1].Min + uint64(len(pat.Subpatterns[1]))
		maxGap2 := addUnlessUnbounded(pat.Gaps[1].Max, len(pat.Subpatterns[1]))
		out = MergeThree(lists[0], lists[1], lists[2], minGap1, maxGap1, minGap2, maxGap2, uint64(len(pat.Subpatterns[2])))
	}
	return &SearchResult{Positions: out}, stats
}

func (f *Facade) searchWC(pat *query.Pattern) (*SearchResult, *Stats) {
	stats := &Stats{}
	ranges := make([][2]int, pat.NumTerms())
	for i, sub := range pat.Subpatterns {
		sp, ep, ok := f.index.BackwardSearch(sub)
		if !ok {
			return &SearchResult{}, stats
		}
		ranges[i] = [2]int{sp, ep}
	}

	var out []uint64
	switch pat.NumTerms() {
	case 1:
		// A single subpattern has no second term to merge against, so this
		// walks the range directly rather than going through
		// WildcardIter2's non-overlap pull, which would wrongly drop
		// self-overlapping occurrences (e.g. "aa" against "aaaa").
		root := NewCachedNode(f.index, f.index.NodeForRange(ranges[0][0], ranges[0][1]))
		w := NewRangeWalker(root)
		for {
			leaf := w.RetrieveLeafAndTraverse()
			if leaf == nil {
				break
			}
			out = append(out, leaf.Value())
		}
	case 2:
		minGap := pat.Gaps[0].Min + uint64(len(pat.Subpatterns[0]))
		maxGap := addUnlessUnbounded(pat.Gaps[0].Max, len(pat.Subpatterns[0]))
		it := NewWildcardIter2(f.index, ranges[0][0], ranges[0][1], ranges[1][0], ranges[1][1], minGap, maxGap, uint64(len(pat.Subpatterns[1])))
		for it.HasMore() {
			a, _ := it.Current()
			out = append(out, a)
			it.Next()
		}
	default:
		minGap1 := pat.Gaps[0].Min + uint64(len(pat.Subpatterns[0]))
		maxGap1 := addUnlessUnbounded(pat.Gaps[0].Max, len(pat.Subpatterns[0]))
		minGap2 := pat.Gaps[1].Min + uint64(len(pat.Subpatterns[1]))
		maxGap2 := addUnlessUnbounded(pat.Gaps[1].Max, len(pat.Subpatterns[1]))
		it := NewWildcardIter3(f.index,
			ranges[0][0], ranges[0][1], ranges[1][0], ranges[1][1], ranges[2][0], ranges[2][1],
			minGap1, maxGap1, minGap2, maxGap2)
		for it.HasMore() {
			a, _, _ := it.Current()
			out = append(out, a)
			it.Next()
		}
	}
	slices.Sort(out)
	return &SearchResult{Positions: out}, stats
}

func (f *Facade) searchQGram(pat *query.Pattern) (*SearchResult, *Stats) {
	positions, windows, anomalies := f.qfilter.Search(pat)
	slices.Sort(positions)
	positions = slices.Compact(positions)
	return &SearchResult{Positions: positions}, &Stats{VerifyWindows: uint64(windows), QGramMisses: uint64(anomalies)}
}

func (f *Facade) saRange(sp, ep int) []uint32 {
	out := make([]uint32, 0, ep-sp)
	for i := sp; i < ep; i++ {
		out = append(out, f.index.csa.SA[i])
	}
	return out
}

func toUint64(v []uint32) []uint64 {
	out := make([]uint64, len(v))
	for i, x := range v {
		out[i] = uint64(x)
	}
	return out
}

// addUnlessUnbounded folds add into a gap maximum. An unbounded maximum
// becomes a start-to-start distance larger than any text offset, which the
// mergers and wildcard iterators can add to a position without overflowing.
func addUnlessUnbounded(max uint64, add int) uint64 {
	if max == query.MaxGap {
		return 1 << 62
	}
	return max + uint64(add)
}
