// Package conformance checks that SA-SEARCH, WC-SEARCH, and QGRAM-FILTER
// agree on the same (text, pattern) pairs, independent of which strategy the
// query façade's cost heuristic would actually pick for a given input.
package conformance

import (
	"testing"

	gapmatch "github.com/gapidx/gapmatch"
	"github.com/gapidx/gapmatch/csa"
	"github.com/gapidx/gapmatch/qgram"
	"github.com/gapidx/gapmatch/query"
	"github.com/google/go-cmp/cmp"
	"github.com/sourcegraph/log/logtest"
)

func buildIndex(t *testing.T, raw string) *gapmatch.Facade {
	t.Helper()
	symbols := make([]uint64, len(raw))
	for i := 0; i < len(raw); i++ {
		symbols[i] = uint64(raw[i]) + 1
	}
	text, err := csa.NewText(symbols, nil)
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	idx := csa.Build(text)
	qmap := qgram.Build(text, 3)
	index := gapmatch.NewIndex(idx)
	filter := qgram.NewFilter(text, qmap)
	return gapmatch.NewFacade(index, text, filter, logtest.Scoped(t))
}

func pat(t *testing.T, raw string) *query.Pattern {
	t.Helper()
	p, err := query.Parse(raw, query.ByteMode)
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	return p
}

func sameResults(t *testing.T, name string, got, want []uint64) {
	t.Helper()
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("%s: positions differ (-want +got):\n%s", name, d)
	}
}

// bruteForce independently verifies every subpattern/gap alignment by
// scanning the whole text, the ground truth every strategy is checked
// against.
func bruteForce(symbols []uint64, p *query.Pattern) []uint64 {
	n := uint64(len(symbols) - 1) // exclude sentinel
	var out []uint64
	matchAt := func(pos uint64, sub []uint64) bool {
		if pos+uint64(len(sub)) > n {
			return false
		}
		for i, s := range sub {
			if symbols[pos+uint64(i)] != s {
				return false
			}
		}
		return true
	}
	for pos := uint64(0); pos < n; pos++ {
		if !matchAt(pos, p.Subpatterns[0]) {
			continue
		}
		if p.NumTerms() == 1 {
			out = append(out, pos)
			continue
		}
		cursor := pos + uint64(len(p.Subpatterns[0]))
		ok := true
		for i := 1; i < p.NumTerms(); i++ {
			gap := p.Gaps[i-1]
			found := false
			lo := cursor + gap.Min
			hi := n
			if gap.Max != query.MaxGap && cursor+gap.Max < hi {
				hi = cursor + gap.Max
			}
			for q := lo; q <= hi && q < n; q++ {
				if matchAt(q, p.Subpatterns[i]) {
					cursor = q + uint64(len(p.Subpatterns[i]))
					found = true
					break
				}
			}
			if !found {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, pos)
		}
	}
	return out
}

// TestStrategiesAgreeOnSelfOverlappingSingleTerm covers a single
// subpattern matching itself back-to-back, e.g. "aaa" against "aaaaa". A
// lone subpattern has no non-overlap rule to enforce, so every brute-force
// position must come back, unlike a gapped multi-term match where each
// strategy's merge deliberately consumes and skips past overlapping
// continuations (covered directly in wildcard_test.go and merger_test.go,
// since bruteForce here checks each start position independently and
// doesn't model that consumption). Both patterns are kept at least as long
// as the q-gram map's q so QGRAM-FILTER has a posting list to anchor on.
func TestStrategiesAgreeOnSelfOverlappingSingleTerm(t *testing.T) {
	const corpus = "aaaaa"

	symbols := make([]uint64, len(corpus)+1)
	for i := 0; i < len(corpus); i++ {
		symbols[i] = uint64(corpus[i]) + 1
	}
	facade := buildIndex(t, corpus)

	strategies := []gapmatch.Strategy{gapmatch.StrategySA, gapmatch.StrategyWC, gapmatch.StrategyQGram}

	for _, raw := range []string{"aaa", "aaaa"} {
		p := pat(t, raw)
		want := bruteForce(symbols, p)

		for _, strategy := range strategies {
			res, _ := facade.SearchWithStrategy(p, strategy)
			sameResults(t, raw+" ["+string(strategy)+"]", res.Positions, want)
		}
	}
}

func TestStrategiesAgreeWithBruteForce(t *testing.T) {
	const corpus = "the quick brown fox jumps over the lazy dog while the quick red fox watches the lazy dog sleep near the river bank"

	symbols := make([]uint64, len(corpus)+1)
	for i := 0; i < len(corpus); i++ {
		symbols[i] = uint64(corpus[i]) + 1
	}
	facade := buildIndex(t, corpus)

	patterns := []string{
		"the",
		"fox",
		"quick.*fox",
		"quick.*{0,10}fox",
		"the.*dog",
		"the.*{0,5}dog",
		"quick.*fox.*dog",
		"quick.*{0,20}fox.*{0,20}dog",
		"zzz",
		"the.*zzz",
	}

	strategies := []gapmatch.Strategy{gapmatch.StrategySA, gapmatch.StrategyWC, gapmatch.StrategyQGram}

	for _, raw := range patterns {
		p := pat(t, raw)
		want := bruteForce(symbols, p)

		for _, strategy := range strategies {
			res, _ := facade.SearchWithStrategy(p, strategy)
			sameResults(t, raw+" ["+string(strategy)+"]", res.Positions, want)
		}
	}
}
