package gapmatch

import (
	"testing"

	"github.com/gapidx/gapmatch/csa"
	"github.com/gapidx/gapmatch/qgram"
	"github.com/gapidx/gapmatch/query"
	"github.com/sourcegraph/log/logtest"
)

func buildTestFacade(t *testing.T, raw string) *Facade {
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
	index := NewIndex(idx)
	filter := qgram.NewFilter(text, qmap)
	return NewFacade(index, text, filter, logtest.Scoped(t))
}

func parseTestPattern(t *testing.T, raw string) *query.Pattern {
	t.Helper()
	p, err := query.Parse(raw, query.ByteMode)
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	return p
}

func TestFacadeSearchSingleTerm(t *testing.T) {
	facade := buildTestFacade(t, "the quick brown fox jumps over the lazy dog")
	res, _, _ := facade.Search(parseTestPattern(t, "fox"))
	if len(res.Positions) != 1 || res.Positions[0] != 16 {
		t.Fatalf("Positions = %v, want [16]", res.Positions)
	}
}

func TestFacadeSearchTwoTermsGapped(t *testing.T) {
	facade := buildTestFacade(t, "the quick brown fox jumps over the lazy dog")
	res, _, _ := facade.Search(parseTestPattern(t, "quick.*{0,20}fox"))
	if len(res.Positions) != 1 || res.Positions[0] != 4 {
		t.Fatalf("Positions = %v, want [4]", res.Positions)
	}
}

func TestFacadeSearchNoMatch(t *testing.T) {
	facade := buildTestFacade(t, "the quick brown fox jumps over the lazy dog")
	res, _, _ := facade.Search(parseTestPattern(t, "nonexistent"))
	if len(res.Positions) != 0 {
		t.Fatalf("Positions = %v, want none", res.Positions)
	}
}

func TestFacadeSearchSingleTermOverlapping(t *testing.T) {
	// "aa" against "aaaa" has three overlapping occurrences; a single
	// subpattern has no non-overlap invariant to enforce, unlike a gapped
	// multi-term match, so all three must be reported.
	facade := buildTestFacade(t, "aaaa")
	pat := parseTestPattern(t, "aa")

	sa, _ := facade.SearchWithStrategy(pat, StrategySA)
	wc, _ := facade.SearchWithStrategy(pat, StrategyWC)
	equalUint64(t, wc.Positions, sa.Positions)
	if len(sa.Positions) != 3 {
		t.Fatalf("Positions = %v, want 3 overlapping occurrences", sa.Positions)
	}
}

func TestFacadeAllStrategiesAgree(t *testing.T) {
	facade := buildTestFacade(t, "the quick brown fox jumps over the lazy dog while the quick red fox watches")
	pat := parseTestPattern(t, "quick.*{0,15}fox")

	sa, _ := facade.SearchWithStrategy(pat, StrategySA)
	wc, _ := facade.SearchWithStrategy(pat, StrategyWC)
	qg, _ := facade.SearchWithStrategy(pat, StrategyQGram)

	equalUint64(t, wc.Positions, sa.Positions)
	equalUint64(t, qg.Positions, sa.Positions)
}
