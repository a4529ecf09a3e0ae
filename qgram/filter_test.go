package qgram

import (
	"testing"

	"github.com/gapidx/gapmatch/query"
)

func TestFilterSearchSingleTerm(t *testing.T) {
	text := textFromString(t, "the quick brown fox jumps over the lazy dog")
	m := Build(text, 3)
	f := NewFilter(text, m)

	p, err := query.Parse("the", query.ByteMode)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	positions, _, anomalies := f.Search(p)
	if anomalies != 0 {
		t.Fatalf("unexpected anomalies: %d", anomalies)
	}
	want := []uint64{0, 31}
	if len(positions) != len(want) {
		t.Fatalf("positions = %v, want %v", positions, want)
	}
	for i := range want {
		if positions[i] != want[i] {
			t.Fatalf("positions = %v, want %v", positions, want)
		}
	}
}

func TestFilterSearchTwoTermsWithGap(t *testing.T) {
	text := textFromString(t, "the quick brown fox jumps over the lazy dog")
	m := Build(text, 3)
	f := NewFilter(text, m)

	p, err := query.Parse("quick.*{0,20}fox", query.ByteMode)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	positions, windows, _ := f.Search(p)
	if len(positions) != 1 || positions[0] != 4 {
		t.Fatalf("positions = %v, want [4]", positions)
	}
	if windows == 0 {
		t.Fatal("expected at least one verification window scanned")
	}
}

func TestFilterSearchNoMatch(t *testing.T) {
	text := textFromString(t, "the quick brown fox jumps over the lazy dog")
	m := Build(text, 3)
	f := NewFilter(text, m)

	p, err := query.Parse("quick.*{0,2}dog", query.ByteMode)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	positions, _, _ := f.Search(p)
	if len(positions) != 0 {
		t.Fatalf("positions = %v, want none (gap too tight)", positions)
	}
}

func TestEstimateCostPrefersRarerQGram(t *testing.T) {
	text := textFromString(t, "aaaaaaaaaazzz")
	m := Build(text, 3)
	f := NewFilter(text, m)

	common, err := query.Parse("aaa", query.ByteMode)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rare, err := query.Parse("zzz", query.ByteMode)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.EstimateCost(rare) >= f.EstimateCost(common) {
		t.Fatalf("expected the rarer q-gram's cost estimate to be smaller: rare=%d common=%d",
			f.EstimateCost(rare), f.EstimateCost(common))
	}
}
