package qgram

import (
	"strings"

	"github.com/gapidx/gapmatch/csa"
	"github.com/gapidx/gapmatch/query"
	"github.com/grafana/regexp"
)

// Filter is the Q-Gram Filter search strategy: it narrows a gapped pattern
// to a small candidate set via q-gram posting intersection, then verifies
// each candidate's window against the pattern.
type Filter struct {
	text *csa.Text
	qmap *QGramMap
}

// NewFilter pairs a text with its q-gram map.
func NewFilter(text *csa.Text, qmap *QGramMap) *Filter {
	return &Filter{text: text, qmap: qmap}
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Search returns the verified match positions (the start of the first
// subpattern) for pat, plus the number of verification windows scanned and
// the number of candidates discarded as a BoundsAnomaly.
func (f *Filter) Search(pat *query.Pattern) (positions []uint64, windowsScanned int, anomalies int) {
	anchor := f.selectAnchor(pat)
	candidates := f.anchorCandidates(pat, anchor)

	re := f.compileByteRegexp(pat)

	n := uint64(f.text.Len() - 1) // exclude sentinel
	for _, anchorPos := range candidates {
		start, end, ok := f.windowBounds(pat, anchor, anchorPos)
		if !ok {
			continue
		}
		if start > n {
			anomalies++
			continue
		}
		if end > n {
			end = n
		}
		windowsScanned++

		if re != nil {
			loc := re.FindIndex(symbolsToBytes(f.text.Symbols[start:end]))
			if loc != nil {
				positions = append(positions, start+uint64(loc[0]))
			}
			continue
		}

		if p, ok := verifyManual(f.text.Symbols, start, end, pat); ok {
			positions = append(positions, p)
		}
	}
	return positions, windowsScanned, anomalies
}

// EstimateCost reports the size of the smallest q-gram posting list among
// pat's subpatterns, a cheap proxy for QGRAM-FILTER's candidate-set size
// used by the query façade's strategy choice.
func (f *Filter) EstimateCost(pat *query.Pattern) int {
	best := -1
	for _, sub := range pat.Subpatterns {
		for _, off := range f.qmap.QGramsOf(sub) {
			pl, ok := f.qmap.Lookup(sub, off)
			if !ok {
				continue
			}
			if best == -1 || pl.Len() < best {
				best = pl.Len()
			}
		}
	}
	if best == -1 {
		return f.text.Len()
	}
	return best
}

// selectAnchor picks the subpattern whose smallest q-gram posting list is
// smallest overall, the standard q-gram-filter heuristic for minimizing
// the candidate set handed to verification.
func (f *Filter) selectAnchor(pat *query.Pattern) int {
	best, bestSize := 0, -1
	for i, sub := range pat.Subpatterns {
		offsets := f.qmap.QGramsOf(sub)
		if len(offsets) == 0 {
			continue
		}
		var lists []PositionList
		for _, off := range offsets {
			if pl, ok := f.qmap.Lookup(sub, off); ok {
				lists = append(lists, pl)
			}
		}
		if len(lists) == 0 {
			continue
		}
		size := smallestPosting(lists).Len()
		if bestSize == -1 || size < bestSize {
			best, bestSize = i, size
		}
	}
	return best
}

// anchorCandidates returns candidate start positions for pat's anchor
// subpattern, derived from its smallest q-gram posting list and verified
// against the other q-grams of the same literal via sorted intersection.
func (f *Filter) anchorCandidates(pat *query.Pattern, anchor int) []uint64 {
	sub := pat.Subpatterns[anchor]
	offsets := f.qmap.QGramsOf(sub)
	if len(offsets) == 0 {
		return nil
	}

	type shifted struct {
		offset   int
		postings []uint64
	}
	var all []shifted
	var driver PositionList
	driverOffset := offsets[0]
	for _, off := range offsets {
		pl, ok := f.qmap.Lookup(sub, off)
		if !ok {
			return nil
		}
		all = append(all, shifted{offset: off, postings: pl.Positions()})
		if driver == nil || pl.Len() < driver.Len() {
			driver = pl
			driverOffset = off
		}
	}

	var candidates []uint64
	for _, p := range driver.Positions() {
		if p < uint64(driverOffset) {
			continue
		}
		start := p - uint64(driverOffset)
		ok := true
		for _, s := range all {
			if s.offset == driverOffset {
				continue
			}
			if !sortedIntersect(s.postings, start+uint64(s.offset)) {
				ok = false
				break
			}
		}
		if ok {
			candidates = append(candidates, start)
		}
	}
	return candidates
}

// windowBounds computes the [start, end) text range that must contain the
// whole pattern given that the anchor subpattern starts at anchorPos.
func (f *Filter) windowBounds(pat *query.Pattern, anchor int, anchorPos uint64) (start, end uint64, ok bool) {
	start = anchorPos
	for i := anchor - 1; i >= 0; i-- {
		gap := pat.Gaps[i]
		lenPrev := uint64(len(pat.Subpatterns[i]))
		if start < lenPrev+gap.Max && gap.Max != query.MaxGap {
			return 0, 0, false
		}
		if gap.Max == query.MaxGap {
			start = 0
		} else {
			start -= lenPrev + gap.Max
		}
	}

	end = anchorPos + uint64(len(pat.Subpatterns[anchor]))
	for i := anchor; i < len(pat.Gaps); i++ {
		gap := pat.Gaps[i]
		if gap.Max == query.MaxGap {
			// an unbounded forward gap extends the window to the end of the text
			return start, uint64(f.text.Len() - 1), true
		}
		end += gap.Max + uint64(len(pat.Subpatterns[i+1]))
	}
	return start, end, true
}

// compileByteRegexp builds a regular expression equivalent to pat for
// ByteMode patterns, letting the fast path verify a whole window in one
// engine call instead of a manual scan. IntMode patterns fall back to
// verifyManual, since they have no natural byte-string rendering.
func (f *Filter) compileByteRegexp(pat *query.Pattern) *regexp.Regexp {
	if pat.Mode != query.ByteMode {
		return nil
	}
	var b strings.Builder
	b.WriteString("(?s)") // a gap may span any symbol, newline included
	for i, sub := range pat.Subpatterns {
		if i > 0 {
			gap := pat.Gaps[i-1]
			max := "*"
			if gap.Max != query.MaxGap {
				max = itoa(gap.Max)
			}
			b.WriteString(".{")
			b.WriteString(itoa(gap.Min))
			b.WriteByte(',')
			if gap.Max != query.MaxGap {
				b.WriteString(max)
			}
			b.WriteByte('}')
		}
		b.WriteString(regexp.QuoteMeta(string(symbolsToBytes(sub))))
	}
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}

// symbolsToBytes undoes the +1 shift gapmatch-build applies to raw bytes
// before storing them as symbols, for ByteMode patterns only.
func symbolsToBytes(symbols []uint64) []byte {
	b := make([]byte, len(symbols))
	for i, s := range symbols {
		b[i] = byte(s - 1)
	}
	return b
}

// verifyManual directly scans window [start, end) for an alignment of
// pat's subpatterns satisfying every gap bound, returning the position of
// the first subpattern on success. Used for IntMode patterns and for
// ByteMode patterns whose regular expression fails to compile.
func verifyManual(text []uint64, start, end uint64, pat *query.Pattern) (uint64, bool) {
	matchAt := func(pos uint64, sub []uint64) bool {
		if pos+uint64(len(sub)) > end {
			return false
		}
		for i, s := range sub {
			if text[pos+uint64(i)] != s {
				return false
			}
		}
		return true
	}

	for p := start; p < end; p++ {
		if !matchAt(p, pat.Subpatterns[0]) {
			continue
		}
		if pat.NumTerms() == 1 {
			return p, true
		}
		cursor := p + uint64(len(pat.Subpatterns[0]))
		ok := true
		for i := 1; i < pat.NumTerms(); i++ {
			gap := pat.Gaps[i-1]
			found := false
			lo := cursor + gap.Min
			hi := cursor + gap.Max
			if gap.Max == query.MaxGap || hi > end {
				hi = end
			}
			for q := lo; q <= hi; q++ {
				if matchAt(q, pat.Subpatterns[i]) {
					cursor = q + uint64(len(pat.Subpatterns[i]))
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
			return p, true
		}
	}
	return 0, false
}
