// Package csa provides the succinct-index construction and serialization
// substrate gapmatch's search strategies are built over: an integer-alphabet
// text, its suffix array, a BWT/LF-mapping table for backward search, and a
// balanced wavelet tree over suffix-array values. Building these structures
// efficiently (rank/select in compressed space, wavelet-tree bit-compaction)
// is explicitly out of scope for the search algorithms themselves; this
// package favors a straightforward, correct construction over succinctness.
package csa

import "fmt"

// sentinel terminates the text the way the source's sdsl-backed indices
// implicitly append one; it must compare less than every real symbol.
const sentinel uint64 = 0

// Text is a sequence over an integer alphabet, plus the document boundaries
// within it needed for the document-boundary bit-vector (DBS).
type Text struct {
	// Symbols is the raw text, sentinel-terminated.
	Symbols []uint64
	// DocEnds holds, for each document, the offset one past its last
	// symbol (exclusive), in ascending order. A single-document text has
	// one entry equal to len(Symbols)-1 (excluding the sentinel).
	DocEnds []uint64
}

// NewText wraps raw symbols (which must not already contain the sentinel
// value 0 reserved for termination) with document boundaries, appending the
// sentinel. When docEnds is empty the whole text is treated as one
// document.
func NewText(symbols []uint64, docEnds []uint64) (*Text, error) {
	for i, s := range symbols {
		if s == sentinel {
			return nil, fmt.Errorf("symbol 0 at offset %d collides with the text sentinel", i)
		}
	}
	t := &Text{
		Symbols: append(append([]uint64(nil), symbols...), sentinel),
		DocEnds: docEnds,
	}
	if len(t.DocEnds) == 0 {
		t.DocEnds = []uint64{uint64(len(symbols))}
	}
	return t, nil
}

// Len returns the sentinel-inclusive text length.
func (t *Text) Len() int { return len(t.Symbols) }

// DocIndex returns the zero-based index of the document containing
// position pos (a symbol offset, not including the sentinel).
func (t *Text) DocIndex(pos uint64) int {
	lo, hi := 0, len(t.DocEnds)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.DocEnds[mid] <= pos {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
