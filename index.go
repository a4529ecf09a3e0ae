package gapmatch

import "github.com/gapidx/gapmatch/csa"

// Index is the succinct-index facade every search strategy is built over.
// It exposes exactly the operations WC-SEARCH, SA-SEARCH, and QGRAM-FILTER
// need — forward_search, backward_search, value_range, expand, is_leaf,
// and doc_index — and nothing about how the suffix array, wavelet tree, or
// BWT are represented underneath. A different succinct implementation of
// csa.Index could be substituted without touching any search strategy.
type Index struct {
	csa *csa.Index
}

// NewIndex wraps a built csa.Index as a search-ready Index.
func NewIndex(idx *csa.Index) *Index {
	return &Index{csa: idx}
}

// TextLen returns the sentinel-inclusive text length.
func (ix *Index) TextLen() int { return ix.csa.Text.Len() }

// ForwardSearch returns the half-open suffix-array range of suffixes
// prefixed by pattern.
func (ix *Index) ForwardSearch(pattern []uint64) (sp, ep int, ok bool) {
	return csa.ForwardSearch(ix.csa.Text, ix.csa.SA, pattern)
}

// BackwardSearch returns the half-open suffix-array range of suffixes
// prefixed by pattern, computed via LF-mapping instead of direct text
// comparison.
func (ix *Index) BackwardSearch(pattern []uint64) (sp, ep int, ok bool) {
	return ix.csa.BWT.Search(pattern)
}

// Node is an opaque handle into the wavelet tree over the suffix array, as
// produced by Root, NodeForRange, or Expand.
type Node = csa.WTNode

// Root returns the canonical whole-array root node.
func (ix *Index) Root() *Node { return ix.csa.WT.Root() }

// NodeForRange seeds a traversal at the lexicographic range [sp, ep), as
// produced by ForwardSearch or BackwardSearch.
func (ix *Index) NodeForRange(sp, ep int) *Node { return ix.csa.WT.NodeForRange(sp, ep) }

// ValueRange reports the [lo, hi) range of text positions n has narrowed
// to.
func (ix *Index) ValueRange(n *Node) (uint64, uint64) { return n.ValueRange() }

// Expand splits n into its lower-half and upper-half children.
func (ix *Index) Expand(n *Node) (left, right *Node) { return n.Expand() }

// IsLeaf reports whether n has narrowed to a single text position.
func (ix *Index) IsLeaf(n *Node) bool { return n.IsLeaf() }

// DocIndex returns the zero-based document index containing text position
// pos.
func (ix *Index) DocIndex(pos uint64) int { return ix.csa.Text.DocIndex(pos) }

// TextAt returns the symbol at text position pos, for q-gram extraction and
// regexp verification windows.
func (ix *Index) TextAt(pos uint64) uint64 { return ix.csa.Text.Symbols[pos] }
