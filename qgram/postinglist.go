// Package qgram implements the Q-Gram Filter search strategy: literal
// subpatterns are broken into overlapping q-grams, their posting lists are
// intersected to produce a small candidate set, and each candidate is
// verified against the full gapped pattern with a regular expression.
package qgram

// PositionList is a sorted, deduplicated list of text positions at which a
// q-gram occurs. Three representations are provided (ArrayList,
// EliasFanoList, RoaringList); callers pick one per q-gram based on its
// density, the same polymorphism a postings file uses for sparse versus
// dense terms.
type PositionList interface {
	// Len reports how many positions are in the list.
	Len() int
	// Positions returns the list's positions in ascending order. The
	// returned slice must not be mutated by the caller.
	Positions() []uint64
}
