// Package gapmatch implements gapped pattern matching over an immutable,
// integer-alphabet text using a compressed-suffix-array self-index.
//
// A gapped pattern is a sequence of literal subpatterns S1, S2[, S3]
// separated by a bounded gap: S1 .* S2 [.* S3], where each gap carries a
// (min, max) distance constraint measured from the end of the preceding
// subpattern. Three independent search strategies answer the same query:
//
//   - SA-SEARCH merges sorted suffix-array ranges of each subpattern.
//   - WC-SEARCH walks the wavelet tree over the suffix array, pruning
//     subtrees whose lexicographic ranges cannot satisfy the gap or
//     document-boundary constraints.
//   - QGRAM-FILTER intersects q-gram posting lists and verifies candidates
//     with a regular expression.
//
// Index construction and the three search strategies all operate on an
// already-built self-index (see package csa); building that index from raw
// text is a separate, unoptimized concern kept out of the core search path.
package gapmatch
