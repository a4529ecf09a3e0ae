package gapmatch

// WildcardIter2 is the two-term Wildcard Match Iterator: a cascaded,
// pruning depth-first walk over two wavelet-tree ranges that emits matches
// of S1 .* S2 in ascending order of S1's position, greedily advancing S2 as
// far as the gap bound allows before reporting a match. Gap bounds here are
// measured relative to the start of S1 (the caller folds len(S1) in).
type WildcardIter2 struct {
	w0, w1         *RangeWalker
	minGap, maxGap uint64
	lenS2          uint64
	a, b           uint64
	valid          bool
}

// NewWildcardIter2 starts a two-term search over the two lexicographic
// ranges, stopping at the first match. lenS2 is the length of the second
// subpattern, needed so a reported match's end can be computed and w0
// pulled past it, keeping non-overlapping matches in step with SA-SEARCH's
// MergeTwo.
func NewWildcardIter2(index *Index, sp0, ep0, sp1, ep1 int, minGap, maxGap, lenS2 uint64) *WildcardIter2 {
	root0 := NewCachedNode(index, index.NodeForRange(sp0, ep0))
	root1 := NewCachedNode(index, index.NodeForRange(sp1, ep1))
	it := &WildcardIter2{
		w0: NewRangeWalker(root0), w1: NewRangeWalker(root1),
		minGap: minGap, maxGap: maxGap, lenS2: lenS2,
	}
	it.advance()
	return it
}

// HasMore reports whether Current holds a valid match.
func (it *WildcardIter2) HasMore() bool { return it.valid }

// Current returns the text positions of S1 and S2 for the current match.
func (it *WildcardIter2) Current() (a, b uint64) { return it.a, it.b }

// Next advances to the next match.
func (it *WildcardIter2) Next() { it.advance() }

func (it *WildcardIter2) advance() {
	for it.w0.HasMore() && it.w1.HasMore() {
		top0, top1 := it.w0.Current(), it.w1.Current()
		d0b, d0e := top0.DocRange()
		d1b, d1e := top1.DocRange()
		v0lo, v0hi := top0.ValueRange()
		v1lo, v1hi := top1.ValueRange()

		switch {
		case d0e < d1b:
			it.w0.Next()
		case d1e < d0b:
			it.w1.Next()
		case v0hi-1+it.maxGap < v1lo:
			it.w0.Next()
		case v0lo+it.minGap > v1hi-1:
			it.w1.Next()
		case top0.IsLeaf() && top1.IsLeaf():
			a := v0lo
			b := v1lo
			doc := d0e
			for it.w1.HasMore() {
				t1 := it.w1.Current()
				lo, _ := t1.ValueRange()
				db, _ := t1.DocRange()
				if a+it.maxGap < lo || db != doc {
					break
				}
				if !t1.IsLeaf() {
					it.w1.Split()
					continue
				}
				b = lo
				it.w1.Next()
			}

			// pull w0 past the end of this match so the next one doesn't
			// overlap it, mirroring MergeTwo's pull := bPos + lenS2.
			pull := b + it.lenS2
			for it.w0.HasMore() {
				_, hi := it.w0.Current().ValueRange()
				if hi-1 >= pull {
					break
				}
				it.w0.Next()
			}

			it.a, it.b, it.valid = a, b, true
			return
		default:
			if top0.IsLeaf() || (!top1.IsLeaf() && top1.Size() >= top0.Size()) {
				it.w1.Split()
			} else {
				it.w0.Split()
			}
		}
	}
	it.valid = false
}

// WildcardIter3 is the three-term Wildcard Match Iterator: S1 .* S2 .* S3,
// with independent gap bounds on each joint. It additionally tracks the end
// of the previously reported S3 occurrence to skip overlapping triples
// whose S1 would restart inside the last match.
type WildcardIter3 struct {
	w0, w1, w2                 *RangeWalker
	minGap1, maxGap1           uint64
	minGap2, maxGap2           uint64
	a, b, c                    uint64
	lastC                      uint64
	haveLastC                  bool
	valid                      bool
}

// NewWildcardIter3 starts a three-term search over three lexicographic
// ranges. Gap bounds are start-of-subpattern-relative, matching
// WildcardIter2.
func NewWildcardIter3(index *Index, sp0, ep0, sp1, ep1, sp2, ep2 int, minGap1, maxGap1, minGap2, maxGap2 uint64) *WildcardIter3 {
	root0 := NewCachedNode(index, index.NodeForRange(sp0, ep0))
	root1 := NewCachedNode(index, index.NodeForRange(sp1, ep1))
	root2 := NewCachedNode(index, index.NodeForRange(sp2, ep2))
	it := &WildcardIter3{
		w0: NewRangeWalker(root0), w1: NewRangeWalker(root1), w2: NewRangeWalker(root2),
		minGap1: minGap1, maxGap1: maxGap1, minGap2: minGap2, maxGap2: maxGap2,
	}
	it.advance()
	return it
}

// HasMore reports whether Current holds a valid match.
func (it *WildcardIter3) HasMore() bool { return it.valid }

// Current returns the text positions of S1, S2, and S3 for the current
// match.
func (it *WildcardIter3) Current() (a, b, c uint64) { return it.a, it.b, it.c }

// Next advances to the next match.
func (it *WildcardIter3) Next() { it.advance() }

func (it *WildcardIter3) advance() {
	for it.w0.HasMore() && it.w1.HasMore() && it.w2.HasMore() {
		top0, top1, top2 := it.w0.Current(), it.w1.Current(), it.w2.Current()
		_, d0e := top0.DocRange()
		d1b, d1e := top1.DocRange()
		d2b, _ := top2.DocRange()
		v0lo, v0hi := top0.ValueRange()
		v1lo, v1hi := top1.ValueRange()
		v2lo, v2hi := top2.ValueRange()

		switch {
		case d1e < d2b:
			it.w1.Next()
		case d0e < d1b:
			it.w0.Next()
		case v1hi-1+it.maxGap2 < v2lo:
			it.w1.Next()
		case v1lo+it.minGap2 > v2hi-1:
			it.w2.Next()
		case v0hi-1+it.maxGap1 < v1lo:
			it.w0.Next()
		case v0lo+it.minGap1 > v1hi-1:
			it.w1.Next()
		case top0.IsLeaf() && top1.IsLeaf() && top2.IsLeaf():
			a := v0lo
			doc := d0e
			if it.haveLastC && a <= it.lastC {
				it.w0.Next()
				continue
			}
			b := v1lo
			c := v2lo
			it.w1.Next()
			it.w2.Next()

			for it.w2.HasMore() {
				t2 := it.w2.Current()
				lo, _ := t2.ValueRange()
				db, _ := t2.DocRange()
				if b+it.maxGap2 < lo || db != doc {
					break
				}
				if !t2.IsLeaf() {
					it.w2.Split()
					continue
				}
				c = lo
				it.w2.Next()
			}

			state1 := it.w1.SaveState()
			state2 := it.w2.SaveState()

			for it.w1.HasMore() {
				t1 := it.w1.Current()
				lo, _ := t1.ValueRange()
				db, _ := t1.DocRange()
				if a+it.maxGap1 < lo || db != doc {
					break
				}
				leaf := it.w1.RetrieveLeafAndTraverse()
				if leaf == nil {
					continue
				}
				bTemp := leaf.Value()
				if bTemp > a+it.maxGap1 {
					break
				}
				if bTemp+it.minGap2 <= c {
					b = bTemp
				}
				for it.w2.HasMore() {
					t2 := it.w2.Current()
					lo2, _ := t2.ValueRange()
					db2, _ := t2.DocRange()
					if bTemp+it.maxGap2 < lo2 || db2 != doc {
						break
					}
					if leaf2 := it.w2.RetrieveLeafAndTraverse(); leaf2 != nil && leaf2.Value() <= bTemp+it.maxGap2 {
						b = bTemp
						c = leaf2.Value()
					}
				}
			}

			it.w1.RestoreState(state1)
			it.w2.RestoreState(state2)

			for it.w0.HasMore() {
				_, hi := it.w0.Current().ValueRange()
				if hi-1 > c {
					break
				}
				it.w0.Next()
			}

			it.a, it.b, it.c = a, b, c
			it.lastC = c
			it.haveLastC = true
			it.valid = true
			return
		default:
			sizes := [3]int{top0.Size(), top1.Size(), top2.Size()}
			leaves := [3]bool{top0.IsLeaf(), top1.IsLeaf(), top2.IsLeaf()}
			best := -1
			for i := 0; i < 3; i++ {
				if !leaves[i] && (best < 0 || sizes[i] >= sizes[best]) {
					best = i
				}
			}
			switch best {
			case 0:
				it.w0.Split()
			case 1:
				it.w1.Split()
			case 2:
				it.w2.Split()
			}
		}
	}
	it.valid = false
}
