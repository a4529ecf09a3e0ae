package gapmatch

import "testing"

func TestCachedNodeChildrenAreCachedAcrossCalls(t *testing.T) {
	idx := buildTestIndex(t, "banana")
	root := NewCachedNode(idx, idx.Root())
	if root.IsLeaf() {
		t.Fatal("expected the root of a multi-symbol text to not be a leaf")
	}

	left1, right1 := root.Children()
	left2, right2 := root.Children()
	if left1 != left2 || right1 != right2 {
		t.Fatal("expected Children() to return the same cached pointers on repeat calls")
	}
}

func TestCachedNodeDocRangeIsCached(t *testing.T) {
	idx := buildTestIndex(t, "banana")
	root := NewCachedNode(idx, idx.Root())
	b1, e1 := root.DocRange()
	b2, e2 := root.DocRange()
	if b1 != b2 || e1 != e2 {
		t.Fatalf("DocRange() changed between calls: (%d,%d) vs (%d,%d)", b1, e1, b2, e2)
	}
}

func TestCachedNodeLeafValue(t *testing.T) {
	// An empty text's suffix array holds only the sentinel position, so its
	// wavelet tree's root has no levels to descend and is already a leaf.
	idx := buildTestIndex(t, "")
	root := NewCachedNode(idx, idx.Root())
	if !root.IsLeaf() {
		t.Fatal("expected an empty text's root to be a leaf")
	}
	if root.Value() != 0 {
		t.Fatalf("Value() = %d, want 0 (the sentinel's own position)", root.Value())
	}
}

func TestCachedNodeReachesLeavesByExpansion(t *testing.T) {
	idx := buildTestIndex(t, "banana")
	root := NewCachedNode(idx, idx.Root())

	var countLeaves func(n *CachedNode) int
	countLeaves = func(n *CachedNode) int {
		if n.Size() == 0 {
			return 0
		}
		if n.IsLeaf() {
			return 1
		}
		l, r := n.Children()
		return countLeaves(l) + countLeaves(r)
	}
	if got, want := countLeaves(root), idx.TextLen(); got != want {
		t.Fatalf("visited %d leaves, want %d (one per suffix-array entry)", got, want)
	}
}
