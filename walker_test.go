package gapmatch

import "testing"

func TestRangeWalkerVisitsLeavesInAscendingValueOrder(t *testing.T) {
	idx := buildTestIndex(t, "banana")
	root := NewCachedNode(idx, idx.Root())
	w := NewRangeWalker(root)

	var values []uint64
	for w.HasMore() {
		leaf := w.RetrieveLeafAndTraverse()
		if leaf == nil {
			break
		}
		values = append(values, leaf.Value())
	}
	if len(values) != idx.TextLen() {
		t.Fatalf("visited %d leaves, want %d", len(values), idx.TextLen())
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			t.Fatalf("leaves out of ascending order at %d: %v", i, values)
		}
	}
}

func TestRangeWalkerSaveRestoreState(t *testing.T) {
	idx := buildTestIndex(t, "banana")
	root := NewCachedNode(idx, idx.Root())
	w := NewRangeWalker(root)

	saved := w.SaveState()
	first := w.RetrieveLeafAndTraverse()

	w.RestoreState(saved)
	again := w.RetrieveLeafAndTraverse()

	if first.Value() != again.Value() {
		t.Fatalf("restored state produced a different first leaf: %d vs %d", first.Value(), again.Value())
	}
}

func TestRangeWalkerNextPrunesSubtree(t *testing.T) {
	idx := buildTestIndex(t, "banana")
	root := NewCachedNode(idx, idx.Root())
	w := NewRangeWalker(root)

	w.Split() // now on top: left half of the root
	sizeBefore := w.Current().Size()
	if sizeBefore == idx.TextLen() {
		t.Fatal("expected Split to narrow the range")
	}
	w.Next() // discard that whole left half
	if !w.HasMore() {
		t.Fatal("expected the right half to still be pending")
	}
}
