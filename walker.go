package gapmatch

// RangeWalker is an explicit depth-first traversal of a wavelet-tree
// subtree, maintained as a stack so that splitting a node defers its right
// (larger-value) half for later without recursion. Current always reports
// the top of the stack, which may be an internal node — callers typically
// inspect an internal node's range before deciding whether to prune the
// whole subtree (Next) or narrow it further (Split).
type RangeWalker struct {
	stack []*CachedNode
}

// NewRangeWalker starts a traversal rooted at root.
func NewRangeWalker(root *CachedNode) *RangeWalker {
	return &RangeWalker{stack: []*CachedNode{root}}
}

// HasMore reports whether any node remains to be visited.
func (w *RangeWalker) HasMore() bool { return len(w.stack) > 0 }

// Current returns the node on top of the stack. It panics if the walker is
// exhausted.
func (w *RangeWalker) Current() *CachedNode {
	return w.stack[len(w.stack)-1]
}

// Next discards the current node's entire subtree and advances to
// whatever comes next in ascending value order. Used both to step past a
// fully-matched leaf and to prune a subtree that cannot satisfy a
// constraint, since neither case needs to examine anything further within
// it.
func (w *RangeWalker) Next() {
	w.stack = w.stack[:len(w.stack)-1]
}

// Split narrows the current node into its two children, descending into
// the lower-value half first and deferring the upper-value half. A child
// that covers no suffix-array entries is not pushed. It panics if the
// current node is a leaf or the walker is exhausted.
func (w *RangeWalker) Split() {
	top := w.Current()
	left, right := top.Children()
	w.stack = w.stack[:len(w.stack)-1]
	if right.Size() > 0 {
		w.stack = append(w.stack, right)
	}
	if left.Size() > 0 {
		w.stack = append(w.stack, left)
	}
}

// State is an opaque snapshot of a walker's traversal position, taken by
// SaveState and restored by RestoreState.
type State []*CachedNode

// SaveState snapshots the walker's current stack so speculative forward
// progress (a greedy lookahead) can be rolled back.
func (w *RangeWalker) SaveState() State {
	return append(State(nil), w.stack...)
}

// RestoreState rewinds the walker to a previously saved snapshot.
func (w *RangeWalker) RestoreState(s State) {
	w.stack = append([]*CachedNode(nil), s...)
}

// RetrieveLeafAndTraverse descends to the next leaf (splitting along the
// way) and advances past it, returning the leaf. It returns nil if the
// walker is exhausted.
func (w *RangeWalker) RetrieveLeafAndTraverse() *CachedNode {
	if !w.HasMore() {
		return nil
	}
	for w.HasMore() && !w.Current().IsLeaf() {
		w.Split()
	}
	if !w.HasMore() {
		return nil
	}
	leaf := w.Current()
	w.Next()
	return leaf
}
