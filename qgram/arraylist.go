package qgram

// ArrayList is the plain, uncompressed PositionList: a sorted []uint64.
// It is the right choice for rare q-grams, where compression overhead
// would outweigh the savings.
type ArrayList struct {
	positions []uint64
}

// NewArrayList wraps an already-sorted, deduplicated position slice.
func NewArrayList(positions []uint64) *ArrayList {
	return &ArrayList{positions: positions}
}

func (l *ArrayList) Len() int             { return len(l.positions) }
func (l *ArrayList) Positions() []uint64 { return l.positions }
