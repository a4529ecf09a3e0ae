package qgram

import "github.com/RoaringBitmap/roaring"

// RoaringList is a PositionList backed by a Roaring bitmap, the right
// choice for dense, clustered q-grams where the bitmap's run-length
// containers beat both a flat array and Elias-Fano.
type RoaringList struct {
	bitmap *roaring.Bitmap
}

// NewRoaringList builds a RoaringList from a sorted, deduplicated, and
// uint32-representable position slice.
func NewRoaringList(positions []uint64) *RoaringList {
	bm := roaring.New()
	for _, p := range positions {
		bm.Add(uint32(p))
	}
	bm.RunOptimize()
	return &RoaringList{bitmap: bm}
}

func (l *RoaringList) Len() int { return int(l.bitmap.GetCardinality()) }

func (l *RoaringList) Positions() []uint64 {
	out := make([]uint64, 0, l.bitmap.GetCardinality())
	it := l.bitmap.Iterator()
	for it.HasNext() {
		out = append(out, uint64(it.Next()))
	}
	return out
}
