package gapmatch

import "testing"

func equalUint64(t *testing.T, got, want []uint64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMergeTwoBasic(t *testing.T) {
	// S1 occurrences at 0, 10; S2 occurrences at 5, 9, 20.
	posA := []uint64{0, 10}
	posB := []uint64{5, 9, 20}
	// minGap/maxGap relative to start of S1; len(S1)=2 so minGap=2.
	got := MergeTwo(posA, posB, 2, 8, 2)
	// a=0: first b>=2 is 5 (within maxGap 8) -> match (0,5 or greedily 9 since 0+8=8>=9? no 9>8 so stays 5)
	equalUint64(t, got, []uint64{0})
}

func TestMergeTwoGreedyPushesB(t *testing.T) {
	posA := []uint64{0}
	posB := []uint64{3, 4, 5, 100}
	got := MergeTwo(posA, posB, 0, 10, 1)
	// b should be pushed as far as 5 (all within maxGap 10 of a=0), not stop at 3.
	equalUint64(t, got, []uint64{0})
}

func TestMergeTwoNoMatchGapTooSmall(t *testing.T) {
	posA := []uint64{0}
	posB := []uint64{1}
	got := MergeTwo(posA, posB, 5, 10, 1)
	equalUint64(t, got, nil)
}

func TestMergeTwoPullsAPastMatch(t *testing.T) {
	// a=0 matches b=5; lenS2=3 so next a candidate must be >= 5+3=8.
	posA := []uint64{0, 6, 8}
	posB := []uint64{5}
	got := MergeTwo(posA, posB, 0, 10, 3)
	// a=6 should be skipped (6 < pull=8), a=8 has no remaining b to match.
	equalUint64(t, got, []uint64{0})
}

func TestMergeThreeBasic(t *testing.T) {
	posA := []uint64{0}
	posB := []uint64{4}
	posC := []uint64{8}
	got := MergeThree(posA, posB, posC, 2, 10, 2, 10, 2)
	equalUint64(t, got, []uint64{0})
}

func TestMergeThreeNoMatchSecondGapTooTight(t *testing.T) {
	posA := []uint64{0}
	posB := []uint64{4}
	posC := []uint64{8}
	got := MergeThree(posA, posB, posC, 2, 10, 2, 3, 2)
	equalUint64(t, got, nil)
}
