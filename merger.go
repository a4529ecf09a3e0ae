package gapmatch

// MergeTwo implements the SA Linear Merger for a two-term pattern: a
// greedy-lazy merge of two ascending, already-deduplicated position lists.
// minGap/maxGap are measured from the start of the first subpattern (the
// caller folds len(S1) in, as with the wildcard iterators); lenS2 is the
// length of the second subpattern, needed to know where a reported match
// ends so the next S1 candidate can be pulled past it.
func MergeTwo(posA, posB []uint64, minGap, maxGap, lenS2 uint64) []uint64 {
	var out []uint64
	ai, bi := 0, 0
	for ai < len(posA) {
		aPos := posA[ai]

		for bi < len(posB) && aPos+minGap > posB[bi] {
			bi++
		}
		if bi >= len(posB) {
			break
		}

		bPos := posB[bi]
		if aPos+maxGap < bPos {
			ai++
			continue
		}

		bi++
		for bi < len(posB) {
			b2 := posB[bi]
			if aPos+maxGap >= b2 {
				bPos = b2
			} else {
				break
			}
			bi++
		}

		out = append(out, aPos)

		pull := bPos + lenS2
		for ai < len(posA) && posA[ai] < pull {
			ai++
		}
	}
	return out
}

// MergeThree implements the SA Linear Merger for a three-term pattern:
// S1 .* S2 .* S3. Gap bounds on each joint are start-of-preceding-term
// relative. lenS3 is the length of the third subpattern, used for the
// final non-overlap pull; the source's benchmark implementation reused the
// second subpattern's length there, which collapses to a no-op pull
// whenever S2 and S3 differ in length — here the pull correctly advances
// past the end of the reported S3 occurrence, matching WC-SEARCH.
func MergeThree(posA, posB, posC []uint64, minGap1, maxGap1, minGap2, maxGap2, lenS3 uint64) []uint64 {
	var out []uint64
	ai, bi, ci := 0, 0, 0

	for ai < len(posA) {
		aPos := posA[ai]

		for bi < len(posB) && aPos+minGap1 > posB[bi] {
			bi++
		}
		if bi >= len(posB) {
			break
		}
		bPos := posB[bi]
		if aPos+maxGap1 < bPos {
			ai++
			continue
		}

		for ci < len(posC) && bPos+minGap2 > posC[ci] {
			ci++
		}
		if ci >= len(posC) {
			break
		}
		cPos := posC[ci]
		if bPos+maxGap2 < cPos {
			bi++
			continue
		}

		// push c greedily while it stays within max_gap(b,c)
		ci++
		for ci < len(posC) {
			c2 := posC[ci]
			if bPos+maxGap2 >= c2 {
				cPos = c2
			} else {
				break
			}
			ci++
		}

		// push b greedily while it stays within max_gap(a,b), re-checking b..c each time
		bi++
		for bi < len(posB) {
			b2 := posB[bi]
			if aPos+maxGap1 < b2 {
				break
			}
			bPos = b2

			for ci < len(posC) && bPos+minGap2 > posC[ci] {
				ci++
			}
			if ci >= len(posC) {
				break
			}
			if bPos+maxGap2 < posC[ci] {
				bi++
				continue
			}
			cPos = posC[ci]

			ci++
			for ci < len(posC) {
				c2 := posC[ci]
				if bPos+maxGap2 >= c2 {
					cPos = c2
				} else {
					break
				}
				ci++
			}
			bi++
		}

		out = append(out, aPos)

		pull := cPos + lenS3
		for ai < len(posA) && posA[ai] < pull {
			ai++
		}
	}
	return out
}
