package qgram

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	text := textFromString(t, "the quick brown fox jumps over the lazy dog")
	m := Build(text, 3)

	path := filepath.Join(t.TempDir(), "qgrams.bin")
	if err := Save(m, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Q != m.Q {
		t.Fatalf("Q = %d, want %d", got.Q, m.Q)
	}

	wantPl, ok := m.Lookup(literalFromString("the"), 0)
	if !ok {
		t.Fatal("expected a posting list for \"the\" in the original map")
	}
	gotPl, ok := got.Lookup(literalFromString("the"), 0)
	if !ok {
		t.Fatal("expected a posting list for \"the\" after reload")
	}
	wantPositions, gotPositions := wantPl.Positions(), gotPl.Positions()
	if len(wantPositions) != len(gotPositions) {
		t.Fatalf("reloaded positions = %v, want %v", gotPositions, wantPositions)
	}
	for i := range wantPositions {
		if wantPositions[i] != gotPositions[i] {
			t.Fatalf("reloaded positions = %v, want %v", gotPositions, wantPositions)
		}
	}
}
