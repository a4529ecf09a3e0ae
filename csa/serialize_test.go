package csa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	text, err := NewText(symbolsFromString("mississippi river"), []uint64{9, 17})
	require.NoError(t, err)
	idx := Build(text)

	path := filepath.Join(t.TempDir(), "self-index.bin")
	require.NoError(t, Save(idx, path))

	got, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, idx.Text.Symbols, got.Text.Symbols)
	require.Equal(t, idx.Text.DocEnds, got.Text.DocEnds)
	require.Equal(t, idx.SA, got.SA)

	sp, ep, ok := ForwardSearch(got.Text, got.SA, symbolsFromString("ssi"))
	require.True(t, ok)
	require.Equal(t, 2, ep-sp)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.bin")
	require.NoError(t, os.WriteFile(path, []byte("not an index file, just filler bytes"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
