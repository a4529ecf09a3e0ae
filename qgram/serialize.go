package qgram

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
)

// gobEntry is the on-disk shape of one q-gram's posting list: the list is
// always decoded back into ArrayList, since Positions() already gives the
// sorted slice every representation round-trips through, and the original
// representation choice only mattered for in-memory footprint during
// querying, not storage.
type gobEntry struct {
	Key       string
	Positions []uint64
}

// Save gob-encodes m to path, the way the teacher's query package encodes
// its own marshaled structures.
func Save(m *QGramMap, path string) error {
	entries := make([]gobEntry, 0, len(m.postings))
	for k, pl := range m.postings {
		entries = append(entries, gobEntry{Key: k, Positions: pl.Positions()})
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(struct {
		Q       int
		Entries []gobEntry
	}{Q: m.Q, Entries: entries}); err != nil {
		return errors.Wrap(err, "encode q-gram map")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "write q-gram map")
	}
	return nil
}

// Load reads back a QGramMap written by Save.
func Load(path string) (*QGramMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read q-gram map")
	}
	var decoded struct {
		Q       int
		Entries []gobEntry
	}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "decode q-gram map")
	}

	m := &QGramMap{Q: decoded.Q, postings: make(map[string]PositionList, len(decoded.Entries))}
	for _, e := range decoded.Entries {
		m.postings[e.Key] = NewArrayList(e.Positions)
	}
	return m, nil
}
