package csa

import (
	"encoding/binary"
	"fmt"
	"os"
	"runtime"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

const magic = "GAPM"
const version = 1

// FatalIO wraps an unrecoverable I/O or serialization failure during op, in
// the same form as the root package's FatalIO (which csa cannot import).
func FatalIO(op string, err error) error {
	return errors.Wrapf(err, "fatal I/O during %s", op)
}

// Index bundles the built self-index: the text, its suffix array, and the
// collaborators (BWT, wavelet tree, document-boundary bit-vector) derived
// from it. The wavelet tree, BWT, and bit-vector are cheap to rebuild from
// the suffix array, so only Symbols, DocEnds, and SA are persisted; Load
// rebuilds the rest, the same way the source's construct() step derives its
// auxiliary structures from the compressed suffix array at load time.
type Index struct {
	Text *Text
	SA   []uint32
	BWT  *BWT
	WT   *WaveletTree
	DBS  *RankBitVector
}

// Build constructs an Index from raw text.
func Build(t *Text) *Index {
	sa := BuildSuffixArray(t)
	return &Index{
		Text: t,
		SA:   sa,
		BWT:  BuildBWT(t, sa),
		WT:   BuildWaveletTree(sa),
		DBS:  DocEndsToBitVector(t),
	}
}

// section is a table-of-contents entry: a named, contiguous byte range.
type section struct {
	off, sz uint32
}

func (s section) write(f *os.File) error {
	var b [8]byte
	binary.BigEndian.PutUint32(b[0:4], s.off)
	binary.BigEndian.PutUint32(b[4:8], s.sz)
	_, err := f.Write(b[:])
	return err
}

func readSection(b []byte) section {
	return section{off: binary.BigEndian.Uint32(b[0:4]), sz: binary.BigEndian.Uint32(b[4:8])}
}

// Save writes idx to path as a sequence of sections (symbols, document
// ends, suffix array) followed by a table of contents, mirroring the
// source's shard layout: fixed-size records first, a directory of
// (offset, size) pairs last so a loader can seek straight to what it needs.
func Save(idx *Index, path string) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return FatalIO("create index file", ferr)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = FatalIO("close index file", cerr)
		}
	}()

	var secs []section
	var off uint32

	write := func(b []byte) error {
		n, werr := f.Write(b)
		if werr != nil {
			return werr
		}
		secs = append(secs, section{off: off, sz: uint32(n)})
		off += uint32(n)
		return nil
	}

	symBytes := make([]byte, 8*len(idx.Text.Symbols))
	for i, s := range idx.Text.Symbols {
		binary.BigEndian.PutUint64(symBytes[i*8:], s)
	}
	if err = write(symBytes); err != nil {
		return FatalIO("write symbols", err)
	}

	docBytes := make([]byte, 8*len(idx.Text.DocEnds))
	for i, d := range idx.Text.DocEnds {
		binary.BigEndian.PutUint64(docBytes[i*8:], d)
	}
	if err = write(docBytes); err != nil {
		return FatalIO("write doc ends", err)
	}

	saBytes := make([]byte, 4*len(idx.SA))
	for i, v := range idx.SA {
		binary.BigEndian.PutUint32(saBytes[i*4:], v)
	}
	if err = write(saBytes); err != nil {
		return FatalIO("write suffix array", err)
	}

	tocOff := off
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(secs)))
	if _, err = f.Write(hdr[:]); err != nil {
		return FatalIO("write section count", err)
	}
	for _, s := range secs {
		if err = s.write(f); err != nil {
			return FatalIO("write section directory", err)
		}
	}

	var trailer [4 + len(magic) + 4]byte
	copy(trailer[:], magic)
	binary.BigEndian.PutUint32(trailer[len(magic):], version)
	binary.BigEndian.PutUint32(trailer[len(magic)+4:], tocOff)
	if _, err = f.Write(trailer[:]); err != nil {
		return FatalIO("write trailer", err)
	}
	return nil
}

// indexFile is a file suitable for concurrent read access; mmappedFile
// backs it with a read-only memory map. Load reads each section through it
// and decodes the symbols, document ends, and suffix array into freshly
// allocated slices.
type indexFile interface {
	Read(off, sz uint32) ([]byte, error)
	Close() error
}

type mmappedFile struct {
	data mmap.MMap
	size uint32
}

func (m *mmappedFile) Read(off, sz uint32) ([]byte, error) {
	if off+sz > m.size || off > off+sz {
		return nil, fmt.Errorf("out of bounds read: off=%d sz=%d size=%d", off, sz, m.size)
	}
	return m.data[off : off+sz], nil
}

func (m *mmappedFile) Close() error { return m.data.Unmap() }

func mmapFile(f *os.File) (*mmappedFile, error) {
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	bsize := int(size)
	if runtime.GOOS != "windows" {
		page := os.Getpagesize() - 1
		bsize = (bsize + page) &^ page
	}
	data, err := mmap.MapRegion(f, bsize, mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, err
	}
	return &mmappedFile{data: data, size: uint32(size)}, nil
}

// Load reads back an Index written by Save, rebuilding the BWT, wavelet
// tree, and document bit-vector from the persisted suffix array.
func Load(path string) (idx *Index, err error) {
	f, ferr := os.Open(path)
	if ferr != nil {
		return nil, FatalIO("open index file", ferr)
	}
	mf, merr := mmapFile(f)
	if merr != nil {
		return nil, FatalIO("mmap index file", merr)
	}
	defer func() {
		if cerr := mf.Close(); cerr != nil && err == nil {
			err = FatalIO("unmap index file", cerr)
		}
	}()

	if mf.size < uint32(len(magic)+8+4) {
		return nil, FatalIO("parse trailer", errors.New("file too small"))
	}
	trailer, rerr := mf.Read(mf.size-uint32(len(magic)+8), uint32(len(magic)+8))
	if rerr != nil {
		return nil, FatalIO("read trailer", rerr)
	}
	if string(trailer[:len(magic)]) != magic {
		return nil, FatalIO("parse trailer", errors.New("bad magic"))
	}
	gotVersion := binary.BigEndian.Uint32(trailer[len(magic):])
	if gotVersion != version {
		return nil, FatalIO("parse trailer", errors.Errorf("unsupported version %d", gotVersion))
	}
	tocOff := binary.BigEndian.Uint32(trailer[len(magic)+4:])

	countBytes, rerr := mf.Read(tocOff, 4)
	if rerr != nil {
		return nil, FatalIO("read section count", rerr)
	}
	count := binary.BigEndian.Uint32(countBytes)
	if count != 3 {
		return nil, FatalIO("parse section directory", errors.Errorf("expected 3 sections, got %d", count))
	}

	secs := make([]section, count)
	cur := tocOff + 4
	for i := range secs {
		b, rerr := mf.Read(cur, 8)
		if rerr != nil {
			return nil, FatalIO("read section directory", rerr)
		}
		secs[i] = readSection(b)
		cur += 8
	}

	symBytes, rerr := mf.Read(secs[0].off, secs[0].sz)
	if rerr != nil {
		return nil, FatalIO("read symbols", rerr)
	}
	symbols := make([]uint64, len(symBytes)/8)
	for i := range symbols {
		symbols[i] = binary.BigEndian.Uint64(symBytes[i*8:])
	}

	docBytes, rerr := mf.Read(secs[1].off, secs[1].sz)
	if rerr != nil {
		return nil, FatalIO("read doc ends", rerr)
	}
	docEnds := make([]uint64, len(docBytes)/8)
	for i := range docEnds {
		docEnds[i] = binary.BigEndian.Uint64(docBytes[i*8:])
	}

	saBytes, rerr := mf.Read(secs[2].off, secs[2].sz)
	if rerr != nil {
		return nil, FatalIO("read suffix array", rerr)
	}
	sa := make([]uint32, len(saBytes)/4)
	for i := range sa {
		sa[i] = binary.BigEndian.Uint32(saBytes[i*4:])
	}

	t := &Text{Symbols: symbols, DocEnds: docEnds}
	return &Index{
		Text: t,
		SA:   sa,
		BWT:  BuildBWT(t, sa),
		WT:   BuildWaveletTree(sa),
		DBS:  DocEndsToBitVector(t),
	}, nil
}
