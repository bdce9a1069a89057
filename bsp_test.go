package bsp

import (
	"bytes"
	"encoding/binary"
	"io"
)

// testLump is the data of a lump in a synthetic BSP file.
type testLump struct {
	typ  LumpType
	data []byte
}

// buildBSP returns a BSP file with the given lumps. Lump data is placed
// right after the header in the order the lumps are given.
func buildBSP(version int32, lumps ...testLump) []byte {
	h := &Header{Identifier: Identifier, Version: version, MapRevision: 7}

	var data bytes.Buffer
	for _, l := range lumps {
		h.Lumps[l.typ] = Lump{
			FileOffset: int32(HeaderSize + data.Len()),
			FileLength: int32(len(l.data)),
			FourCC:     [4]byte{'t', 'e', 's', 't'},
		}
		data.Write(l.data)
	}

	return append(encodeHeader(h), data.Bytes()...)
}

// encodeHeader serializes h the way ReadHeader expects it.
func encodeHeader(h *Header) []byte {
	b := make([]byte, 0, HeaderSize)
	b = binary.LittleEndian.AppendUint32(b, uint32(h.Identifier))
	b = binary.LittleEndian.AppendUint32(b, uint32(h.Version))
	for _, l := range h.Lumps {
		b = binary.LittleEndian.AppendUint32(b, uint32(l.FileOffset))
		b = binary.LittleEndian.AppendUint32(b, uint32(l.FileLength))
		b = binary.LittleEndian.AppendUint32(b, uint32(l.Version))
		b = append(b, l.FourCC[:]...)
	}
	return binary.LittleEndian.AppendUint32(b, uint32(h.MapRevision))
}

// lumpOffset returns the file offset of a lump of a file made by buildBSP.
func lumpOffset(file []byte, t LumpType) int {
	return int(binary.LittleEndian.Uint32(file[8+int(t)*lumpEntrySize:]))
}

// countingReader counts reads and seeks of the wrapped reader.
type countingReader struct {
	r            io.ReadSeeker
	reads, seeks int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.r.Read(p)
}

func (c *countingReader) Seek(offset int64, whence int) (int64, error) {
	c.seeks++
	return c.r.Seek(offset, whence)
}

// readOnly hides the Seek method of the wrapped reader.
type readOnly struct {
	r     io.Reader
	reads int
}

func (r *readOnly) Read(p []byte) (int, error) {
	r.reads++
	return r.r.Read(p)
}

// stutteringReader returns no data and no error every other read,
// and at most 3 bytes otherwise.
type stutteringReader struct {
	*bytes.Reader
	calls int
}

func (s *stutteringReader) Read(p []byte) (int, error) {
	s.calls++
	if s.calls%2 == 1 {
		return 0, nil
	}
	if len(p) > 3 {
		p = p[:3]
	}
	return s.Reader.Read(p)
}

// eagerEOFReader returns io.EOF together with the last bytes of the input.
type eagerEOFReader struct {
	*bytes.Reader
}

func (e eagerEOFReader) Read(p []byte) (int, error) {
	n, err := e.Reader.Read(p)
	if err == nil && e.Len() == 0 {
		err = io.EOF
	}
	return n, err
}

// failingReader fails reads at or after a given offset.
type failingReader struct {
	*bytes.Reader
	failAt int64
	err    error
}

func (f *failingReader) Read(p []byte) (int, error) {
	pos, _ := f.Seek(0, io.SeekCurrent)
	if pos >= f.failAt {
		return 0, f.err
	}
	if limit := f.failAt - pos; int64(len(p)) > limit {
		p = p[:limit]
	}
	return f.Reader.Read(p)
}
