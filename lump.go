package bsp

import (
	"fmt"
	"io"
	"sort"
)

// LumpType identifies a lump by its index in the lump directory.
type LumpType int

// LumpEntities is the lump holding the map entity text.
// It never takes part in the checksum.
const LumpEntities LumpType = 0

// Lump names of the Source 2013 BSP format, indexed by LumpType.
// Several slots were renamed across engine branches; only the
// position matters for the checksum.
var lumpNames = [LumpCount]string{
	"LUMP_ENTITIES",
	"LUMP_PLANES",
	"LUMP_TEXDATA",
	"LUMP_VERTEXES",
	"LUMP_VISIBILITY",
	"LUMP_NODES",
	"LUMP_TEXINFO",
	"LUMP_FACES",
	"LUMP_LIGHTING",
	"LUMP_OCCLUSION",
	"LUMP_LEAFS",
	"LUMP_FACEIDS",
	"LUMP_EDGES",
	"LUMP_SURFEDGES",
	"LUMP_MODELS",
	"LUMP_WORLDLIGHTS",
	"LUMP_LEAFFACES",
	"LUMP_LEAFBRUSHES",
	"LUMP_BRUSHES",
	"LUMP_BRUSHSIDES",
	"LUMP_AREAS",
	"LUMP_AREAPORTALS",
	"LUMP_PORTALS",
	"LUMP_CLUSTERS",
	"LUMP_PORTALVERTS",
	"LUMP_CLUSTERPORTALS",
	"LUMP_DISPINFO",
	"LUMP_ORIGINALFACES",
	"LUMP_PHYSDISP",
	"LUMP_PHYSCOLLIDE",
	"LUMP_VERTNORMALS",
	"LUMP_VERTNORMALINDICES",
	"LUMP_DISP_LIGHTMAP_ALPHAS",
	"LUMP_DISP_VERTS",
	"LUMP_DISP_LIGHTMAP_SAMPLE_POSITIONS",
	"LUMP_GAME_LUMP",
	"LUMP_LEAFWATERDATA",
	"LUMP_PRIMITIVES",
	"LUMP_PRIMVERTS",
	"LUMP_PRIMINDICES",
	"LUMP_PAKFILE",
	"LUMP_CLIPPORTALVERTS",
	"LUMP_CUBEMAPS",
	"LUMP_TEXDATA_STRING_DATA",
	"LUMP_TEXDATA_STRING_TABLE",
	"LUMP_OVERLAYS",
	"LUMP_LEAFMINDISTTOWATER",
	"LUMP_FACE_MACRO_TEXTURE_INFO",
	"LUMP_DISP_TRIS",
	"LUMP_PHYSCOLLIDESURFACE",
	"LUMP_WATEROVERLAYS",
	"LUMP_LEAF_AMBIENT_INDEX_HDR",
	"LUMP_LEAF_AMBIENT_INDEX",
	"LUMP_LIGHTING_HDR",
	"LUMP_WORLDLIGHTS_HDR",
	"LUMP_LEAF_AMBIENT_LIGHTING_HDR",
	"LUMP_LEAF_AMBIENT_LIGHTING",
	"LUMP_XZIPPAKFILE",
	"LUMP_FACES_HDR",
	"LUMP_MAP_FLAGS",
	"LUMP_OVERLAY_FADES",
	"LUMP_OVERLAY_SYSTEM_LEVELS",
	"LUMP_PHYSLEVEL",
	"LUMP_DISP_MULTIBLEND",
}

// String returns the name of the lump type, e.g. "LUMP_ENTITIES".
func (t LumpType) String() string {
	if t < 0 || int(t) >= len(lumpNames) {
		return fmt.Sprintf("LUMP_%d", int(t))
	}
	return lumpNames[t]
}

// Lump is an entry of the lump directory of a BSP file.
//
// A lump only records where its data is located in the file,
// it does not hold the data itself. Use Read to access the data.
// Unused lumps have a zero FileLength (and usually a zero FileOffset).
type Lump struct {
	// Offset of the lump data, relative to the beginning of the file.
	FileOffset int32

	// Length of the lump data in bytes. 0 means the lump is absent.
	FileLength int32

	// Lump format version. Lump specific, not used by the checksum.
	Version int32

	// Lump identifier code. Lump specific, not used by the checksum.
	FourCC [4]byte

	// Type of the lump, the index of the lump in the directory.
	Type LumpType
}

// Less reports whether l is located before other in the file.
func (l Lump) Less(other Lump) bool {
	return l.FileOffset < other.FileOffset
}

// SortByOffset sorts lumps into the physical order of their data.
// Lumps with equal offsets keep their relative order.
func SortByOffset(lumps []Lump) {
	sort.SliceStable(lumps, func(i, j int) bool {
		return lumps[i].Less(lumps[j])
	})
}

// Read returns a LumpReader which reads the lump data from r chunk by chunk
// into buf. buf must not be empty if the lump has data.
//
// Nothing is read or seeked until the first call to LumpReader.Next.
// To read the data again, call Read again.
func (l Lump) Read(r io.ReadSeeker, buf []byte) *LumpReader {
	return &LumpReader{
		input:     r,
		buf:       buf,
		offset:    int64(l.FileOffset),
		remaining: int64(l.FileLength),
	}
}

// maxConsecutiveEmptyReads is the number of 0-byte reads tolerated
// in a row before a LumpReader gives up with io.ErrNoProgress.
const maxConsecutiveEmptyReads = 100

// LumpReader reads the data of a lump in chunks.
//
// The data of a chunk is placed at the beginning of the buffer passed to
// Lump.Read, and it is only valid until the next call to Next.
type LumpReader struct {
	input  io.ReadSeeker
	buf    []byte
	offset int64

	remaining int64 // Bytes of the lump not yet returned
	started   bool  // Tells if input has been positioned to offset
	err       error // Sticky error, reported by the next call to Next
}

// Next reads the next chunk of the lump into the buffer and returns the
// number of bytes read. io.EOF is returned after the whole lump has been read,
// or immediately if the lump is empty.
//
// A read returning no data and no error is not treated as the end of the
// input, it is retried. After 100 such reads in a row Next gives up and
// returns io.ErrNoProgress. If the input ends before the lump does,
// io.ErrUnexpectedEOF is returned.
func (lr *LumpReader) Next() (int, error) {
	if lr.err != nil {
		return 0, lr.err
	}
	if lr.remaining <= 0 {
		return 0, io.EOF
	}
	if len(lr.buf) == 0 {
		return 0, io.ErrShortBuffer
	}

	if !lr.started {
		if _, err := lr.input.Seek(lr.offset, io.SeekStart); err != nil {
			lr.err = err
			return 0, err
		}
		lr.started = true
	}

	chunk := lr.buf
	if int64(len(chunk)) > lr.remaining {
		chunk = chunk[:lr.remaining]
	}

	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := lr.input.Read(chunk)
		if n > 0 {
			lr.remaining -= int64(n)
			// Data comes first, the error is reported on the next call.
			if err != nil && !(err == io.EOF && lr.remaining == 0) {
				lr.err = eofToUnexpected(err)
			}
			return n, nil
		}
		if err != nil {
			lr.err = eofToUnexpected(err)
			return 0, lr.err
		}
	}

	lr.err = io.ErrNoProgress
	return 0, lr.err
}

// Remaining returns the number of bytes of the lump not yet read.
func (lr *LumpReader) Remaining() int64 {
	if lr.remaining < 0 {
		return 0
	}
	return lr.remaining
}

func eofToUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
