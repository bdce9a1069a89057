// Implementation note:
// Like the lump data, the header is read field-by-field: the fields are
// primitive types for which binary.Read() is optimized, so no reflection is applied.

package bsp

import (
	"encoding/binary"
	"io"
)

// Identifier is the magic value of BSP files: the bytes "VBSP"
// read as a little-endian 32-bit integer.
const Identifier int32 = 'V' | 'B'<<8 | 'S'<<16 | 'P'<<24

// Supported BSP versions (inclusive).
const (
	MinVersion = 19
	MaxVersion = 21
)

// LumpCount is the number of entries in the lump directory.
// All of them are present in every file, unused ones have a zero length.
const LumpCount = 64

// Sizes of the header structures in bytes.
const (
	lumpEntrySize = 16

	// HeaderSize is the size of the header, the offset of the first byte after it.
	HeaderSize = 4 + 4 + LumpCount*lumpEntrySize + 4
)

// Header is the header of a BSP file, located at offset 0.
//
// The header is followed by the data of the lumps, in any order;
// the lump directory tells where each of them is.
type Header struct {
	// Magic value, always Identifier.
	Identifier int32

	// BSP format version, between MinVersion and MaxVersion.
	Version int32

	// The lump directory. The index of an entry is the type of the lump.
	Lumps [LumpCount]Lump

	// Revision number of the map. Informational, not used by the checksum.
	MapRevision int32
}

// ReadHeader reads and validates the header of a BSP file from r.
// r must be positioned at the beginning of the file; when ReadHeader
// returns successfully, exactly HeaderSize bytes have been consumed.
//
// A *FormatError is returned if the identifier or the version is invalid.
// Errors of r are returned as is.
// The lump directory is not checked against the size of the file.
func ReadHeader(r io.Reader) (*Header, error) {
	var err error

	read := func(data interface{}) error {
		if err != nil {
			return err // No-op if we already have an error
		}
		err = binary.Read(r, binary.LittleEndian, data)
		return err
	}

	h := &Header{}

	if read(&h.Identifier); err != nil {
		return nil, err
	}
	if h.Identifier != Identifier {
		return nil, &FormatError{Field: "identifier", Value: h.Identifier}
	}

	if read(&h.Version); err != nil {
		return nil, err
	}
	if h.Version < MinVersion || h.Version > MaxVersion {
		return nil, &FormatError{Field: "version", Value: h.Version}
	}

	for i := range h.Lumps {
		l := &h.Lumps[i]
		l.Type = LumpType(i)
		read(&l.FileOffset)
		read(&l.FileLength)
		read(&l.Version)
		read(l.FourCC[:])
	}
	read(&h.MapRevision)

	if err != nil {
		return nil, err
	}

	return h, nil
}

// Lump returns the directory entry of the given lump type.
// The zero Lump is returned for types outside the directory.
func (h *Header) Lump(t LumpType) Lump {
	if t < 0 || int(t) >= len(h.Lumps) {
		return Lump{Type: t}
	}
	return h.Lumps[t]
}

// Included returns the lumps contributing to the checksum in the order
// their data is fed to it: every lump except the entities lump,
// sorted by file offset. Empty lumps are included, they contribute nothing.
func (h *Header) Included() []Lump {
	lumps := make([]Lump, 0, len(h.Lumps))
	for _, l := range h.Lumps {
		if l.Type == LumpEntities {
			continue // Entities lump is never part of the checksum.
		}
		lumps = append(lumps, l)
	}
	SortByOffset(lumps)
	return lumps
}
