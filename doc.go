/*

Package bsp computes the checksum of Source engine map files (*.bsp).

The Source engine does not checksum a map file as a whole: it computes a CRC-32
over the data of every lump except the entities lump, in the order the lumps are
located in the file. Servers and clients compare this value to make sure they
run the same map, and it is what this package reproduces.

This is not a full BSP implementation: apart from the header and the lump directory,
the content of the file is not interpreted.

Usage

Computing the checksum of a map file:

	crc, err := bsp.ChecksumFile("de_dust2.bsp")
	if err != nil {
		// Handle error
		return
	}
	fmt.Printf("%08x\n", crc)

If you already have the map data in memory:

	bspdata := []byte{} // BSP data in memory
	crc, err := bsp.Checksum(bytes.NewReader(bspdata))

The input must be seekable, as lumps are read in file order rather than
directory order. Errors can be told apart:

	switch {
	case errors.Is(err, bsp.ErrNotSeekable):
		// The input does not implement io.Seeker
	case errors.Is(err, bsp.ErrInvalidFormat):
		// Not a BSP file or unsupported version, see *bsp.FormatError
	case err != nil:
		// I/O error of the input
	}

File layout

All integers are little-endian, 4 bytes long:

	offset  size  field
	0       4     identifier, "VBSP"
	4       4     version, 19 to 21
	8       1024  lump directory, 64 entries
	1032    4     map revision

	lump directory entry (16 bytes):
	0       4     file offset of the lump data
	4       4     length of the lump data
	8       4     lump format version
	12      4     four CC

The index of an entry in the directory is the type of the lump, entry 0 is the entities lump.

Information sources

Valve Developer Community, BSP (Source): https://developer.valvesoftware.com/wiki/BSP_(Source)

Source SDK 2013, public/bspfile.h: https://github.com/ValveSoftware/source-sdk-2013

*/
package bsp
