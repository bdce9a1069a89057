package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/icza/bsp"
)

// inspectFile prints the header fields and the lump directory of a file,
// in the order the lumps are checksummed.
func inspectFile(out io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := bsp.ReadHeader(f)
	if err != nil {
		return errors.Wrapf(err, "read header of %s", name)
	}

	return writeHeader(out, name, h)
}

func writeHeader(out io.Writer, name string, h *bsp.Header) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "File:\t%s\n", name)
	fmt.Fprintf(w, "Version:\t%d\n", h.Version)
	fmt.Fprintf(w, "Map Revision:\t%d\n", h.MapRevision)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "#\tLUMP\tOFFSET\tLENGTH\tSIZE\tVERSION\tFOURCC\t")

	entities := h.Lump(bsp.LumpEntities)
	lumps := append([]bsp.Lump{entities}, h.Included()...)
	bsp.SortByOffset(lumps)

	for _, l := range lumps {
		if l.FileLength <= 0 {
			continue
		}
		note := ""
		if l.Type == bsp.LumpEntities {
			note = "not checksummed"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%d\t%s\t%s\n",
			int(l.Type), l.Type, l.FileOffset, l.FileLength,
			humanize.IBytes(uint64(l.FileLength)), l.Version, fourCC(l.FourCC), note)
	}

	return w.Flush()
}

// fourCC returns the printable form of a lump identifier code.
func fourCC(b [4]byte) string {
	if b == [4]byte{} {
		return "-"
	}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return strconv.Quote(string(b[:]))
		}
	}
	return string(b[:])
}
