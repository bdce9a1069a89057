package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/icza/bsp"
)

var errMismatch = errors.New("checksum mismatch")

var (
	okColor       = color.New(color.FgGreen, color.Bold)
	mismatchColor = color.New(color.FgRed, color.Bold)
)

// verifyFile compares the checksum of a file against the expected value.
// errMismatch is returned if they differ.
func verifyFile(out io.Writer, name, expect string, opts ...bsp.Option) error {
	want, err := parseChecksum(expect)
	if err != nil {
		return err
	}

	got, err := bsp.ChecksumFile(name, opts...)
	if err != nil {
		return errors.Wrapf(err, "checksum %s", name)
	}

	if got != want {
		fmt.Fprintf(out, "%s  %s: got %08x (%d), expected %08x (%d)\n",
			mismatchColor.Sprint("MISMATCH"), name, got, int32(got), want, int32(want))
		return errMismatch
	}

	fmt.Fprintf(out, "%s  %s: %08x (%d)\n", okColor.Sprint("OK"), name, got, int32(got))
	return nil
}
