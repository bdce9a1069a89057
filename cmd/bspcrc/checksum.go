package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/icza/bsp"
)

// Output formats of checksums.
const (
	formatHex    = "hex"
	formatDec    = "dec"
	formatSigned = "signed"
)

// formatChecksum formats crc in the given output format.
// The engine reports map checksums as signed 32-bit integers.
func formatChecksum(crc uint32, format string) string {
	switch format {
	case formatDec:
		return strconv.FormatUint(uint64(crc), 10)
	case formatSigned:
		return strconv.FormatInt(int64(int32(crc)), 10)
	default:
		return fmt.Sprintf("%08x", crc)
	}
}

// parseChecksum parses an expected checksum. Accepted forms are hex with a
// 0x prefix, unsigned decimal and negative decimal (the signed form).
func parseChecksum(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if lower := strings.ToLower(s); strings.HasPrefix(lower, "0x") {
		v, err := strconv.ParseUint(lower[2:], 16, 32)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid checksum %q", s)
		}
		return uint32(v), nil
	}
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid checksum %q", s)
		}
		return uint32(int32(v)), nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid checksum %q", s)
	}
	return uint32(v), nil
}

type fileResult struct {
	crc uint32
	err error
}

// checksumFiles prints the checksum of each file in argument order.
// Files are processed concurrently; a failing file does not stop the others,
// all failures are returned together.
func checksumFiles(out io.Writer, files []string, format string, concurrency int, opts ...bsp.Option) error {
	results := make([]fileResult, len(files))

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, name := range files {
		i, name := i, name // per-iteration copies (go.mod targets go1.21, pre-loopvar semantics)
		g.Go(func() error {
			crc, err := bsp.ChecksumFile(name, opts...)
			results[i] = fileResult{crc: crc, err: err}
			return nil
		})
	}
	// Failures are kept in results, the group itself never fails.
	g.Wait()

	var err error
	for i, name := range files {
		if r := results[i]; r.err != nil {
			level.Debug(logger).Log("msg", "checksum failed", "file", name, "err", r.err)
			err = multierror.Append(err, errors.Wrapf(r.err, "checksum %s", name))
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", formatChecksum(results[i].crc, format), name)
	}
	return err
}
