package bsp

import (
	"hash/crc32"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultBufferSize is the size of the buffer lump data is read through.
const DefaultBufferSize = 64 * 1024

type options struct {
	bufferSize int
	logger     log.Logger
}

// Option configures a checksum computation.
type Option func(*options)

// WithBufferSize sets the size of the read buffer.
// Values less than 1 leave DefaultBufferSize in effect.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithLogger sets the logger debug information of the computation is written to.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Checksum computes the checksum of the BSP file read from input, the same
// CRC-32 value the Source engine computes to check that clients and the server
// run the same map.
//
// The checksum is the CRC-32 of the data of all lumps except the entities lump,
// concatenated in the order they appear in the file. It is not the checksum of the file.
//
// input must also implement io.Seeker and be able to seek, ErrNotSeekable is
// returned otherwise, before anything is read. A *FormatError is returned if the header is invalid.
// Errors of input are returned as is.
//
// Checksum keeps no state between calls; it may be called concurrently
// with different inputs.
func Checksum(input io.Reader, opts ...Option) (uint32, error) {
	in, ok := input.(io.ReadSeeker)
	if !ok {
		return 0, ErrNotSeekable
	}
	// Pipes and terminals implement io.Seeker but fail to seek.
	if _, err := in.Seek(0, io.SeekCurrent); err != nil {
		return 0, ErrNotSeekable
	}

	o := options{bufferSize: DefaultBufferSize, logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	h, err := ReadHeader(in)
	if err != nil {
		return 0, err
	}
	level.Debug(o.logger).Log("msg", "read bsp header", "version", h.Version, "map_revision", h.MapRevision)

	crc := ^uint32(0)
	buf := make([]byte, o.bufferSize)

	for _, l := range h.Included() {
		if l.FileLength <= 0 {
			continue
		}
		level.Debug(o.logger).Log("msg", "checksumming lump", "lump", l.Type, "offset", l.FileOffset, "length", l.FileLength)

		lr := l.Read(in, buf)
		for {
			n, err := lr.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return 0, err
			}
			// crc32.Update complements the value on entry and on exit.
			// The engine does neither between chunks, so cancel both out.
			crc = ^crc32.Update(^crc, crc32.IEEETable, buf[:n])
		}
	}

	return crc, nil
}

// ChecksumFile computes the checksum of the BSP file specified by its name.
// See Checksum for details.
func ChecksumFile(name string, opts ...Option) (uint32, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return Checksum(f, opts...)
}
