package bsp

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotSeekable indicates that the input of a checksum computation
	// does not implement io.Seeker. It is returned before anything is read.
	ErrNotSeekable = errors.New("bsp: input must be seekable")

	// ErrInvalidFormat is matched (with errors.Is) by every *FormatError.
	ErrInvalidFormat = errors.New("bsp: invalid format")
)

// FormatError reports a header field holding a value that is not a valid
// or supported BSP value.
type FormatError struct {
	Field string // Name of the offending header field ("identifier" or "version")
	Value int32  // The value read from the input
}

func (e *FormatError) Error() string {
	switch e.Field {
	case "identifier":
		return fmt.Sprintf("bsp: invalid identifier 0x%08x (expected 0x%08x)", uint32(e.Value), uint32(Identifier))
	case "version":
		return fmt.Sprintf("bsp: unsupported version %d (supported %d-%d)", e.Value, MinVersion, MaxVersion)
	}
	return fmt.Sprintf("bsp: invalid %s %d", e.Field, e.Value)
}

// Is makes errors.Is(err, ErrInvalidFormat) true for format errors.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
