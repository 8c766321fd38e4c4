package model

import "errors"

// Boundary error values (spec §6.3). The root package re-exports these so
// callers can match on them with errors.Is without importing internal/model
// directly.
var (
	ErrInvalidArgument            = errors.New("libczi: invalid argument")
	ErrUnsupportedPixelConversion = errors.New("libczi: unsupported pixel conversion")
	ErrCouldNotDeterminePixelType = errors.New("libczi: could not determine pixel type")
	ErrCorruptCompressedData      = errors.New("libczi: corrupt compressed data")
	ErrInsufficientOutputBuffer   = errors.New("libczi: insufficient output buffer")
	ErrUnsupportedFormat          = errors.New("libczi: unsupported format")
	ErrOutOfRangeCoordinate       = errors.New("libczi: out-of-range coordinate")
	ErrLockInvariantViolation     = errors.New("libczi: lock invariant violation")
)

// EncodeSizeError wraps ErrInsufficientOutputBuffer with the size that would
// have been required (spec §7 class 4).
type EncodeSizeError struct {
	Required int
}

func (e *EncodeSizeError) Error() string { return ErrInsufficientOutputBuffer.Error() }
func (e *EncodeSizeError) Unwrap() error { return ErrInsufficientOutputBuffer }

// Invariant panics with a descriptive message. Reserved for spec §7 class 1
// programmer errors — conditions that are bugs, not runtime failures a
// caller can recover from.
func Invariant(cond bool, msg string) {
	if !cond {
		panic("libczi: invariant violated: " + msg)
	}
}
