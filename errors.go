package libczi

import "github.com/kjmueller/libczi/internal/model"

// Boundary error values (spec §6.3). Callers can match on these with
// errors.Is; wrapped context is added with fmt.Errorf("...: %w", ...) at the
// call site, the same way the teacher wraps I/O errors in internal/pmtiles.
// The values themselves live in internal/model so every internal package can
// return them without importing this root package (which would cycle back
// through the directory/cache/accessor facades below).
var (
	ErrInvalidArgument            = model.ErrInvalidArgument
	ErrUnsupportedPixelConversion = model.ErrUnsupportedPixelConversion
	ErrCouldNotDeterminePixelType = model.ErrCouldNotDeterminePixelType
	ErrCorruptCompressedData      = model.ErrCorruptCompressedData
	ErrInsufficientOutputBuffer   = model.ErrInsufficientOutputBuffer
	ErrUnsupportedFormat          = model.ErrUnsupportedFormat
	ErrOutOfRangeCoordinate       = model.ErrOutOfRangeCoordinate
	ErrLockInvariantViolation     = model.ErrLockInvariantViolation
)

// EncodeSizeError wraps ErrInsufficientOutputBuffer with the size that would
// have been required (spec §7 class 4). The encoders in this module return
// freshly allocated output and never produce this error, and no upper-bound
// size helper is provided.
type EncodeSizeError = model.EncodeSizeError
