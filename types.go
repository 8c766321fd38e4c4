package libczi

import "github.com/kjmueller/libczi/internal/model"

// Public aliases for the shared data model (spec §3). The concrete types
// live in internal/model so that internal/stats, internal/directory,
// internal/cache, internal/accessor, and internal/codec can all depend on
// them without importing this root package.
type (
	PixelType       = model.PixelType
	DimensionIndex  = model.DimensionIndex
	Coordinate      = model.Coordinate
	IntRect         = model.IntRect
	IntSize         = model.IntSize
	CompressionMode = model.CompressionMode
	PyramidType     = model.PyramidType
	SubBlockInfo    = model.SubBlockInfo
)

// Pixel type constants (spec §3.1).
const (
	Invalid            = model.Invalid
	Gray8              = model.Gray8
	Gray16             = model.Gray16
	Gray32Float        = model.Gray32Float
	Bgr24              = model.Bgr24
	Bgr48              = model.Bgr48
	Bgra32             = model.Bgra32
	Bgr96Float         = model.Bgr96Float
	Gray32             = model.Gray32
	Gray64Float        = model.Gray64Float
	Gray64ComplexFloat = model.Gray64ComplexFloat
	Bgr192ComplexFloat = model.Bgr192ComplexFloat
)

// Dimension axis constants (spec §3.3, GLOSSARY).
const (
	DimInvalid = model.DimInvalid
	DimZ       = model.DimZ
	DimC       = model.DimC
	DimT       = model.DimT
	DimR       = model.DimR
	DimS       = model.DimS
	DimI       = model.DimI
	DimH       = model.DimH
	DimV       = model.DimV
	DimB       = model.DimB
)

// Compression mode constants.
const (
	CompressionUncompressed = model.CompressionUncompressed
	CompressionJpeg         = model.CompressionJpeg
	CompressionLzw          = model.CompressionLzw
	CompressionJpegXr       = model.CompressionJpegXr
	CompressionZstd0        = model.CompressionZstd0
	CompressionZstd1        = model.CompressionZstd1
	CompressionUnknown      = model.CompressionUnknown
)

// NewCoordinate constructs an empty Coordinate (spec §3.3).
func NewCoordinate() Coordinate { return model.NewCoordinate() }

// ParseCoordinate parses the compact "C1T3Z0"-style coordinate form.
func ParseCoordinate(s string) (Coordinate, error) { return model.ParseCoordinate(s) }

// BytesPerPel returns the byte width of one pixel of t (spec §3.1).
func BytesPerPel(t PixelType) (int, bool) { return model.BytesPerPel(t) }

// CanConvert reports whether the pixel conversion matrix defines a
// converter from src to dst (spec §4.1).
func CanConvert(src, dst PixelType) bool { return model.CanConvert(src, dst) }

// IsEndianAgnostic reports whether t's components are one byte wide.
func IsEndianAgnostic(t PixelType) bool { return model.IsEndianAgnostic(t) }
