package model

import "fmt"

// PixelType enumerates the pixel formats a sub-block or bitmap may carry
// (spec §3.1). Numeric values are stable (they appear in test fixtures and
// in the conversion-matrix table below) but are not meant to match any
// on-disk encoding — that mapping belongs to the out-of-scope segment parser.
type PixelType int

const (
	// Invalid marks a bitmap or sub-block with no usable pixel format.
	Invalid PixelType = iota
	Gray8
	Gray16
	Gray32Float
	Bgr24
	Bgr48
	Bgra32
	Bgr96Float
	Gray32
	Gray64Float
	Gray64ComplexFloat
	Bgr192ComplexFloat
)

// String implements fmt.Stringer for diagnostics.
func (p PixelType) String() string {
	switch p {
	case Gray8:
		return "Gray8"
	case Gray16:
		return "Gray16"
	case Gray32Float:
		return "Gray32Float"
	case Bgr24:
		return "Bgr24"
	case Bgr48:
		return "Bgr48"
	case Bgra32:
		return "Bgra32"
	case Bgr96Float:
		return "Bgr96Float"
	case Gray32:
		return "Gray32"
	case Gray64Float:
		return "Gray64Float"
	case Gray64ComplexFloat:
		return "Gray64ComplexFloat"
	case Bgr192ComplexFloat:
		return "Bgr192ComplexFloat"
	default:
		return "Invalid"
	}
}

// bytesPerPel gives the exactly-known byte width of one pixel for each
// pixel type (spec §3.1).
var bytesPerPel = map[PixelType]int{
	Gray8:              1,
	Gray16:             2,
	Gray32Float:        4,
	Bgr24:              3,
	Bgr48:              6,
	Bgra32:             4,
	Bgr96Float:         12,
	Gray32:             4,
	Gray64Float:        8,
	Gray64ComplexFloat: 16,
	Bgr192ComplexFloat: 48,
}

// BytesPerPel returns the number of bytes one pixel of t occupies. It
// returns (0, false) for PixelType Invalid or any unrecognized value.
func BytesPerPel(t PixelType) (int, bool) {
	n, ok := bytesPerPel[t]
	return n, ok
}

// MustBytesPerPel is BytesPerPel but panics on an unrecognized pixel type;
// reserved for call sites that already validated t (spec §7 class 1 — an
// impossible pixel type reaching here is a programmer error, not a runtime
// condition).
func MustBytesPerPel(t PixelType) int {
	n, ok := bytesPerPel[t]
	Invariant(ok, fmt.Sprintf("unrecognized pixel type %v", t))
	return n
}

// endianAgnostic lists the pixel types whose component width is one byte,
// and therefore round-trip without any byte-swap correction regardless of
// host endianness (spec §3.1, §4.1).
var endianAgnostic = map[PixelType]bool{
	Gray8:  true,
	Bgr24:  true,
	Bgra32: true,
}

// IsEndianAgnostic reports whether t's components are one byte wide, so no
// host-endian correction is needed when loading it from the canonical
// little-endian on-disk form.
func IsEndianAgnostic(t PixelType) bool {
	return endianAgnostic[t]
}

// convertibleSet is the pixel-conversion support matrix (spec §4.1): any
// member converts to any other member, plus the Bgra32-to-Bgra32 identity
// used by the bitonal-mask copy path. Pairs outside this set report
// ErrUnsupportedPixelConversion.
var convertibleSet = map[PixelType]bool{
	Gray8:       true,
	Gray16:      true,
	Gray32Float: true,
	Bgr24:       true,
	Bgr48:       true,
}

// CanConvert reports whether the pixel conversion matrix defines a
// converter from src to dst (spec §4.1).
func CanConvert(src, dst PixelType) bool {
	if src == Bgra32 && dst == Bgra32 {
		return true
	}
	return convertibleSet[src] && convertibleSet[dst]
}

// isColor reports whether t has three or more color channels (as opposed to
// a single grayscale channel).
func isColor(t PixelType) bool {
	switch t {
	case Bgr24, Bgr48, Bgra32, Bgr96Float, Bgr192ComplexFloat:
		return true
	default:
		return false
	}
}

// isFloat reports whether t stores floating-point samples, which must be
// clamped to the unit range before conversion (spec §4.1).
func isFloat(t PixelType) bool {
	switch t {
	case Gray32Float, Gray64Float, Gray64ComplexFloat, Bgr96Float, Bgr192ComplexFloat:
		return true
	default:
		return false
	}
}
