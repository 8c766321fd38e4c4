package codec

import (
	"fmt"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/model"
)

// rawDecoder handles CompressionUncompressed: the payload is exactly
// width*bytesPerPel*height bytes of minimal-stride pixel data, no framing
// at all.
type rawDecoder struct{}

func init() { Register(model.CompressionUncompressed, rawDecoder{}) }

func (rawDecoder) Decode(data []byte, hint DecodeHint) (Result, error) {
	if hint.PixelType == model.Invalid || hint.Width <= 0 || hint.Height <= 0 {
		return Result{}, fmt.Errorf("%w: raw decode requires an expected pixel type, width and height", model.ErrInvalidArgument)
	}
	bpp := model.MustBytesPerPel(hint.PixelType)
	want := hint.Width * bpp * hint.Height
	if len(data) != want {
		return Result{}, fmt.Errorf("%w: raw payload is %d bytes, want %d", model.ErrCorruptCompressedData, len(data), want)
	}

	// The canonical on-disk form is little-endian; on a big-endian host,
	// Gray16/Bgr48 need an in-place 16-bit swap after copying out of the
	// (possibly borrowed) source buffer (spec §4.1).
	pixels := make([]byte, want)
	copy(pixels, data)
	bitmap.SwapInPlaceIfBigEndianHost(pixels, hint.PixelType)

	return Result{
		PixelType: hint.PixelType,
		Width:     hint.Width,
		Height:    hint.Height,
		Stride:    hint.Width * bpp,
		Pixels:    pixels,
	}, nil
}
