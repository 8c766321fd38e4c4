package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/model"
)

// zstd0Decoder implements spec §4.4.2: the payload is exactly one zstd
// frame that decompresses to width*bytesPerPel*height bytes of
// minimal-stride pixel data, with no header of its own. Uses
// klauspost/compress/zstd, the standard Go zstd library (not in the
// teacher's own go.mod; grounded on its encoder/decoder usage in
// brawer-wikidata-qrank's cmd/qrank-builder/zstd_test.go and
// pagesignals.go).
type zstd0Decoder struct{}

func init() { Register(model.CompressionZstd0, zstd0Decoder{}) }

func (zstd0Decoder) Decode(data []byte, hint DecodeHint) (Result, error) {
	if hint.PixelType == model.Invalid || hint.Width <= 0 || hint.Height <= 0 {
		return Result{}, fmt.Errorf("%w: zstd0 decode requires an expected pixel type, width and height", model.ErrInvalidArgument)
	}
	bpp := model.MustBytesPerPel(hint.PixelType)
	want := hint.Width * bpp * hint.Height

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: zstd0: %v", model.ErrCorruptCompressedData, err)
	}
	defer dec.Close()

	pixels, err := dec.DecodeAll(data, make([]byte, 0, want))
	if err != nil {
		return Result{}, fmt.Errorf("%w: zstd0: %v", model.ErrCorruptCompressedData, err)
	}
	if len(pixels) != want {
		return Result{}, fmt.Errorf("%w: zstd0: decoded %d bytes, want %d", model.ErrCorruptCompressedData, len(pixels), want)
	}

	// The canonical on-disk form is little-endian; on a big-endian host,
	// Gray16/Bgr48 need an in-place 16-bit swap after decompression (spec
	// §4.1).
	bitmap.SwapInPlaceIfBigEndianHost(pixels, hint.PixelType)

	return Result{
		PixelType: hint.PixelType,
		Width:     hint.Width,
		Height:    hint.Height,
		Stride:    hint.Width * bpp,
		Pixels:    pixels,
	}, nil
}

// EncodeZstd0 compresses minimal-stride pixel data as a single raw zstd
// frame (spec §4.4.2 encode direction). pixels must already be in minimal
// stride; callers holding a strided bitmap compact it first.
func EncodeZstd0(pixels []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd0 encode: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(pixels, nil), nil
}
