package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/lohibyte"
	"github.com/kjmueller/libczi/internal/model"
)

// zstd1Decoder implements spec §4.4.3: a small chunked header (currently
// only a lo/hi byte packing flag) followed by a zstd frame. Unknown header
// chunks are a hard decode error rather than being silently skipped,
// per the spec's own recommendation (§9 open question, resolved in
// DESIGN.md) — forward-compatible chunk skipping would mask corrupt
// files as successfully-decoded-but-wrong-pixels.
type zstd1Decoder struct{}

func init() { Register(model.CompressionZstd1, zstd1Decoder{}) }

const chunkIDLoHiPacking = 1

// readVarintHeaderLen decodes the 7-bit little-endian, MSB-continuation
// varint that gives the total header length including itself (spec §6.2:
// max 3 bytes, max value 0x3FFFFF).
func readVarintHeaderLen(data []byte) (value, consumed int, err error) {
	for i := 0; i < 3 && i < len(data); i++ {
		b := data[i]
		value |= int(b&0x7F) << uint(7*i)
		if b&0x80 == 0 {
			return value, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: zstd1: malformed header size varint", model.ErrCorruptCompressedData)
}

// parseZstd1Header reads the header and returns whether lo/hi packing was
// applied along with the byte offset where the zstd frame begins.
func parseZstd1Header(data []byte) (packed bool, frameOffset int, err error) {
	if len(data) == 0 {
		return false, 0, fmt.Errorf("%w: zstd1: empty payload", model.ErrCorruptCompressedData)
	}
	headerLen, n, err := readVarintHeaderLen(data)
	if err != nil {
		return false, 0, err
	}
	if headerLen < n || headerLen > len(data) {
		return false, 0, fmt.Errorf("%w: zstd1: header length %d out of range", model.ErrCorruptCompressedData, headerLen)
	}

	chunks := data[n:headerLen]
	for i := 0; i < len(chunks); {
		id := chunks[i]
		i++
		switch id {
		case chunkIDLoHiPacking:
			if i >= len(chunks) {
				return false, 0, fmt.Errorf("%w: zstd1: truncated chunk %d", model.ErrCorruptCompressedData, id)
			}
			packed = chunks[i]&0x01 != 0
			i++
		default:
			return false, 0, fmt.Errorf("%w: zstd1: unknown header chunk id %d", model.ErrCorruptCompressedData, id)
		}
	}
	return packed, headerLen, nil
}

func (zstd1Decoder) Decode(data []byte, hint DecodeHint) (Result, error) {
	if hint.PixelType == model.Invalid || hint.Width <= 0 || hint.Height <= 0 {
		return Result{}, fmt.Errorf("%w: zstd1 decode requires an expected pixel type, width and height", model.ErrInvalidArgument)
	}
	packed, frameOffset, err := parseZstd1Header(data)
	if err != nil {
		return Result{}, err
	}
	if packed && hint.PixelType != model.Gray16 && hint.PixelType != model.Bgr48 {
		return Result{}, fmt.Errorf("%w: zstd1: packing bit set for non-16-bit pixel type %s", model.ErrCorruptCompressedData, hint.PixelType)
	}

	bpp := model.MustBytesPerPel(hint.PixelType)
	want := hint.Width * bpp * hint.Height

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: zstd1: %v", model.ErrCorruptCompressedData, err)
	}
	defer dec.Close()

	decompressed, err := dec.DecodeAll(data[frameOffset:], make([]byte, 0, want))
	if err != nil {
		return Result{}, fmt.Errorf("%w: zstd1: %v", model.ErrCorruptCompressedData, err)
	}
	if len(decompressed) != want {
		return Result{}, fmt.Errorf("%w: zstd1: decoded %d bytes, want %d", model.ErrCorruptCompressedData, len(decompressed), want)
	}

	pixels := decompressed
	if packed {
		pixels = make([]byte, want)
		wordCount := hint.Width * bpp / 2
		lohibyte.Pack(decompressed, wordCount, hint.Height, hint.Width*bpp, pixels)
	}

	// The canonical on-disk form is little-endian; on a big-endian host,
	// Gray16/Bgr48 need an in-place 16-bit swap after decompression (and,
	// if applicable, re-interleaving) (spec §4.1).
	bitmap.SwapInPlaceIfBigEndianHost(pixels, hint.PixelType)

	return Result{
		PixelType: hint.PixelType,
		Width:     hint.Width,
		Height:    hint.Height,
		Stride:    hint.Width * bpp,
		Pixels:    pixels,
	}, nil
}

// EncodeZstd1 mirrors Decode: optionally de-interleaves 16-bit samples into
// lo/hi planes, zstd-compresses the result, and prepends the chunked
// header (spec §4.4.3 encode direction).
func EncodeZstd1(pixelType model.PixelType, width, height int, pixels []byte, applyPacking bool) ([]byte, error) {
	bpp := model.MustBytesPerPel(pixelType)
	payload := pixels
	if applyPacking {
		if pixelType != model.Gray16 && pixelType != model.Bgr48 {
			return nil, fmt.Errorf("%w: zstd1: packing only applies to 16-bit pixel types", model.ErrInvalidArgument)
		}
		wordCount := width * bpp / 2
		planes := make([]byte, len(pixels))
		lohibyte.Unpack(pixels, wordCount, width*bpp, height, planes)
		payload = planes
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd1 encode: %w", err)
	}
	frame := enc.EncodeAll(payload, nil)
	enc.Close()

	packedByte := byte(0)
	if applyPacking {
		packedByte = 1
	}
	header := []byte{0x03, chunkIDLoHiPacking, packedByte}
	return append(header, frame...), nil
}
