package bitmap

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/kjmueller/libczi/internal/model"
)

// Pixel converts one pixel from src (encoded as srcType) into dst (encoded
// as dstType), per the conversion matrix of spec §4.1: grayscale→color
// replicates intensity across B,G,R; color→grayscale averages the
// channels (no gamma correction); 8/16-bit components scale linearly;
// float components are clamped to the unit range. Grounded on
// internal/tile/downsample.go's per-pixel-type fast-path dispatch,
// generalized from "downsample one format" to "convert between any two
// supported formats" via a normalized-float intermediate representation.
func Pixel(srcType model.PixelType, src []byte, dstType model.PixelType, dst []byte) error {
	if srcType == model.Bgra32 && dstType == model.Bgra32 {
		copy(dst[:4], src[:4])
		return nil
	}
	if !model.CanConvert(srcType, dstType) {
		return fmt.Errorf("%w: %s -> %s", model.ErrUnsupportedPixelConversion, srcType, dstType)
	}
	r, g, b := readPixel(srcType, src)
	writePixel(dstType, r, g, b, dst)
	return nil
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mean3(r, g, b float64) float64 { return (r + g + b) / 3 }

// readPixel decodes src (encoded as t) into a normalized (r,g,b) triple in
// [0,1]; grayscale formats replicate their single channel across all
// three.
func readPixel(t model.PixelType, src []byte) (r, g, b float64) {
	switch t {
	case model.Gray8:
		v := float64(src[0]) / 255
		return v, v, v
	case model.Gray16:
		v := float64(binary.LittleEndian.Uint16(src)) / 65535
		return v, v, v
	case model.Gray32Float:
		v := clamp01(float64(math.Float32frombits(binary.LittleEndian.Uint32(src))))
		return v, v, v
	case model.Bgr24:
		bb := float64(src[0]) / 255
		gg := float64(src[1]) / 255
		rr := float64(src[2]) / 255
		return rr, gg, bb
	case model.Bgr48:
		bb := float64(binary.LittleEndian.Uint16(src[0:2])) / 65535
		gg := float64(binary.LittleEndian.Uint16(src[2:4])) / 65535
		rr := float64(binary.LittleEndian.Uint16(src[4:6])) / 65535
		return rr, gg, bb
	case model.Bgra32:
		bb := float64(src[0]) / 255
		gg := float64(src[1]) / 255
		rr := float64(src[2]) / 255
		return rr, gg, bb
	default:
		return 0, 0, 0
	}
}

// writePixel encodes a normalized (r,g,b) triple into dst (encoded as t);
// color formats write B,G,R in that on-disk order, grayscale formats write
// the mean of the three channels.
func writePixel(t model.PixelType, r, g, b float64, dst []byte) {
	switch t {
	case model.Gray8:
		dst[0] = byte(clamp01(mean3(r, g, b))*255 + 0.5)
	case model.Gray16:
		binary.LittleEndian.PutUint16(dst, uint16(clamp01(mean3(r, g, b))*65535+0.5))
	case model.Gray32Float:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(mean3(r, g, b))))
	case model.Bgr24:
		dst[0] = byte(clamp01(b)*255 + 0.5)
		dst[1] = byte(clamp01(g)*255 + 0.5)
		dst[2] = byte(clamp01(r)*255 + 0.5)
	case model.Bgr48:
		binary.LittleEndian.PutUint16(dst[0:2], uint16(clamp01(b)*65535+0.5))
		binary.LittleEndian.PutUint16(dst[2:4], uint16(clamp01(g)*65535+0.5))
		binary.LittleEndian.PutUint16(dst[4:6], uint16(clamp01(r)*65535+0.5))
	case model.Bgra32:
		dst[0] = byte(clamp01(b)*255 + 0.5)
		dst[1] = byte(clamp01(g)*255 + 0.5)
		dst[2] = byte(clamp01(r)*255 + 0.5)
		// Alpha is intentionally left untouched here; callers that need a
		// constant alpha (the compositor's BGRA32 output) set dst[3] themselves.
	}
}
