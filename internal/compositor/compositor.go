// Package compositor implements the multi-channel compositor of spec
// §4.10: N same-size single-channel bitmaps, each with its own weight,
// optional tint color, black/white-point ramp (or explicit lookup table),
// combined into a BGR24 or BGRA32 destination. Grounded on
// internal/encode/terrarium.go's ElevationToTerrarium (a per-channel
// transform-then-clamp-to-byte-range style), generalized from one channel
// to N weighted/tinted channels summed together.
package compositor

import (
	"encoding/binary"
	"fmt"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/model"
)

// ChannelInfo describes one input channel to Composite (spec §4.10).
type ChannelInfo struct {
	Bitmap *bitmap.Bitmap

	Weight float64

	EnableTinting bool
	TintColor     [3]float64 // (r,g,b) in [0,1], used only if EnableTinting

	// BlackPoint/WhitePoint define the linear ramp in [0,1] (normalized to
	// the channel's own full dynamic range) applied when LookupTable is
	// nil: values <= BlackPoint map to 0, values >= WhitePoint map to 1.
	BlackPoint, WhitePoint float64

	// LookupTable, when non-nil, replaces the linear ramp: index by the raw
	// sample value (0..255 for an 8-bit channel, 0..65535 for a 16-bit
	// channel) to get a normalized [0,1] intensity directly.
	LookupTable []float64
}

// Composite computes, for every pixel, out = sum_i weight_i * map_i(src_i) *
// tint_i, clamped to byte range per channel, and writes the result into
// dst (spec §4.10). dst's pixel type must be Bgr24 or Bgra32; for Bgra32,
// every pixel's alpha is set to constantAlpha. All channel bitmaps and dst
// must share the same width/height.
func Composite(channels []ChannelInfo, dst *bitmap.Bitmap, constantAlpha byte) error {
	if dst.PixelType() != model.Bgr24 && dst.PixelType() != model.Bgra32 {
		return fmt.Errorf("%w: compositor destination must be Bgr24 or Bgra32, got %s", model.ErrInvalidArgument, dst.PixelType())
	}
	w, h := dst.Width(), dst.Height()
	for _, ch := range channels {
		if ch.Bitmap.Width() != w || ch.Bitmap.Height() != h {
			return fmt.Errorf("%w: channel bitmap size %dx%d does not match destination %dx%d", model.ErrInvalidArgument, ch.Bitmap.Width(), ch.Bitmap.Height(), w, h)
		}
		switch ch.Bitmap.PixelType() {
		case model.Gray8, model.Gray16:
		default:
			return fmt.Errorf("%w: compositor channel must be Gray8 or Gray16, got %s", model.ErrUnsupportedPixelConversion, ch.Bitmap.PixelType())
		}
	}

	dstView := dst.Lock()
	defer dst.Unlock()
	dstBpp := model.MustBytesPerPel(dst.PixelType())

	locks := make([]bitmap.LockedView, len(channels))
	for i, ch := range channels {
		locks[i] = ch.Bitmap.Lock()
		defer ch.Bitmap.Unlock()
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float64
			for i, ch := range channels {
				intensity := sampleChannel(ch, locks[i], x, y)
				r += ch.Weight * intensity * tintComponent(ch, 0)
				g += ch.Weight * intensity * tintComponent(ch, 1)
				b += ch.Weight * intensity * tintComponent(ch, 2)
			}
			off := y*dstView.Stride + x*dstBpp
			dstView.Data[off+0] = clampByte(b)
			dstView.Data[off+1] = clampByte(g)
			dstView.Data[off+2] = clampByte(r)
			if dst.PixelType() == model.Bgra32 {
				dstView.Data[off+3] = constantAlpha
			}
		}
	}
	return nil
}

// tintComponent returns the tint multiplier for channel index c (0=R,
// 1=G, 2=B); an untinted channel contributes equally to all three.
func tintComponent(ch ChannelInfo, c int) float64 {
	if !ch.EnableTinting {
		return 1
	}
	return ch.TintColor[c]
}

// sampleChannel reads the raw sample at (x,y) from the channel's locked
// view and maps it to a normalized [0,1] intensity via its lookup table or
// linear black/white-point ramp.
func sampleChannel(ch ChannelInfo, view bitmap.LockedView, x, y int) float64 {
	var raw int
	var maxRaw int
	switch ch.Bitmap.PixelType() {
	case model.Gray8:
		raw = int(view.Data[y*view.Stride+x])
		maxRaw = 255
	case model.Gray16:
		raw = int(binary.LittleEndian.Uint16(view.Data[y*view.Stride+x*2 : y*view.Stride+x*2+2]))
		maxRaw = 65535
	}

	if ch.LookupTable != nil {
		if raw < 0 {
			raw = 0
		}
		if raw >= len(ch.LookupTable) {
			raw = len(ch.LookupTable) - 1
		}
		return ch.LookupTable[raw]
	}

	normalized := float64(raw) / float64(maxRaw)
	span := ch.WhitePoint - ch.BlackPoint
	if span <= 0 {
		if normalized >= ch.WhitePoint {
			return 1
		}
		return 0
	}
	v := (normalized - ch.BlackPoint) / span
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampByte(v float64) byte {
	scaled := v * 255
	if scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return byte(scaled + 0.5)
}
