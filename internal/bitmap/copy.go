package bitmap

import (
	"fmt"
	"math"

	"github.com/kjmueller/libczi/internal/model"
)

// Copy performs the mandatory scanline copy kernel of spec §4.1: one loop
// over h rows, per-pixel conversion when src and dst pixel types differ
// (a plain byte copy when they match), with an optional one-pixel black
// border drawn on the destination afterwards to mark the tile edge.
// Grounded on internal/tile/downsample.go's stride-aware nested loops.
func Copy(src []byte, srcStride int, srcType model.PixelType, dst []byte, dstStride int, dstType model.PixelType, w, h int, drawTileBorder bool) error {
	sameType := srcType == dstType
	if !sameType && !model.CanConvert(srcType, dstType) {
		return fmt.Errorf("%w: %s -> %s", model.ErrUnsupportedPixelConversion, srcType, dstType)
	}
	srcBpp := model.MustBytesPerPel(srcType)
	dstBpp := model.MustBytesPerPel(dstType)

	for y := 0; y < h; y++ {
		srcRow := src[y*srcStride : y*srcStride+w*srcBpp]
		dstRow := dst[y*dstStride : y*dstStride+w*dstBpp]
		if sameType {
			copy(dstRow, srcRow)
			continue
		}
		for x := 0; x < w; x++ {
			if err := Pixel(srcType, srcRow[x*srcBpp:x*srcBpp+srcBpp], dstType, dstRow[x*dstBpp:x*dstBpp+dstBpp]); err != nil {
				return err
			}
		}
	}
	if drawTileBorder {
		drawBorder(dst, dstStride, dstType, w, h)
	}
	return nil
}

// drawBorder paints a one-pixel black frame (top row, bottom row, left and
// right columns) to signal a tile edge, per spec §4.1.
func drawBorder(dst []byte, stride int, t model.PixelType, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	bpp := model.MustBytesPerPel(t)
	setBlack := func(x, y int) {
		off := y*stride + x*bpp
		writePixel(t, 0, 0, 0, dst[off:off+bpp])
	}
	for x := 0; x < w; x++ {
		setBlack(x, 0)
		setBlack(x, h-1)
	}
	for y := 0; y < h; y++ {
		setBlack(0, y)
		setBlack(w-1, y)
	}
}

// BlitInfo describes a source bitmap positioned at an offset in the
// destination's coordinate space, for CopyWithOffset (spec §4.1).
type BlitInfo struct {
	SrcRectAtOffset model.IntRect
	Src             []byte
	SrcStride       int
	SrcType         model.PixelType
	SrcSize         model.IntSize
}

// CopyWithOffset clips info.SrcRectAtOffset against the destination extent
// and invokes Copy on the intersection; it is a no-op if the intersection
// is empty (spec §4.1).
func CopyWithOffset(info BlitInfo, dst []byte, dstStride int, dstType model.PixelType, dstSize model.IntSize, drawTileBorder bool) error {
	destExtent := model.IntRect{W: dstSize.W, H: dstSize.H}
	clipped := info.SrcRectAtOffset.Intersect(destExtent)
	if clipped.Empty() {
		return nil
	}
	srcOffsetX := clipped.X - info.SrcRectAtOffset.X
	srcOffsetY := clipped.Y - info.SrcRectAtOffset.Y
	srcBpp := model.MustBytesPerPel(info.SrcType)
	srcStart := srcOffsetY*info.SrcStride + srcOffsetX*srcBpp
	dstBpp := model.MustBytesPerPel(dstType)
	dstStart := clipped.Y*dstStride + clipped.X*dstBpp
	return Copy(info.Src[srcStart:], info.SrcStride, info.SrcType, dst[dstStart:], dstStride, dstType, clipped.W, clipped.H, drawTileBorder)
}

// RealRect is a double-precision axis-aligned rectangle, used by NNResize
// for the source and destination ROIs (spec §4.1).
type RealRect struct {
	X, Y, W, H float64
}

// NNResize implements the nearest-neighbor scaling kernel of spec §4.1:
// for every destination pixel inside the clipped destination ROI, the
// corresponding source pixel is computed by linear mapping, rounded to the
// nearest integer and clamped to the source extent, then converted and
// copied. Destination pixels outside dstROI are left untouched (the caller
// is expected to have pre-cleared the background). dstW/dstH are the
// destination bitmap's extent; dstROI is clipped against them because
// dstROI.X+dstROI.W is frequently fractional (e.g. roi.W*zoom), which would
// otherwise push the ceil()'d iteration bound one pixel past the last valid
// row/column. Grounded on internal/tile/resample.go's explicit float-ROI
// sampling loop.
func NNResize(src []byte, srcStride int, srcType model.PixelType, srcW, srcH int, srcROI RealRect, dst []byte, dstStride int, dstType model.PixelType, dstW, dstH int, dstROI RealRect) error {
	if srcType != dstType && !model.CanConvert(srcType, dstType) {
		return fmt.Errorf("%w: %s -> %s", model.ErrUnsupportedPixelConversion, srcType, dstType)
	}
	if dstROI.W <= 0 || dstROI.H <= 0 {
		return nil
	}
	srcBpp := model.MustBytesPerPel(srcType)
	dstBpp := model.MustBytesPerPel(dstType)

	x0 := int(math.Floor(dstROI.X))
	y0 := int(math.Floor(dstROI.Y))
	x1 := int(math.Ceil(dstROI.X + dstROI.W))
	y1 := int(math.Ceil(dstROI.Y + dstROI.H))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > dstW {
		x1 = dstW
	}
	if y1 > dstH {
		y1 = dstH
	}

	for y := y0; y < y1; y++ {
		srcYf := (float64(y)-dstROI.Y)*srcROI.H/dstROI.H + srcROI.Y
		srcY := int(math.Round(srcYf))
		if srcY < 0 {
			srcY = 0
		} else if srcY > srcH-1 {
			srcY = srcH - 1
		}
		for x := x0; x < x1; x++ {
			srcXf := (float64(x)-dstROI.X)*srcROI.W/dstROI.W + srcROI.X
			srcX := int(math.Round(srcXf))
			if srcX < 0 {
				srcX = 0
			} else if srcX > srcW-1 {
				srcX = srcW - 1
			}
			srcOff := srcY*srcStride + srcX*srcBpp
			dstOff := y*dstStride + x*dstBpp
			if err := Pixel(srcType, src[srcOff:srcOff+srcBpp], dstType, dst[dstOff:dstOff+dstBpp]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Fill performs a solid-color fill with an (r,g,b) triple in [0,1] (spec
// §4.1). If any component is NaN, the fill is skipped entirely, which is
// how callers opt out of clearing the background.
func Fill(dst []byte, stride int, t model.PixelType, w, h int, r, g, b float64) {
	if math.IsNaN(r) || math.IsNaN(g) || math.IsNaN(b) {
		return
	}
	bpp := model.MustBytesPerPel(t)
	row := make([]byte, w*bpp)
	for x := 0; x < w; x++ {
		writePixel(t, r, g, b, row[x*bpp:x*bpp+bpp])
	}
	for y := 0; y < h; y++ {
		copy(dst[y*stride:y*stride+w*bpp], row)
	}
}
