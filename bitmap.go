package libczi

import "github.com/kjmueller/libczi/internal/bitmap"

// Bitmap owns a contiguous, aligned pixel buffer with reentrant scoped
// locking (spec §3.2, §4.1). The concrete implementation lives in
// internal/bitmap; this is a thin alias so external callers can allocate
// and lock one directly.
type Bitmap = bitmap.Bitmap

// LockedView is the {data, stride} pair Bitmap.Lock hands out.
type LockedView = bitmap.LockedView

// NewBitmap allocates a Bitmap with the minimal stride for pixelType
// (Supplemented Feature #3, the Go-idiomatic equivalent of
// CreateBitmap.cpp's factory functions).
func NewBitmap(pixelType PixelType, width, height int) *Bitmap {
	bpp, _ := BytesPerPel(pixelType)
	return bitmap.New(pixelType, width, height, width*bpp)
}

// NewBitmapWithStride allocates a Bitmap with an explicit stride, which
// must be >= width*bytes_per_pel(pixelType).
func NewBitmapWithStride(pixelType PixelType, width, height, stride int) *Bitmap {
	return bitmap.New(pixelType, width, height, stride)
}

// BitmapHash computes the MD5 digest of bm's pixel data (spec §6.2;
// Supplemented Feature #1).
func BitmapHash(bm *Bitmap) [16]byte {
	view := bm.Lock()
	defer bm.Unlock()
	return bitmap.Hash(view.Data, view.Stride, bm.PixelType(), bm.Width(), bm.Height())
}
