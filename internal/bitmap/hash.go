package bitmap

import (
	"crypto/md5"

	"github.com/kjmueller/libczi/internal/model"
)

// Hash computes the MD5 digest over src's pixel data, row by row, with
// multi-byte-component rows normalized to little-endian order first so the
// digest is identical regardless of host endianness (spec §6.2, §4.1;
// Supplemented Feature #1, grounded on
// original_source/Src/libCZI/MD5Sum.cpp). crypto/md5 is used directly: MD5
// is a stdlib primitive everywhere in the Go ecosystem and no pack repo
// reaches for a third-party implementation of it.
func Hash(src []byte, stride int, t model.PixelType, w, h int) [16]byte {
	bpp := model.MustBytesPerPel(t)
	rowBytes := w * bpp
	sum := md5.New()

	if !hostIsBigEndian || model.IsEndianAgnostic(t) {
		for y := 0; y < h; y++ {
			sum.Write(src[y*stride : y*stride+rowBytes])
		}
	} else {
		compSize := componentBytes(t)
		row := make([]byte, rowBytes)
		for y := 0; y < h; y++ {
			copy(row, src[y*stride:y*stride+rowBytes])
			swapRow(row, compSize)
			sum.Write(row)
		}
	}

	var out [16]byte
	copy(out[:], sum.Sum(nil))
	return out
}
