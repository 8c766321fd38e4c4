//go:build amd64 || arm64

package lohibyte

import "encoding/binary"

// unpackUnrolled processes four samples per inner-loop iteration, giving
// the compiler a better chance of auto-vectorizing the hot loop on hosts
// where hasFastPath confirmed vector support.
func unpackUnrolled(src []byte, wordCount, stride, lineCount int, dst []byte) {
	planeSize := wordCount * lineCount
	lo := dst[:planeSize]
	hi := dst[planeSize : planeSize*2]
	idx := 0
	for line := 0; line < lineCount; line++ {
		row := src[line*stride : line*stride+wordCount*2]
		w := 0
		for ; w+4 <= wordCount; w += 4 {
			for k := 0; k < 4; k++ {
				v := binary.LittleEndian.Uint16(row[(w+k)*2:])
				lo[idx+k] = byte(v)
				hi[idx+k] = byte(v >> 8)
			}
			idx += 4
		}
		for ; w < wordCount; w++ {
			v := binary.LittleEndian.Uint16(row[w*2:])
			lo[idx] = byte(v)
			hi[idx] = byte(v >> 8)
			idx++
		}
	}
}

// packUnrolled is the inverse of unpackUnrolled.
func packUnrolled(src []byte, wordCount, lineCount, dstStride int, dst []byte) {
	planeSize := wordCount * lineCount
	lo := src[:planeSize]
	hi := src[planeSize : planeSize*2]
	idx := 0
	for line := 0; line < lineCount; line++ {
		row := dst[line*dstStride : line*dstStride+wordCount*2]
		w := 0
		for ; w+4 <= wordCount; w += 4 {
			for k := 0; k < 4; k++ {
				v := uint16(lo[idx+k]) | uint16(hi[idx+k])<<8
				binary.LittleEndian.PutUint16(row[(w+k)*2:], v)
			}
			idx += 4
		}
		for ; w < wordCount; w++ {
			v := uint16(lo[idx]) | uint16(hi[idx])<<8
			binary.LittleEndian.PutUint16(row[w*2:], v)
			idx++
		}
	}
}
