// Package lohibyte implements the 16-bit lo/hi byte de-interleave
// preprocessing used by the zstd1 wire format (spec §4.3): Unpack splits
// packed 16-bit samples into a low-byte plane followed by a high-byte
// plane; Pack is its inverse. A scalar implementation is always available;
// on amd64/arm64 with a vector unit detected at runtime, an unrolled fast
// path is used instead (see lohibyte_amd64.go / lohibyte_arm64.go /
// lohibyte_generic.go).
package lohibyte

import "encoding/binary"

// Unpack writes wordCount 16-bit little-endian samples from src (rows of
// stride bytes, lineCount rows) into dst as two contiguous planes: every
// sample's low byte in scanline order, followed by every sample's high
// byte in scanline order. len(dst) must be at least wordCount*2*lineCount.
func Unpack(src []byte, wordCount, stride, lineCount int, dst []byte) {
	unpackImpl(src, wordCount, stride, lineCount, dst)
}

// Pack is the inverse of Unpack: it reads two planes (each
// wordCount*lineCount bytes) from src and interleaves them into dst, a
// dstStride-byte-pitch buffer of 16-bit little-endian samples.
func Pack(src []byte, wordCount, lineCount, dstStride int, dst []byte) {
	packImpl(src, wordCount, lineCount, dstStride, dst)
}

// unpackScalar is the mandatory fallback implementation (spec §4.3).
func unpackScalar(src []byte, wordCount, stride, lineCount int, dst []byte) {
	planeSize := wordCount * lineCount
	lo := dst[:planeSize]
	hi := dst[planeSize : planeSize*2]
	idx := 0
	for line := 0; line < lineCount; line++ {
		row := src[line*stride : line*stride+wordCount*2]
		for w := 0; w < wordCount; w++ {
			v := binary.LittleEndian.Uint16(row[w*2:])
			lo[idx] = byte(v)
			hi[idx] = byte(v >> 8)
			idx++
		}
	}
}

// packScalar is the mandatory fallback implementation (spec §4.3).
func packScalar(src []byte, wordCount, lineCount, dstStride int, dst []byte) {
	planeSize := wordCount * lineCount
	lo := src[:planeSize]
	hi := src[planeSize : planeSize*2]
	idx := 0
	for line := 0; line < lineCount; line++ {
		row := dst[line*dstStride : line*dstStride+wordCount*2]
		for w := 0; w < wordCount; w++ {
			v := uint16(lo[idx]) | uint16(hi[idx])<<8
			binary.LittleEndian.PutUint16(row[w*2:], v)
			idx++
		}
	}
}
