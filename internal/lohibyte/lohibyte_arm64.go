//go:build arm64

package lohibyte

import "golang.org/x/sys/cpu"

// hasFastPath reports whether this host's CPU supports the vector
// extensions the unrolled path targets, detected once at startup (spec
// §4.3: "SIMD paths... permitted when runtime CPU detection confirms
// support").
var hasFastPath = cpu.ARM64.HasASIMD

func unpackImpl(src []byte, wordCount, stride, lineCount int, dst []byte) {
	if hasFastPath {
		unpackUnrolled(src, wordCount, stride, lineCount, dst)
		return
	}
	unpackScalar(src, wordCount, stride, lineCount, dst)
}

func packImpl(src []byte, wordCount, lineCount, dstStride int, dst []byte) {
	if hasFastPath {
		packUnrolled(src, wordCount, lineCount, dstStride, dst)
		return
	}
	packScalar(src, wordCount, lineCount, dstStride, dst)
}
