//go:build !amd64 && !arm64

package lohibyte

func unpackImpl(src []byte, wordCount, stride, lineCount int, dst []byte) {
	unpackScalar(src, wordCount, stride, lineCount, dst)
}

func packImpl(src []byte, wordCount, lineCount, dstStride int, dst []byte) {
	packScalar(src, wordCount, lineCount, dstStride, dst)
}
