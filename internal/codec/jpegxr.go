package codec

import "github.com/kjmueller/libczi/internal/model"

// jpegXRDecoder delegates to decodeJpegXRNative, whose implementation
// depends on the cgo build tag (jpegxr_native.go vs jpegxr_stub.go), the
// same split internal/encode uses for libwebp (webp.go / webp_stub.go).
type jpegXRDecoder struct{}

func init() { Register(model.CompressionJpegXr, jpegXRDecoder{}) }

func (jpegXRDecoder) Decode(data []byte, hint DecodeHint) (Result, error) {
	return decodeJpegXRNative(data, hint)
}
