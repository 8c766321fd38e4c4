//go:build !cgo

package codec

import "fmt"

import "github.com/kjmueller/libczi/internal/model"

const jpegXRCGOAvailable = false

func decodeJpegXRNative(data []byte, hint DecodeHint) (Result, error) {
	return Result{}, fmt.Errorf("jpegxr: native jxrlib decoder requires CGO (install libjxr-dev and build with CGO_ENABLED=1)")
}

// EncodeJpegXR is unavailable without CGO.
func EncodeJpegXR(pixelType model.PixelType, width, height, stride int, pixels []byte, quality float64) ([]byte, error) {
	return nil, fmt.Errorf("jpegxr: native jxrlib encoder requires CGO (install libjxr-dev and build with CGO_ENABLED=1)")
}
