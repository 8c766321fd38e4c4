//go:build cgo

package codec

/*
#cgo pkg-config: libjxr
#include <stdlib.h>
#include <string.h>
#include <JXRGlue.h>

// jxr_decode_memory wraps the PKImageDecode stream API jxrlib exposes as a
// struct of function pointers: create a decoder over an in-memory stream,
// read its declared size and pixel format, then copy the decoded pixels
// into a caller-supplied buffer at the given stride. Returns a jxrlib ERR
// code (WMP_errSuccess == 0 on success).
static ERR jxr_decode_memory(const unsigned char* data, size_t size,
                              I32* out_width, I32* out_height,
                              PKPixelFormatGUID* out_format,
                              unsigned char* dst, U32 dst_stride) {
    WMPStream* stream = NULL;
    ERR err = CreateWS_Memory(&stream, (void*)data, size);
    if (err != WMP_errSuccess) {
        return err;
    }

    PKImageDecode* decoder = NULL;
    err = PKCodecFactory_CreateDecoderFromStream(stream, &decoder);
    if (err != WMP_errSuccess) {
        if (decoder != NULL) {
            decoder->Release(&decoder);
        }
        stream->Close(&stream);
        return err;
    }

    err = decoder->GetSize(decoder, out_width, out_height);
    if (err != WMP_errSuccess) {
        goto cleanup;
    }
    err = decoder->GetPixelFormat(decoder, out_format);
    if (err != WMP_errSuccess) {
        goto cleanup;
    }

    if (dst != NULL) {
        PKRect rect = {0, 0, *out_width, *out_height};
        err = decoder->Copy(decoder, &rect, dst, dst_stride);
    }

cleanup:
    decoder->Release(&decoder);
    return err;
}

// jxr_encode_memory encodes one frame of pixel data and returns a
// heap-backed buffer via out_data/out_size (caller must free out_data with
// free()). Mirrors the Initialize / SetPixelFormat / SetSize /
// SetResolution / WritePixels sequence JxrDecode.cpp's Encode uses. The six
// qp values are the per-subband QP indices (Y, U, V, YHP, UHP, VHP)
// computed by the Go quality mapping in jpegxr_quality.go, mirroring
// JxrDecode.cpp's ApplyQuality.
static ERR jxr_encode_memory(const PKPixelFormatGUID* format,
                              I32 width, I32 height, U32 stride,
                              const unsigned char* pixels,
                              U32 overlap, U32 chroma_format,
                              const U8 qp[6],
                              unsigned char** out_data, size_t* out_size) {
    PKImageEncode* encoder = NULL;
    ERR err = PKCodecFactory_CreateCodec(&IID_PKImageWmpEncode, (void**)&encoder);
    if (err != WMP_errSuccess) {
        return err;
    }

    CWMIStrCodecParam params;
    memset(&params, 0, sizeof(params));
    params.bVerbose = FALSE;
    params.cfColorFormat = (chroma_format == 0) ? YUV_420 : YUV_444;
    params.bdBitDepth = BD_LONG;
    params.bfBitstreamFormat = FREQUENCY;
    params.bProgressiveMode = TRUE;
    params.olOverlap = (overlap == 1) ? OL_ONE : OL_TWO;
    params.sbSubband = SB_ALL;
    params.uiDefaultQPIndex = qp[0];
    params.uiDefaultQPIndexU = qp[1];
    params.uiDefaultQPIndexV = qp[2];
    params.uiDefaultQPIndexYHP = qp[3];
    params.uiDefaultQPIndexUHP = qp[4];
    params.uiDefaultQPIndexVHP = qp[5];
    params.uiDefaultQPIndexAlpha = qp[0];

    struct tagWMPStream* stream = NULL;
    err = CreateWS_HeapBackedWriteableStream(&stream, 1024, 0);
    if (err != WMP_errSuccess) {
        encoder->Release(&encoder);
        return err;
    }

    err = encoder->Initialize(encoder, stream, &params, sizeof(params));
    if (err != WMP_errSuccess) {
        goto fail;
    }
    err = encoder->SetPixelFormat(encoder, *format);
    if (err != WMP_errSuccess) {
        goto fail;
    }
    err = encoder->SetSize(encoder, width, height);
    if (err != WMP_errSuccess) {
        goto fail;
    }
    err = encoder->SetResolution(encoder, 96.f, 96.f);
    if (err != WMP_errSuccess) {
        goto fail;
    }
    err = encoder->WritePixels(encoder, height, (unsigned char*)pixels, stride);
    if (err != WMP_errSuccess) {
        goto fail;
    }

    {
        size_t count = 0;
        stream->GetPos(stream, &count);
        unsigned char* buf = (unsigned char*)malloc(count);
        stream->SetPos(stream, 0);
        stream->Read(stream, buf, count);
        *out_data = buf;
        *out_size = count;
    }

fail:
    encoder->pStream = NULL;
    encoder->Release(&encoder);
    stream->Close(&stream);
    return err;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/kjmueller/libczi/internal/model"
)

const jpegXRCGOAvailable = true

// decodeJpegXRNative wraps jxrlib's decoder, choosing the nearest-supported
// output pixel format conservatively: any RGB/BGR variant decodes to
// Bgr24, any 48-bit RGB variant to Bgr48, grayscale 8-bit to Gray8,
// grayscale float to Gray32Float. Because jxrlib emits 48-bit samples as
// RGB rather than BGR, an in-place red/blue channel swap is applied when
// the chosen output is Bgr48. Grounded file-for-file on the cgo + pkg-config
// shape internal/encode/webp.go uses for libwebp, with the decode sequence
// itself grounded on original_source/Src/JxrDecode/JxrDecode.cpp's
// CreateWS_Memory / PKCodecFactory_CreateDecoderFromStream / GetSize /
// GetPixelFormat / Copy call sequence.
func decodeJpegXRNative(data []byte, hint DecodeHint) (Result, error) {
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: jpegxr: empty payload", model.ErrCorruptCompressedData)
	}

	var width, height C.I32
	var format C.PKPixelFormatGUID
	if err := C.jxr_decode_memory(
		(*C.uchar)(unsafe.Pointer(&data[0])), C.size_t(len(data)),
		&width, &height, &format, nil, 0,
	); err != 0 {
		return Result{}, fmt.Errorf("%w: jpegxr: failed to read stream header (jxrlib error %d)", model.ErrCorruptCompressedData, int(err))
	}

	if hint.Width > 0 && int(width) != hint.Width {
		return Result{}, fmt.Errorf("%w: jpegxr: stream width %d does not match expected %d", model.ErrCorruptCompressedData, width, hint.Width)
	}
	if hint.Height > 0 && int(height) != hint.Height {
		return Result{}, fmt.Errorf("%w: jpegxr: stream height %d does not match expected %d", model.ErrCorruptCompressedData, height, hint.Height)
	}

	outType, needsRBSwap := chooseOutputPixelType(format)
	if hint.PixelType != model.Invalid && hint.PixelType != outType {
		return Result{}, fmt.Errorf("%w: jpegxr: decoded pixel type %s does not match expected %s", model.ErrCorruptCompressedData, outType, hint.PixelType)
	}

	bpp := model.MustBytesPerPel(outType)
	stride := int(width) * bpp
	pixels := make([]byte, stride*int(height))

	if err := C.jxr_decode_memory(
		(*C.uchar)(unsafe.Pointer(&data[0])), C.size_t(len(data)),
		&width, &height, &format,
		(*C.uchar)(unsafe.Pointer(&pixels[0])), C.U32(stride),
	); err != 0 {
		return Result{}, fmt.Errorf("%w: jpegxr: decode failed (jxrlib error %d)", model.ErrCorruptCompressedData, int(err))
	}

	if needsRBSwap {
		swapRedBlue48(pixels)
	}

	return Result{
		PixelType: outType,
		Width:     int(width),
		Height:    int(height),
		Stride:    stride,
		Pixels:    pixels,
	}, nil
}

// swapRedBlue48 exchanges the red and blue 16-bit samples of every pixel
// in a 6-byte-per-pixel buffer, converting jxrlib's native RGB48 ordering
// to the library's Bgr48.
func swapRedBlue48(pixels []byte) {
	for i := 0; i+6 <= len(pixels); i += 6 {
		pixels[i], pixels[i+4] = pixels[i+4], pixels[i]
		pixels[i+1], pixels[i+5] = pixels[i+5], pixels[i+1]
	}
}

// chooseOutputPixelType maps a jxrlib pixel format GUID to the nearest
// supported output type, reporting whether an R/B channel swap is needed.
func chooseOutputPixelType(format C.PKPixelFormatGUID) (model.PixelType, bool) {
	isEqual := func(guid C.GUID) bool {
		return C.IsEqualGUID(&format, &guid) != 0
	}
	switch {
	case isEqual(C.GUID_PKPixelFormat8bppGray):
		return model.Gray8, false
	case isEqual(C.GUID_PKPixelFormat16bppGray):
		return model.Gray16, false
	case isEqual(C.GUID_PKPixelFormat32bppGrayFloat):
		return model.Gray32Float, false
	case isEqual(C.GUID_PKPixelFormat24bppBGR):
		return model.Bgr24, false
	case isEqual(C.GUID_PKPixelFormat48bppRGB):
		return model.Bgr48, true
	default:
		return model.Bgr24, false
	}
}

// encodePixelFormatGUID maps a supported encoder input pixel type to the
// jxrlib format GUID to encode into, reporting whether the caller's bytes
// need an in-place R/B swap first: jxrlib's encoder only ever writes
// 48-bit samples as RGB48, the same asymmetry decodeJpegXRNative corrects
// for on the way out.
func encodePixelFormatGUID(pixelType model.PixelType) (C.PKPixelFormatGUID, bool, error) {
	switch pixelType {
	case model.Gray8:
		return C.GUID_PKPixelFormat8bppGray, false, nil
	case model.Gray16:
		return C.GUID_PKPixelFormat16bppGray, false, nil
	case model.Gray32Float:
		return C.GUID_PKPixelFormat32bppGrayFloat, false, nil
	case model.Bgr24:
		return C.GUID_PKPixelFormat24bppBGR, false, nil
	case model.Bgr48:
		return C.GUID_PKPixelFormat48bppRGB, true, nil
	default:
		return C.PKPixelFormatGUID{}, false, fmt.Errorf("%w: jpegxr: cannot encode pixel type %s", model.ErrUnsupportedPixelConversion, pixelType)
	}
}

// encodeJpegXRNative implements the JPEG-XR encode contract of spec
// §4.4.1: given pixelType in {Bgr24, Bgr48, Gray8, Gray16, Gray32Float},
// width, height, stride, source pointer and a quality in [0,1], it picks
// overlap level, chroma subsampling and per-subband QP indices via the
// jxrlib-derived quality mapping in jpegxr_quality.go, then calls
// jxr_encode_memory with a minimal-stride copy of the source pixels (the
// one place a stride conversion is needed, since WritePixels consumes one
// fixed stride for the whole image).
func encodeJpegXRNative(pixelType model.PixelType, width, height, stride int, pixels []byte, quality float64) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: jpegxr: width and height must be positive", model.ErrInvalidArgument)
	}
	if quality < 0 || quality > 1 {
		return nil, fmt.Errorf("%w: jpegxr: quality %f out of range [0,1]", model.ErrInvalidArgument, quality)
	}

	format, needsRBSwap, err := encodePixelFormatGUID(pixelType)
	if err != nil {
		return nil, err
	}

	bpp := model.MustBytesPerPel(pixelType)
	minStride := width * bpp
	encodeBuf := make([]byte, minStride*height)
	for y := 0; y < height; y++ {
		copy(encodeBuf[y*minStride:(y+1)*minStride], pixels[y*stride:y*stride+minStride])
	}
	if needsRBSwap {
		swapRedBlue48(encodeBuf)
	}

	chroma444 := jxrUseChroma444(quality, pixelType)
	overlap := jxrOverlap(quality, width)
	qp := jxrQPIndices(pixelType, quality, chroma444)

	var cqp [6]C.U8
	for i, v := range qp {
		cqp[i] = C.U8(v)
	}
	chromaFlag := C.U32(0)
	if chroma444 {
		chromaFlag = 1
	}

	var outData *C.uchar
	var outSize C.size_t
	if err := C.jxr_encode_memory(
		&format, C.I32(width), C.I32(height), C.U32(minStride),
		(*C.uchar)(unsafe.Pointer(&encodeBuf[0])),
		C.U32(overlap), chromaFlag, &cqp[0],
		&outData, &outSize,
	); err != 0 {
		return nil, fmt.Errorf("%w: jpegxr: encode failed (jxrlib error %d)", model.ErrCorruptCompressedData, int(err))
	}
	defer C.free(unsafe.Pointer(outData))

	return C.GoBytes(unsafe.Pointer(outData), C.int(outSize)), nil
}

// EncodeJpegXR is the cgo build's entry point for spec §4.4.1's encode
// contract; see encodeJpegXRNative.
func EncodeJpegXR(pixelType model.PixelType, width, height, stride int, pixels []byte, quality float64) ([]byte, error) {
	return encodeJpegXRNative(pixelType, width, height, stride, pixels, quality)
}
