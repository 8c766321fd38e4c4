// Package codec decodes compressed sub-block payloads into raw pixel
// bytes. Decoders for each compression mode register themselves with this
// package's registry at init time, mirroring the dispatch-by-key pattern
// internal/encode/encoder.go uses for its Encoder factory, inverted for
// decode (spec §9 "Dynamic dispatch for decoders").
package codec

import (
	"fmt"

	"github.com/kjmueller/libczi/internal/model"
)

// Decoder is the single trait every sub-block codec implements: decode a
// compressed buffer into raw pixel bytes, optionally checked against the
// caller's expectations about the resulting bitmap.
type Decoder interface {
	Decode(data []byte, hint DecodeHint) (Result, error)
}

// DecodeHint carries the caller's expectations about the decoded bitmap.
// PixelType zero value is model.Invalid and Width/Height zero mean "not
// specified"; most codecs require all three since the compressed payload
// itself carries no independent dimension header.
type DecodeHint struct {
	PixelType model.PixelType
	Width     int
	Height    int
}

// Result is a successfully decoded sub-block payload, in minimal stride
// (Stride == Width * bytes-per-pixel).
type Result struct {
	PixelType model.PixelType
	Width     int
	Height    int
	Stride    int
	Pixels    []byte
}

var registry = map[model.CompressionMode]Decoder{}

// Register installs a Decoder for the given compression mode. Called from
// each codec file's init function.
func Register(mode model.CompressionMode, d Decoder) {
	registry[mode] = d
}

// Lookup returns the Decoder registered for mode.
func Lookup(mode model.CompressionMode) (Decoder, error) {
	d, ok := registry[mode]
	if !ok {
		return nil, fmt.Errorf("%w: no decoder registered for compression mode %d", model.ErrUnsupportedFormat, mode)
	}
	return d, nil
}

// Decode looks up the decoder for mode and decodes data through it. This is
// the entry point internal/accessor uses; it never touches the registry
// directly.
func Decode(mode model.CompressionMode, data []byte, hint DecodeHint) (Result, error) {
	d, err := Lookup(mode)
	if err != nil {
		return Result{}, err
	}
	return d.Decode(data, hint)
}
