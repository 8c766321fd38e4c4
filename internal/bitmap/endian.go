package bitmap

import (
	"encoding/binary"
	"math/bits"

	"github.com/kjmueller/libczi/internal/model"
)

// hostIsBigEndian is resolved once at package init via encoding/binary's
// native-order reader, standing in for the compile-time endianness
// detection spec §9 calls for (Go has no portable compile-time constant
// for this, so a one-time runtime check is the idiomatic equivalent).
var hostIsBigEndian = nativeIsBigEndian()

func nativeIsBigEndian() bool {
	buf := [2]byte{0x01, 0x02}
	return binary.NativeEndian.Uint16(buf[:]) == 0x0102
}

// componentBytes returns the byte width of one color/intensity component
// of pixel type t (as opposed to BytesPerPel, which is the whole pixel).
func componentBytes(t model.PixelType) int {
	switch t {
	case model.Gray16, model.Bgr48:
		return 2
	case model.Gray32Float, model.Gray32:
		return 4
	case model.Bgr96Float:
		return 4
	case model.Gray64Float, model.Gray64ComplexFloat, model.Bgr192ComplexFloat:
		return 8
	default:
		return 1
	}
}

// swapRow byte-swaps every compSize-wide component in row, in place.
func swapRow(row []byte, compSize int) {
	switch compSize {
	case 2:
		for i := 0; i+2 <= len(row); i += 2 {
			v := binary.LittleEndian.Uint16(row[i:])
			binary.LittleEndian.PutUint16(row[i:], bits.ReverseBytes16(v))
		}
	case 4:
		for i := 0; i+4 <= len(row); i += 4 {
			v := binary.LittleEndian.Uint32(row[i:])
			binary.LittleEndian.PutUint32(row[i:], bits.ReverseBytes32(v))
		}
	case 8:
		for i := 0; i+8 <= len(row); i += 8 {
			v := binary.LittleEndian.Uint64(row[i:])
			binary.LittleEndian.PutUint64(row[i:], bits.ReverseBytes64(v))
		}
	}
}

// SwapInPlaceIfBigEndianHost performs an in-place byte swap over buf when
// running on a big-endian host and t is not endian-agnostic (spec §4.1):
// used when loading raw Gray16/Bgr48 payloads, whose canonical on-disk
// form is little-endian. It is a no-op on little-endian hosts and for
// single-byte-component pixel types.
func SwapInPlaceIfBigEndianHost(buf []byte, t model.PixelType) {
	if !hostIsBigEndian || model.IsEndianAgnostic(t) {
		return
	}
	swapRow(buf, componentBytes(t))
}
