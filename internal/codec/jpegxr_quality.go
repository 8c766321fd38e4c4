package codec

import "github.com/kjmueller/libczi/internal/model"

// jxrMacroblockWidthPixels is the JPEG-XR macroblock width jxrlib encodes
// against; spec §4.4.1's overlap rule is expressed in units of it.
const jxrMacroblockWidthPixels = 16

// jxrUseChroma444 selects 4:4:4 over 4:2:0 chroma subsampling (spec
// §4.4.1): any quality at or above 0.5, or any pixel type with more than
// 8 bits per channel, always uses 4:4:4.
func jxrUseChroma444(quality float64, pixelType model.PixelType) bool {
	if quality >= 0.5 {
		return true
	}
	switch pixelType {
	case model.Bgr48, model.Gray16, model.Gray32Float:
		return true
	default:
		return false
	}
}

// jxrOverlap selects one or two levels of overlap filtering (spec §4.4.1):
// quality below 0.5, or an image narrower than two macroblocks, uses one
// level; everything else uses two.
func jxrOverlap(quality float64, width int) int {
	if quality < 0.5 || width < 2*jxrMacroblockWidthPixels {
		return 1
	}
	return 2
}

// dpkQPS420, dpkQPS8, dpkQPS16, dpkQPS32f are jxrlib's PSNR-optimized
// default quantization-parameter tables: one row of six QP indices (Y, U,
// V, YHP, UHP, VHP) per quality decile. DPK_QPS_420 (11 rows) applies
// whenever 4:2:0 subsampling is in effect regardless of pixel type;
// DPK_QPS_8 (12 rows) applies to 8-bit 4:4:4 (Bgr24/Gray8); DPK_QPS_16 (11
// rows) to 16-bit 4:4:4 (Bgr48/Gray16); DPK_QPS_32f (11 rows) to
// Gray32Float. Grounded verbatim on
// original_source/Src/JxrDecode/JxrDecode.cpp's ApplyQuality, which
// credits jxrlib's JxrEncApp.c as its source.
var (
	dpkQPS420 = [11][6]int{
		{66, 65, 70, 72, 72, 77},
		{59, 58, 63, 64, 63, 68},
		{52, 51, 57, 56, 56, 61},
		{48, 48, 54, 51, 50, 55},
		{43, 44, 48, 46, 46, 49},
		{37, 37, 42, 38, 38, 43},
		{26, 28, 31, 27, 28, 31},
		{16, 17, 22, 16, 17, 21},
		{10, 11, 13, 10, 10, 13},
		{5, 5, 6, 5, 5, 6},
		{2, 2, 3, 2, 2, 2},
	}

	dpkQPS8 = [12][6]int{
		{67, 79, 86, 72, 90, 98},
		{59, 74, 80, 64, 83, 89},
		{53, 68, 75, 57, 76, 83},
		{49, 64, 71, 53, 70, 77},
		{45, 60, 67, 48, 67, 74},
		{40, 56, 62, 42, 59, 66},
		{33, 49, 55, 35, 51, 58},
		{27, 44, 49, 28, 45, 50},
		{20, 36, 42, 20, 38, 44},
		{13, 27, 34, 13, 28, 34},
		{7, 17, 21, 8, 17, 21}, // Photoshop 100%
		{2, 5, 6, 2, 5, 6},
	}

	dpkQPS16 = [11][6]int{
		{197, 203, 210, 202, 207, 213},
		{174, 188, 193, 180, 189, 196},
		{152, 167, 173, 156, 169, 174},
		{135, 152, 157, 137, 153, 158},
		{119, 137, 141, 119, 138, 142},
		{102, 120, 125, 100, 120, 124},
		{82, 98, 104, 79, 98, 103},
		{60, 76, 81, 58, 76, 81},
		{39, 52, 58, 36, 52, 58},
		{16, 27, 33, 14, 27, 33},
		{5, 8, 9, 4, 7, 8},
	}

	dpkQPS32f = [11][6]int{
		{194, 206, 209, 204, 211, 217},
		{175, 187, 196, 186, 193, 205},
		{157, 170, 177, 167, 180, 190},
		{133, 152, 156, 144, 163, 168},
		{116, 138, 142, 117, 143, 148},
		{98, 120, 123, 96, 123, 126},
		{80, 99, 102, 78, 99, 102},
		{65, 79, 84, 63, 79, 84},
		{48, 61, 67, 45, 60, 66},
		{27, 41, 46, 24, 40, 45},
		{3, 22, 24, 2, 21, 22},
	}
)

// jxrQPIndices interpolates the six per-subband QP indices for quality
// (spec §4.4.1). Quality above 0.8 is remapped non-linearly for 8-bit
// 4:4:4 encodes ([0.8,0.866,0.933,1.0] -> [0.8,0.9,1.0,1.1]) so that the
// DPK_QPS_8 row jxrlib documents as matching Photoshop's JPEG quality 100
// lines up with quality 0.933; the decile straddling the (possibly
// remapped) quality is then linearly interpolated.
func jxrQPIndices(pixelType model.PixelType, quality float64, chroma444 bool) [6]int {
	if quality < 0 {
		quality = 0
	}
	if quality > 1 {
		quality = 1
	}
	if quality > 0.8 && chroma444 && (pixelType == model.Bgr24 || pixelType == model.Gray8) {
		quality = 0.8 + (quality-0.8)*1.5
	}

	var table [][6]int
	switch {
	case !chroma444:
		table = dpkQPS420[:]
	case pixelType == model.Bgr24 || pixelType == model.Gray8:
		table = dpkQPS8[:]
	case pixelType == model.Bgr48 || pixelType == model.Gray16:
		table = dpkQPS16[:]
	default:
		table = dpkQPS32f[:]
	}

	scaled := 10 * quality
	qi := int(scaled)
	qf := scaled - float64(qi)
	if qi >= len(table)-1 {
		qi = len(table) - 1
		qf = 0
	}
	row := table[qi]
	var next [6]int
	if qf > 0 {
		next = table[qi+1]
	}
	var out [6]int
	for i := range out {
		out[i] = int(0.5 + float64(row[i])*(1-qf) + float64(next[i])*qf)
	}
	return out
}
