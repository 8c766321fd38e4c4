package accessor

import (
	"math"
	"testing"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/directory"
	"github.com/kjmueller/libczi/internal/model"
)

// fakeSubBlock is a minimal model.ISubBlock backed by an in-memory raw
// payload, standing in for the out-of-scope on-disk parser (spec §6.1).
type fakeSubBlock struct {
	info model.SubBlockInfo
	data []byte
}

func (f fakeSubBlock) Info() model.SubBlockInfo { return f.info }

func (f fakeSubBlock) RawData(kind model.AttachmentKind) ([]byte, error) {
	return f.data, nil
}

// grayGradient builds a raw Gray8 payload of w*h bytes where pixel (x,y) =
// byte(x+y), useful for checking exact placement after a blit.
func grayGradient(w, h int) []byte {
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = byte((x + y) & 0xFF)
		}
	}
	return buf
}

// S6: single tile at logical=(100,100,50,50), request ROI (120,120,60,60),
// output 60x60 => top-left 30x30 of output holds tile pixels (20,20)..(49,49),
// rest is background.
func TestUnscaledAccessorScenarioS6(t *testing.T) {
	repo := directory.NewReadOnly()
	info := model.SubBlockInfo{
		LogicalRect:     model.IntRect{X: 100, Y: 100, W: 50, H: 50},
		PhysicalSize:    model.IntSize{W: 50, H: 50},
		PixelType:       model.Gray8,
		CompressionMode: model.CompressionUncompressed,
	}
	if _, err := repo.Add(fakeSubBlock{info: info, data: grayGradient(50, 50)}); err != nil {
		t.Fatal(err)
	}
	repo.AddingFinished()

	roi := model.IntRect{X: 120, Y: 120, W: 60, H: 60}
	dst := bitmap.New(model.Gray8, 60, 60, 60)

	// Use background = 255 (distinguishable from any gradient byte & 0xFF
	// within the small range the tile produces).
	opts := Options{Background: RGB{R: 1, G: 1, B: 1}}
	if err := ComposeUnscaled(repo, dst, roi, model.NewCoordinate(), opts); err != nil {
		t.Fatal(err)
	}

	view := dst.Lock()
	defer dst.Unlock()

	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			got := view.Data[y*view.Stride+x]
			if x < 30 && y < 30 {
				want := byte((x + 20 + y + 20) & 0xFF)
				if got != want {
					t.Fatalf("pixel (%d,%d) = %d, want %d (tile content)", x, y, got, want)
				}
			} else {
				if got != 255 {
					t.Fatalf("pixel (%d,%d) = %d, want 255 (background)", x, y, got)
				}
			}
		}
	}
}

func TestUnscaledAccessorBackgroundNaNLeavesBufferUntouched(t *testing.T) {
	repo := directory.NewReadOnly()
	repo.AddingFinished()

	dst := bitmap.New(model.Gray8, 4, 4, 4)
	view := dst.Lock()
	for i := range view.Data {
		view.Data[i] = 42
	}
	dst.Unlock()

	opts := Options{Background: RGB{R: math.NaN(), G: math.NaN(), B: math.NaN()}}
	roi := model.IntRect{X: 0, Y: 0, W: 4, H: 4}
	if err := ComposeUnscaled(repo, dst, roi, model.NewCoordinate(), opts); err != nil {
		t.Fatal(err)
	}

	view = dst.Lock()
	defer dst.Unlock()
	for i, v := range view.Data {
		if v != 42 {
			t.Fatalf("byte %d = %d, want 42 (untouched)", i, v)
		}
	}
}
