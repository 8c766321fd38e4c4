package accessor

import (
	"testing"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/directory"
	"github.com/kjmueller/libczi/internal/model"
)

// S10: ROI fully inside exactly one layer-0 tile with zoom =
// physical_size/logical_size of that tile (=1 for a layer-0 tile) equals
// that tile's bitmap cropped to ROI.
func TestScalingAccessorScenarioS10(t *testing.T) {
	repo := directory.NewReadOnly()
	info := model.SubBlockInfo{
		LogicalRect:     model.IntRect{X: 0, Y: 0, W: 100, H: 100},
		PhysicalSize:    model.IntSize{W: 100, H: 100},
		PixelType:       model.Gray8,
		CompressionMode: model.CompressionUncompressed,
	}
	if _, err := repo.Add(fakeSubBlock{info: info, data: grayGradient(100, 100)}); err != nil {
		t.Fatal(err)
	}
	repo.AddingFinished()

	roi := model.IntRect{X: 10, Y: 10, W: 20, H: 20}
	dst := bitmap.New(model.Gray8, 20, 20, 20)

	opts := Options{Background: RGB{R: 1, G: 1, B: 1}}
	if err := ComposeScaled(repo, repo.Statistics(), dst, roi, model.NewCoordinate(), 1.0, opts); err != nil {
		t.Fatal(err)
	}

	view := dst.Lock()
	defer dst.Unlock()
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			got := view.Data[y*view.Stride+x]
			want := byte(((x + 10) + (y + 10)) & 0xFF)
			if got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

// A fractional roi.W*zoom (the common case) must not push NNResize's
// destination iteration past the last valid column/row of a dst bitmap
// sized floor(roi.W*zoom) x floor(roi.H*zoom); it previously panicked with
// an out-of-range slice write on the last row.
func TestScalingAccessorFractionalZoomStaysInBounds(t *testing.T) {
	repo := directory.NewReadOnly()
	info := model.SubBlockInfo{
		LogicalRect:     model.IntRect{X: 0, Y: 0, W: 100, H: 100},
		PhysicalSize:    model.IntSize{W: 100, H: 100},
		PixelType:       model.Gray8,
		CompressionMode: model.CompressionUncompressed,
	}
	if _, err := repo.Add(fakeSubBlock{info: info, data: grayGradient(100, 100)}); err != nil {
		t.Fatal(err)
	}
	repo.AddingFinished()

	roi := model.IntRect{X: 0, Y: 0, W: 15, H: 15}
	zoom := 0.5
	dst := bitmap.New(model.Gray8, 7, 7, 7)

	opts := Options{Background: RGB{R: 1, G: 1, B: 1}}
	if err := ComposeScaled(repo, repo.Statistics(), dst, roi, model.NewCoordinate(), zoom, opts); err != nil {
		t.Fatal(err)
	}
}

// Requested zoom below the coarsest pyramid layer renders nothing for that
// pass: destination stays at background color (spec §4.9 step 4, §9).
func TestScalingAccessorBelowCoarsestLayerLeavesBackground(t *testing.T) {
	repo := directory.NewReadOnly()
	info := model.SubBlockInfo{
		LogicalRect:     model.IntRect{X: 0, Y: 0, W: 100, H: 100},
		PhysicalSize:    model.IntSize{W: 100, H: 100},
		PixelType:       model.Gray8,
		CompressionMode: model.CompressionUncompressed,
	}
	if _, err := repo.Add(fakeSubBlock{info: info, data: grayGradient(100, 100)}); err != nil {
		t.Fatal(err)
	}
	repo.AddingFinished()

	roi := model.IntRect{X: 0, Y: 0, W: 100, H: 100}
	dst := bitmap.New(model.Gray8, 50, 50, 50)

	opts := Options{Background: RGB{R: 1, G: 1, B: 1}}
	// Requested zoom 2.0 exceeds the only available layer's effective zoom
	// of 1.0, so no candidate qualifies as a pivot.
	if err := ComposeScaled(repo, repo.Statistics(), dst, roi, model.NewCoordinate(), 2.0, opts); err != nil {
		t.Fatal(err)
	}

	view := dst.Lock()
	defer dst.Unlock()
	for _, v := range view.Data {
		if v != 255 {
			t.Fatal("expected destination to remain background when no layer covers the requested zoom")
		}
	}
}
