package compositor

import (
	"testing"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/model"
)

func fillGray8(bm *bitmap.Bitmap, value byte) {
	view := bm.Lock()
	defer bm.Unlock()
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			view.Data[y*view.Stride+x] = value
		}
	}
}

func TestCompositeSingleChannelNoTintReplicatesAcrossBGR(t *testing.T) {
	ch := bitmap.New(model.Gray8, 4, 4, 4)
	fillGray8(ch, 255)
	dst := bitmap.New(model.Bgr24, 4, 4, 12)

	err := Composite([]ChannelInfo{
		{Bitmap: ch, Weight: 1, BlackPoint: 0, WhitePoint: 1},
	}, dst, 0)
	if err != nil {
		t.Fatal(err)
	}

	view := dst.Lock()
	defer dst.Unlock()
	for i := 0; i < 3; i++ {
		if view.Data[i] != 255 {
			t.Fatalf("channel %d = %d, want 255", i, view.Data[i])
		}
	}
}

func TestCompositeTintedChannelScalesPerComponent(t *testing.T) {
	ch := bitmap.New(model.Gray8, 2, 2, 2)
	fillGray8(ch, 255)
	dst := bitmap.New(model.Bgra32, 2, 2, 8)

	err := Composite([]ChannelInfo{
		{Bitmap: ch, Weight: 1, EnableTinting: true, TintColor: [3]float64{0, 1, 0}, BlackPoint: 0, WhitePoint: 1},
	}, dst, 128)
	if err != nil {
		t.Fatal(err)
	}

	view := dst.Lock()
	defer dst.Unlock()
	// BGRA: B=0, G=255, R=0, A=128 for a pure-green tint.
	if view.Data[0] != 0 || view.Data[1] != 255 || view.Data[2] != 0 || view.Data[3] != 128 {
		t.Fatalf("pixel = %v, want [0 255 0 128]", view.Data[0:4])
	}
}

func TestCompositeBlackWhitePointClamps(t *testing.T) {
	ch := bitmap.New(model.Gray8, 1, 1, 1)
	fillGray8(ch, 64) // 64/255 ~ 0.25
	dst := bitmap.New(model.Bgr24, 1, 1, 3)

	// Ramp [0.5, 1.0]: 0.25 is below black point, should clamp to 0.
	err := Composite([]ChannelInfo{
		{Bitmap: ch, Weight: 1, BlackPoint: 0.5, WhitePoint: 1.0},
	}, dst, 0)
	if err != nil {
		t.Fatal(err)
	}
	view := dst.Lock()
	defer dst.Unlock()
	if view.Data[0] != 0 || view.Data[1] != 0 || view.Data[2] != 0 {
		t.Fatalf("pixel = %v, want [0 0 0]", view.Data[0:3])
	}
}

func TestCompositeRejectsWrongDestinationType(t *testing.T) {
	ch := bitmap.New(model.Gray8, 1, 1, 1)
	dst := bitmap.New(model.Gray8, 1, 1, 1)
	if err := Composite([]ChannelInfo{{Bitmap: ch, Weight: 1}}, dst, 0); err == nil {
		t.Fatal("expected error for non-BGR destination")
	}
}
