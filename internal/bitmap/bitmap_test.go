package bitmap

import (
	"testing"

	"github.com/kjmueller/libczi/internal/model"
)

func TestLockUnlockBalancesAndPreservesContent(t *testing.T) {
	b := New(model.Gray8, 4, 2, 4)
	view := b.Lock()
	for i := range view.Data {
		view.Data[i] = byte(i + 1)
	}
	b.Unlock()

	if got := b.LockCount(); got != 0 {
		t.Fatalf("LockCount() = %d, want 0", got)
	}

	view2 := b.Lock()
	defer b.Unlock()
	for i, want := range []byte{1, 2, 3, 4, 5, 6, 7, 8} {
		if view2.Data[i] != want {
			t.Errorf("Data[%d] = %d, want %d", i, view2.Data[i], want)
		}
	}
}

func TestReleaseWhileLockedPanics(t *testing.T) {
	b := New(model.Gray8, 2, 2, 2)
	b.Lock()
	defer func() {
		if recover() == nil {
			t.Fatal("Release while locked should panic")
		}
	}()
	b.Release()
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	b := New(model.Gray8, 2, 2, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("Unlock without a matching Lock should panic")
		}
	}()
	b.Unlock()
}

func TestCopyWithStride(t *testing.T) {
	// S1: Gray8 source 4x2 with padding, stride 6, copied into a
	// stride-4 destination should drop the padding bytes.
	src := []byte{10, 20, 30, 40, 0, 0, 50, 60, 70, 80, 0, 0}
	dst := make([]byte, 8)
	if err := Copy(src, 6, model.Gray8, dst, 4, model.Gray8, 4, 2, false); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	want := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestCopyWithOffsetClipsToDestination(t *testing.T) {
	// S6: a tile at logical (100,100,50,50) against ROI (120,120,60,60)
	// lands in the top-left 30x30 of a 60x60 destination.
	tileW, tileH := 50, 50
	tile := make([]byte, tileW*tileH)
	for i := range tile {
		tile[i] = byte(i%250 + 1)
	}
	dst := make([]byte, 60*60)

	info := BlitInfo{
		SrcRectAtOffset: model.IntRect{X: 100 - 120, Y: 100 - 120, W: tileW, H: tileH},
		Src:             tile,
		SrcStride:       tileW,
		SrcType:         model.Gray8,
		SrcSize:         model.IntSize{W: tileW, H: tileH},
	}
	if err := CopyWithOffset(info, dst, 60, model.Gray8, model.IntSize{W: 60, H: 60}, false); err != nil {
		t.Fatalf("CopyWithOffset: %v", err)
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			got := dst[y*60+x]
			want := tile[(y+20)*tileW+(x+20)]
			if got != want {
				t.Fatalf("dst(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
	if dst[30] != 0 {
		t.Errorf("pixel outside the covered region should remain background, got %d", dst[30])
	}
}

func TestFillSkipsOnNaN(t *testing.T) {
	dst := []byte{1, 2, 3, 4}
	Fill(dst, 4, model.Gray8, 4, 1, nanFloat(), 0, 0)
	for i, v := range dst {
		if v != byte(i+1) {
			t.Errorf("Fill with NaN modified dst[%d] = %d", i, v)
		}
	}
}

func nanFloat() float64 {
	var z float64
	return z / z
}

func TestBitonalFillAndGetPixel(t *testing.T) {
	b := NewBitonal(16, 3)
	roi := model.IntRect{X: 3, Y: 1, W: 7, H: 1}
	b.Fill(roi, true)
	for x := 0; x < 16; x++ {
		want := x >= 3 && x < 10
		if got := b.GetPixel(x, 1); got != want {
			t.Errorf("GetPixel(%d,1) = %v, want %v", x, got, want)
		}
	}
	if b.GetPixel(3, 0) {
		t.Error("Fill should not touch rows outside roi")
	}
}

func TestBitonalDecimateAllOnes(t *testing.T) {
	src := NewBitonal(4, 4)
	src.SetAll(true)
	dst := Decimate(src, 1)
	if dst.Width() != 2 || dst.Height() != 2 {
		t.Fatalf("Decimate size = %dx%d, want 2x2", dst.Width(), dst.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !dst.GetPixel(x, y) {
				t.Errorf("all-ones decimate(%d,%d) = false, want true", x, y)
			}
		}
	}
}

func TestBitonalDecimateCheckerboard(t *testing.T) {
	src := NewBitonal(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				src.SetPixel(x, y, true)
			}
		}
	}

	dst0 := Decimate(src, 0)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			want := src.GetPixel(2*x, 2*y)
			if got := dst0.GetPixel(x, y); got != want {
				t.Errorf("neighborhood=0 decimate(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	dst1 := Decimate(src, 1)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if dst1.GetPixel(x, y) {
				t.Errorf("neighborhood=1 decimate(%d,%d) = true, want false on a checkerboard", x, y)
			}
		}
	}
}
