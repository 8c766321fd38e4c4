package directory

import (
	"testing"

	"github.com/kjmueller/libczi/internal/model"
)

// fakeBlock is a minimal model.ISubBlock for directory tests; it carries
// no payload because the directory variants never decode one themselves.
type fakeBlock struct {
	info model.SubBlockInfo
}

func (b fakeBlock) Info() model.SubBlockInfo { return b.info }

func (b fakeBlock) RawData(kind model.AttachmentKind) ([]byte, error) { return nil, nil }

func subBlockAt(x, y, w, h, c, t int) fakeBlock {
	coord := model.NewCoordinate()
	coord.Set(model.DimC, c)
	coord.Set(model.DimT, t)
	return fakeBlock{info: model.SubBlockInfo{
		Coordinate:   coord,
		LogicalRect:  model.IntRect{X: x, Y: y, W: w, H: h},
		PhysicalSize: model.IntSize{W: w, H: h},
	}}
}

func TestReadOnly_AddAssignsInsertionOrderIndex(t *testing.T) {
	d := NewReadOnly()
	for i := 0; i < 3; i++ {
		idx, err := d.Add(subBlockAt(i*10, 0, 10, 10, 0, 0))
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if idx != i {
			t.Errorf("Add #%d returned index %d, want %d", i, idx, i)
		}
	}
}

func TestReadOnly_AddAfterFinishedFails(t *testing.T) {
	d := NewReadOnly()
	d.AddingFinished()
	if _, err := d.Add(subBlockAt(0, 0, 10, 10, 0, 0)); err == nil {
		t.Fatal("Add after AddingFinished should fail")
	}
}

func TestReadOnly_EnumSubsetFiltersByCoordinateAndROI(t *testing.T) {
	d := NewReadOnly()
	d.Add(subBlockAt(0, 0, 10, 10, 0, 0))
	d.Add(subBlockAt(100, 100, 10, 10, 1, 0))
	d.AddingFinished()

	filter := model.NewCoordinate()
	filter.Set(model.DimC, 0)

	var visited []int
	d.EnumSubset(filter, nil, false, func(index int, info model.SubBlockInfo) bool {
		visited = append(visited, index)
		return true
	})
	if len(visited) != 1 || visited[0] != 0 {
		t.Errorf("EnumSubset with channel filter visited %v, want [0]", visited)
	}

	roi := &model.IntRect{X: 0, Y: 0, W: 5, H: 5}
	visited = nil
	d.EnumSubset(model.NewCoordinate(), roi, false, func(index int, info model.SubBlockInfo) bool {
		visited = append(visited, index)
		return true
	})
	if len(visited) != 1 || visited[0] != 0 {
		t.Errorf("EnumSubset with ROI visited %v, want [0]", visited)
	}
}

func TestReadOnly_EnumSubsetStopsWhenVisitorReturnsFalse(t *testing.T) {
	d := NewReadOnly()
	for i := 0; i < 5; i++ {
		d.Add(subBlockAt(i*10, 0, 10, 10, 0, 0))
	}
	d.AddingFinished()

	count := 0
	d.EnumSubset(model.NewCoordinate(), nil, false, func(index int, info model.SubBlockInfo) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("EnumSubset visited %d entries after early stop, want 2", count)
	}
}

func TestWriter_RejectsDuplicateLayer0Entry(t *testing.T) {
	w := NewWriter()
	block := subBlockAt(0, 0, 10, 10, 0, 0)
	block.info.MIndex = 0
	block.info.MIndexValid = true

	if err := w.Add(block); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := w.Add(block); err == nil {
		t.Fatal("duplicate layer-0 entry should be rejected")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after rejected duplicate", w.Len())
	}
}

func TestWriter_AllowsSameCoordinateWhenNotLayer0(t *testing.T) {
	w := NewWriter()
	block := fakeBlock{info: model.SubBlockInfo{
		Coordinate:   model.NewCoordinate(),
		LogicalRect:  model.IntRect{X: 0, Y: 0, W: 100, H: 100},
		PhysicalSize: model.IntSize{W: 50, H: 50},
		MIndex:       0,
		MIndexValid:  true,
	}}
	if err := w.Add(block); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := w.Add(block); err != nil {
		t.Fatalf("non-layer-0 duplicate coordinate should be allowed, got: %v", err)
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
}

func TestWriter_OrdersByZoomDescending(t *testing.T) {
	w := NewWriter()
	// layer-0 (zoom 1.0)
	w.Add(subBlockAt(0, 0, 10, 10, 0, 0))
	// pyramid level, zoom 0.5
	w.Add(fakeBlock{info: model.SubBlockInfo{
		Coordinate:   model.NewCoordinate(),
		LogicalRect:  model.IntRect{X: 0, Y: 0, W: 20, H: 20},
		PhysicalSize: model.IntSize{W: 10, H: 10},
	}})

	var zooms []float64
	w.EnumSubset(model.NewCoordinate(), nil, false, func(index int, info model.SubBlockInfo) bool {
		zooms = append(zooms, float64(info.PhysicalSize.W)/float64(info.LogicalRect.W))
		return true
	})
	if len(zooms) != 2 || zooms[0] < zooms[1] {
		t.Errorf("writer order not zoom-descending: %v", zooms)
	}
}

func TestReaderWriter_ModifyAndRemove(t *testing.T) {
	d := NewReaderWriter()
	key, err := d.Add(subBlockAt(0, 0, 10, 10, 0, 0))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	stats1 := d.Statistics()
	if stats1.SubBlockCount != 1 {
		t.Fatalf("SubBlockCount = %d, want 1", stats1.SubBlockCount)
	}

	if err := d.Modify(key, subBlockAt(5, 5, 10, 10, 0, 0)); err != nil {
		t.Fatalf("Modify: %v", err)
	}
	stats2 := d.Statistics()
	if stats2.BoundingBox.X != 5 {
		t.Errorf("after Modify, BoundingBox.X = %d, want 5", stats2.BoundingBox.X)
	}

	if err := d.Remove(key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d after Remove, want 0", d.Len())
	}
	stats3 := d.Statistics()
	if stats3.SubBlockCount != 0 {
		t.Errorf("SubBlockCount = %d after Remove, want 0", stats3.SubBlockCount)
	}
}

func TestReaderWriter_RemoveUnknownKeyFails(t *testing.T) {
	d := NewReaderWriter()
	if err := d.Remove(42); err == nil {
		t.Fatal("Remove of unknown key should fail")
	}
}

func TestTryGetArbitraryInChannel(t *testing.T) {
	d := NewReadOnly()
	d.Add(subBlockAt(0, 0, 10, 10, 3, 0))
	d.AddingFinished()

	if _, ok := d.TryGetArbitraryInChannel(7); ok {
		t.Error("TryGetArbitraryInChannel(7) should not find a match")
	}
	info, ok := d.TryGetArbitraryInChannel(3)
	if !ok {
		t.Fatal("TryGetArbitraryInChannel(3) should find a match")
	}
	if v, _ := info.Coordinate.TryGet(model.DimC); v != 3 {
		t.Errorf("matched entry has channel %d, want 3", v)
	}
}
