package directory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kjmueller/libczi/internal/model"
	"github.com/kjmueller/libczi/internal/stats"
)

// Writer is the directory variant used when authoring a CZI file (spec
// §4.5): entries are kept in a sorted set, ordered zoom descending,
// coordinate ascending, valid-m-index-first, m-index ascending, x
// ascending, y ascending. A new entry whose coordinate and m-index
// coincide with an existing layer-0 entry's is rejected, per the
// duplicate rule of spec §3.3/§9 (non-layer-0 entries sharing a
// coordinate and m-index are intentionally allowed).
type Writer struct {
	mu      sync.Mutex
	entries []entry
	updater *stats.Updater
}

// NewWriter returns an empty Writer directory.
func NewWriter() *Writer {
	return &Writer{updater: stats.NewUpdater()}
}

// Add inserts block into the sorted entry set.
func (w *Writer) Add(block model.ISubBlock) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	info := block.Info()
	if err := info.Validate(); err != nil {
		return err
	}
	for _, e := range w.entries {
		if e.info.CoordinateEqual(info) {
			return fmt.Errorf("%w: duplicate layer-0 entry at coordinate %s, m-index %d", model.ErrInvalidArgument, info.Coordinate.String(), info.MIndex)
		}
	}
	w.entries = append(w.entries, entry{info: info, block: block})
	sort.SliceStable(w.entries, func(i, j int) bool {
		return model.WriterOrderLess(w.entries[i].info, w.entries[j].info)
	})
	w.updater.Update(info)
	return nil
}

// EnumSubset implements Repository. The index reported to visit is the
// entry's current position in writer order, which shifts as entries are
// added — callers that need a stable key should use ReaderWriter instead.
func (w *Writer) EnumSubset(planeCoord model.Coordinate, roi *model.IntRect, onlyLayer0 bool, visit VisitFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, e := range w.entries {
		if !matches(e.info, planeCoord, roi, onlyLayer0) {
			continue
		}
		if !visit(i, e.info) {
			return
		}
	}
}

// ReadSubBlock implements Repository.
func (w *Writer) ReadSubBlock(index int) (model.ISubBlock, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.entries) {
		return nil, fmt.Errorf("%w: sub-block index %d out of range", model.ErrOutOfRangeCoordinate, index)
	}
	return w.entries[index].block, nil
}

// Statistics implements Repository.
func (w *Writer) Statistics() stats.Statistics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updater.Consolidate()
}

// TryGetArbitraryInChannel implements Repository.
func (w *Writer) TryGetArbitraryInChannel(channel int) (model.SubBlockInfo, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, e := range w.entries {
		if v, ok := e.info.Coordinate.TryGet(model.DimC); ok && v == channel {
			return e.info, true
		}
	}
	return model.SubBlockInfo{}, false
}

// Len reports how many entries the writer currently holds.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

var _ Repository = (*Writer)(nil)
