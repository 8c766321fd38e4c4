package directory

import (
	"fmt"
	"sync"

	"github.com/kjmueller/libczi/internal/model"
	"github.com/kjmueller/libczi/internal/stats"
)

// ReadOnly is the append-only directory variant built while a CZI file is
// being opened (spec §4.5): Add appends entries in stream order and
// assigns them their index; after AddingFinished the directory is
// immutable and, per spec §5, freely shareable across goroutines without
// further locking concerns on the caller's part.
type ReadOnly struct {
	mu      sync.RWMutex
	entries []entry
	updater *stats.Updater
	frozen  bool
}

// NewReadOnly returns an empty ReadOnly directory.
func NewReadOnly() *ReadOnly {
	return &ReadOnly{updater: stats.NewUpdater()}
}

// Add appends block to the directory, returning its insertion-order index.
// It fails once AddingFinished has been called.
func (d *ReadOnly) Add(block model.ISubBlock) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frozen {
		return 0, fmt.Errorf("%w: cannot add to a directory after adding_finished", model.ErrInvalidArgument)
	}
	info := block.Info()
	if err := info.Validate(); err != nil {
		return 0, err
	}
	index := len(d.entries)
	d.entries = append(d.entries, entry{info: info, block: block})
	d.updater.Update(info)
	return index, nil
}

// AddingFinished freezes the directory; subsequent Add calls fail.
func (d *ReadOnly) AddingFinished() {
	d.mu.Lock()
	d.frozen = true
	d.mu.Unlock()
}

// EnumSubset implements Repository.
func (d *ReadOnly) EnumSubset(planeCoord model.Coordinate, roi *model.IntRect, onlyLayer0 bool, visit VisitFunc) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i, e := range d.entries {
		if !matches(e.info, planeCoord, roi, onlyLayer0) {
			continue
		}
		if !visit(i, e.info) {
			return
		}
	}
}

// ReadSubBlock implements Repository.
func (d *ReadOnly) ReadSubBlock(index int) (model.ISubBlock, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if index < 0 || index >= len(d.entries) {
		return nil, fmt.Errorf("%w: sub-block index %d out of range", model.ErrOutOfRangeCoordinate, index)
	}
	return d.entries[index].block, nil
}

// Statistics implements Repository. It takes the write lock because
// Consolidate resets the updater's dirty flag.
func (d *ReadOnly) Statistics() stats.Statistics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updater.Consolidate()
}

// TryGetArbitraryInChannel implements Repository.
func (d *ReadOnly) TryGetArbitraryInChannel(channel int) (model.SubBlockInfo, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.entries {
		if v, ok := e.info.Coordinate.TryGet(model.DimC); ok && v == channel {
			return e.info, true
		}
	}
	return model.SubBlockInfo{}, false
}

// Len reports how many entries have been added so far.
func (d *ReadOnly) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

var _ Repository = (*ReadOnly)(nil)
