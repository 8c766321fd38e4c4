package directory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kjmueller/libczi/internal/model"
	"github.com/kjmueller/libczi/internal/stats"
)

// ReaderWriter is the directory variant that supports modifying and
// removing entries after the fact, addressed by a stable integer key
// assigned (monotonically increasing) at Add time (spec §4.5). It tracks
// a single dirty flag standing in for spec's "statistics-dirty" and
// "pyramid-statistics-dirty" pair, and rebuilds the consolidated
// statistics from scratch on the next query when dirty: the incremental
// Updater only knows how to fold entries in, so Remove/Modify cannot be
// reflected by it directly.
type ReaderWriter struct {
	mu      sync.RWMutex
	entries map[int]entry
	nextKey int
	dirty   bool
	cached  stats.Statistics
}

// NewReaderWriter returns an empty ReaderWriter directory.
func NewReaderWriter() *ReaderWriter {
	return &ReaderWriter{entries: make(map[int]entry)}
}

// Add inserts block under a freshly allocated key and returns it.
func (d *ReaderWriter) Add(block model.ISubBlock) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	info := block.Info()
	if err := info.Validate(); err != nil {
		return 0, err
	}
	key := d.nextKey
	d.nextKey++
	d.entries[key] = entry{info: info, block: block}
	d.dirty = true
	return key, nil
}

// Modify replaces the collaborator registered under key.
func (d *ReaderWriter) Modify(key int, block model.ISubBlock) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[key]; !ok {
		return fmt.Errorf("%w: no entry with key %d", model.ErrOutOfRangeCoordinate, key)
	}
	info := block.Info()
	if err := info.Validate(); err != nil {
		return err
	}
	d.entries[key] = entry{info: info, block: block}
	d.dirty = true
	return nil
}

// Remove deletes the entry registered under key.
func (d *ReaderWriter) Remove(key int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[key]; !ok {
		return fmt.Errorf("%w: no entry with key %d", model.ErrOutOfRangeCoordinate, key)
	}
	delete(d.entries, key)
	d.dirty = true
	return nil
}

// EnumSubset implements Repository, visiting entries in ascending key
// order so that repeated enumerations over an unchanged directory are
// reproducible.
func (d *ReaderWriter) EnumSubset(planeCoord model.Coordinate, roi *model.IntRect, onlyLayer0 bool, visit VisitFunc) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	keys := make([]int, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		e := d.entries[k]
		if !matches(e.info, planeCoord, roi, onlyLayer0) {
			continue
		}
		if !visit(k, e.info) {
			return
		}
	}
}

// ReadSubBlock implements Repository.
func (d *ReaderWriter) ReadSubBlock(key int) (model.ISubBlock, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: no entry with key %d", model.ErrOutOfRangeCoordinate, key)
	}
	return e.block, nil
}

// Statistics implements Repository, rebuilding the consolidated snapshot
// if any Add/Modify/Remove happened since the last call.
func (d *ReaderWriter) Statistics() stats.Statistics {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dirty {
		u := stats.NewUpdater()
		for _, e := range d.entries {
			u.Update(e.info)
		}
		d.cached = u.Consolidate()
		d.dirty = false
	}
	return d.cached
}

// TryGetArbitraryInChannel implements Repository.
func (d *ReaderWriter) TryGetArbitraryInChannel(channel int) (model.SubBlockInfo, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.entries {
		if v, ok := e.info.Coordinate.TryGet(model.DimC); ok && v == channel {
			return e.info, true
		}
	}
	return model.SubBlockInfo{}, false
}

// Len reports how many entries currently exist (post-Remove).
func (d *ReaderWriter) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

var _ Repository = (*ReaderWriter)(nil)
