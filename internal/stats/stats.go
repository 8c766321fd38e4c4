// Package stats implements the derived-statistics engine described in
// spec §3.4 and §4.6: bounding boxes, per-scene bounding boxes, dimension
// bounds, and the pyramid-layer catalogue, updated incrementally as
// sub-blocks are added and consolidated (sorted) on demand.
package stats

import (
	"math"
	"sort"

	"github.com/kjmueller/libczi/internal/model"
)

// NoSceneKey is the sentinel scene index used for sub-blocks that carry no
// S dimension, per spec §3.4 ("no scene" represented as scene index =
// INT_MAX).
const NoSceneKey = math.MaxInt32

// DimBound is the inclusive-exclusive [Start, Start+Size) range of
// coordinate values observed for one dimension (spec §3.4).
type DimBound struct {
	Start int
	Size  int
}

// end returns the exclusive upper bound of the range.
func (b DimBound) end() int { return b.Start + b.Size }

// SceneBoundingBoxes holds the overall and layer-0-only bounding boxes for
// one scene (spec §3.4).
type SceneBoundingBoxes struct {
	Overall    model.IntRect
	Layer0Only model.IntRect
}

// PyramidLayerEntry is one row of the pyramid-layer catalogue: a
// (minification_factor, pyramid_layer_no) pair and how many sub-blocks
// contributed to it (spec §3.4).
type PyramidLayerEntry struct {
	MinificationFactor int
	PyramidLayerNo     int
	Count              int
	// NotIdentified marks rows whose ratio matched no ladder table.
	NotIdentified bool
}

// Statistics is the immutable snapshot returned by Updater.Consolidate
// (spec §3.4).
type Statistics struct {
	BoundingBox        model.IntRect
	BoundingBoxValid   bool
	BoundingBoxLayer0  model.IntRect
	BoundingBoxLayer0OK bool

	DimBounds map[model.DimensionIndex]DimBound

	SceneBoundingBoxes map[int]SceneBoundingBoxes

	MinMIndex      int
	MaxMIndex      int
	MIndexValid    bool

	SubBlockCount int

	// PyramidLayerCatalogue maps a scene index (NoSceneKey for "no scene")
	// to its sorted list of pyramid-layer rows (spec §3.4, §8 invariant 3).
	PyramidLayerCatalogue map[int][]PyramidLayerEntry
}

type pyramidKey struct {
	factor int
	layer  int
}

// Updater accumulates statistics incrementally as entries are observed via
// Update, then produces a consolidated Statistics snapshot via Consolidate
// (spec §4.6). Grounded on internal/pmtiles/directory.go's
// accumulate-then-sort shape (optimizeRunLengths followed by
// serializeDirectory).
type Updater struct {
	boundingBox        model.IntRect
	boundingBoxValid   bool
	boundingBoxLayer0  model.IntRect
	boundingBoxLayer0OK bool

	dimBounds map[model.DimensionIndex]DimBound

	sceneBoxes map[int]*SceneBoundingBoxes

	minMIndex   int
	maxMIndex   int
	mIndexValid bool

	subBlockCount int

	// pyramidCounts[scene][pyramidKey] = count. Accumulated during Update;
	// turned into a sorted catalogue only in Consolidate, per the
	// "pyramid-statistics-dirty" flag spec §4.5/§4.6 describe.
	pyramidCounts map[int]map[pyramidKey]int
	dirty         bool
}

// NewUpdater returns an empty Updater.
func NewUpdater() *Updater {
	return &Updater{
		dimBounds:     make(map[model.DimensionIndex]DimBound),
		sceneBoxes:    make(map[int]*SceneBoundingBoxes),
		pyramidCounts: make(map[int]map[pyramidKey]int),
	}
}

// Update folds one sub-block entry into the running statistics (spec §4.6
// steps 1-6).
func (u *Updater) Update(info model.SubBlockInfo) {
	u.subBlockCount++

	// 1. Union logical_rect into bounding_box; if layer-0, also into
	// bounding_box_layer0.
	u.boundingBox = u.boundingBox.Union(info.LogicalRect)
	u.boundingBoxValid = true
	layer0 := info.StoredSizeEqualsLogical()
	if layer0 {
		u.boundingBoxLayer0 = u.boundingBoxLayer0.Union(info.LogicalRect)
		u.boundingBoxLayer0OK = true
	}

	// 2. For each valid dimension, extend dim_bounds[dim].
	info.Coordinate.ForEachValid(func(d model.DimensionIndex, value int) {
		b, ok := u.dimBounds[d]
		if !ok {
			u.dimBounds[d] = DimBound{Start: value, Size: 1}
			return
		}
		start := b.Start
		end := b.end()
		if value < start {
			start = value
		}
		if value+1 > end {
			end = value + 1
		}
		u.dimBounds[d] = DimBound{Start: start, Size: end - start}
	})

	// 3. If m_index valid, update min/max.
	if info.MIndexValid {
		if !u.mIndexValid {
			u.minMIndex, u.maxMIndex = info.MIndex, info.MIndex
			u.mIndexValid = true
		} else {
			if info.MIndex < u.minMIndex {
				u.minMIndex = info.MIndex
			}
			if info.MIndex > u.maxMIndex {
				u.maxMIndex = info.MIndex
			}
		}
	}

	// 4. If the entry has a scene index, update scene_bounding_boxes[S].
	scene := NoSceneKey
	if s, ok := info.Coordinate.TryGet(model.DimS); ok {
		scene = s
	}
	sb, ok := u.sceneBoxes[scene]
	if !ok {
		sb = &SceneBoundingBoxes{}
		u.sceneBoxes[scene] = sb
	}
	sb.Overall = sb.Overall.Union(info.LogicalRect)
	if layer0 {
		sb.Layer0Only = sb.Layer0Only.Union(info.LogicalRect)
	}

	// 5. Infer (minification_factor, pyramid_layer_no) and accumulate.
	factor, layerNo := classify(info.LogicalRect.W, info.PhysicalSize.W)
	counts, ok := u.pyramidCounts[scene]
	if !ok {
		counts = make(map[pyramidKey]int)
		u.pyramidCounts[scene] = counts
	}
	counts[pyramidKey{factor: factor, layer: layerNo}]++

	// 6. Mark pyramid statistics dirty (consolidated lazily).
	u.dirty = true
}

// Consolidate sorts each scene's pyramid-layer catalogue per the stable
// ordering of spec §3.4/§8 invariant 3 (layer-0 first, then by
// factor^level ascending, then not-identified last) and returns an
// immutable snapshot of all accumulated statistics.
func (u *Updater) Consolidate() Statistics {
	dimBounds := make(map[model.DimensionIndex]DimBound, len(u.dimBounds))
	for d, b := range u.dimBounds {
		dimBounds[d] = b
	}

	sceneBoxes := make(map[int]SceneBoundingBoxes, len(u.sceneBoxes))
	for s, b := range u.sceneBoxes {
		sceneBoxes[s] = *b
	}

	catalogue := make(map[int][]PyramidLayerEntry, len(u.pyramidCounts))
	for scene, counts := range u.pyramidCounts {
		rows := make([]PyramidLayerEntry, 0, len(counts))
		for k, count := range counts {
			rows = append(rows, PyramidLayerEntry{
				MinificationFactor: k.factor,
				PyramidLayerNo:     k.layer,
				Count:              count,
				NotIdentified:      k.factor == notIdentifiedFactor,
			})
		}
		sort.Slice(rows, func(i, j int) bool {
			return pyramidRowLess(rows[i], rows[j])
		})
		catalogue[scene] = rows
	}
	u.dirty = false

	return Statistics{
		BoundingBox:         u.boundingBox,
		BoundingBoxValid:    u.boundingBoxValid,
		BoundingBoxLayer0:   u.boundingBoxLayer0,
		BoundingBoxLayer0OK: u.boundingBoxLayer0OK,
		DimBounds:           dimBounds,
		SceneBoundingBoxes:  sceneBoxes,
		MinMIndex:           u.minMIndex,
		MaxMIndex:           u.maxMIndex,
		MIndexValid:         u.mIndexValid,
		SubBlockCount:       u.subBlockCount,
		PyramidLayerCatalogue: catalogue,
	}
}

// pyramidRowLess implements "layer-0 first, then factor^level ascending,
// then not-identified last" (spec §3.4, §8 invariant 3).
func pyramidRowLess(a, b PyramidLayerEntry) bool {
	if a.NotIdentified != b.NotIdentified {
		return !a.NotIdentified // identified rows sort before not-identified
	}
	if a.NotIdentified {
		return false // stable amongst not-identified rows
	}
	if a.PyramidLayerNo == 0 && b.PyramidLayerNo != 0 {
		return true
	}
	if b.PyramidLayerNo == 0 && a.PyramidLayerNo != 0 {
		return false
	}
	av := math.Pow(float64(a.MinificationFactor), float64(a.PyramidLayerNo))
	bv := math.Pow(float64(b.MinificationFactor), float64(b.PyramidLayerNo))
	return av < bv
}
