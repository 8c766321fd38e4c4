package stats

// Pyramid-layer detection ladder tables (spec §3.4, §4.6). A sub-block's
// minification factor and pyramid layer number are inferred from the ratio
// logical/physical by matching one of these two hard-coded tables. Grounded
// on the incremental-update-then-consolidate shape of
// internal/pmtiles/directory.go's optimizeRunLengths/buildDirectory in the
// teacher, applied here to pyramid-layer accounting instead of tile-ID
// run-length accounting.

// factor2Ladder lists, for minification factor 2, the expected ratio at
// each pyramid layer 1..10 (layer 0 is always ratio 1, handled separately)
// together with a tolerance band used for matching.
var factor2Ladder = buildLadder(2, 10)

// factor3Ladder lists, for minification factor 3, the expected ratio at
// each pyramid layer 1..7.
var factor3Ladder = buildLadder(3, 7)

type ladderRow struct {
	layer     int
	ratio     float64
	tolerance float64
}

// buildLadder generates the per-level expected ratio factor^level for
// level 1..maxLevel, with a tolerance band of ±3% of the expected ratio
// (generous enough to absorb the off-by-rounding stored sizes CZI pyramids
// actually use, e.g. 2047 instead of 2048 at deep levels, while still
// discriminating between adjacent levels of the same ladder).
func buildLadder(factor float64, maxLevel int) []ladderRow {
	rows := make([]ladderRow, 0, maxLevel)
	ratio := 1.0
	for level := 1; level <= maxLevel; level++ {
		ratio *= factor
		rows = append(rows, ladderRow{
			layer:     level,
			ratio:     ratio,
			tolerance: ratio * 0.03,
		})
	}
	return rows
}

// notIdentifiedFactor and notIdentifiedLayer are the sentinel values used
// when no ladder row matches (spec §4.6: "tagged not identified with the
// sentinel 0xFF/0xFF").
const (
	notIdentifiedFactor = 0xFF
	notIdentifiedLayer  = 0xFF
)

// classify infers (minification_factor, pyramid_layer_no) from a
// logical/physical size pair (spec §4.6). Layer-0 (logical == physical) is
// reported as (factor=1, layer=0). If neither ladder matches within
// tolerance, it returns the not-identified sentinel pair.
func classify(logicalW, physicalW int) (factor, layer int) {
	if physicalW <= 0 || logicalW <= 0 {
		return notIdentifiedFactor, notIdentifiedLayer
	}
	if logicalW == physicalW {
		return 1, 0
	}
	ratio := float64(logicalW) / float64(physicalW)

	if f, l, ok := matchLadder(2, factor2Ladder, ratio); ok {
		return f, l
	}
	if f, l, ok := matchLadder(3, factor3Ladder, ratio); ok {
		return f, l
	}
	return notIdentifiedFactor, notIdentifiedLayer
}

func matchLadder(factor int, ladder []ladderRow, ratio float64) (int, int, bool) {
	for _, row := range ladder {
		diff := ratio - row.ratio
		if diff < 0 {
			diff = -diff
		}
		if diff <= row.tolerance {
			return factor, row.layer, true
		}
	}
	return 0, 0, false
}
