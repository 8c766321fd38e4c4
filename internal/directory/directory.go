package directory

import (
	"github.com/kjmueller/libczi/internal/model"
	"github.com/kjmueller/libczi/internal/stats"
)

// entry is the directory's bookkeeping record for one sub-block: its
// decoded-header info plus the external collaborator that can still
// produce the payload bytes on demand (spec §4.5, §6.1).
type entry struct {
	info  model.SubBlockInfo
	block model.ISubBlock
}

// VisitFunc is called once per matching entry during EnumSubset; returning
// false stops enumeration early (spec §4.5's "returns continue/stop").
type VisitFunc func(index int, info model.SubBlockInfo) bool

// Repository is the query surface consumed by the accessors (spec §4.5,
// §6.1's ISubBlockRepository). All three directory variants — ReadOnly,
// Writer, ReaderWriter — implement it.
type Repository interface {
	// EnumSubset visits every entry whose coordinate is compatible with
	// planeCoord and whose logical_rect intersects roi (when roi is
	// non-nil), optionally restricted to layer-0 entries.
	EnumSubset(planeCoord model.Coordinate, roi *model.IntRect, onlyLayer0 bool, visit VisitFunc)

	// ReadSubBlock returns the collaborator registered at index, so a
	// caller can decode its payload.
	ReadSubBlock(index int) (model.ISubBlock, error)

	// Statistics returns the consolidated derived statistics (spec §4.6).
	Statistics() stats.Statistics

	// TryGetArbitraryInChannel returns some entry's info for the given
	// channel value, or false if no entry carries that channel (spec
	// §6.1's try_get_sub_block_info_of_arbitrary_sub_block_in_channel).
	TryGetArbitraryInChannel(channel int) (model.SubBlockInfo, bool)
}

// matches implements the enum_subset predicate of spec §4.5: the
// coordinate compatibility rule, the ROI intersection test (skipped when
// roi is nil), and the optional layer-0 restriction.
func matches(info model.SubBlockInfo, planeCoord model.Coordinate, roi *model.IntRect, onlyLayer0 bool) bool {
	if !info.Coordinate.Matches(planeCoord) {
		return false
	}
	if roi != nil && !info.LogicalRect.Intersects(*roi) {
		return false
	}
	if onlyLayer0 && !info.StoredSizeEqualsLogical() {
		return false
	}
	return true
}
