package accessor

import (
	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/cache"
	"github.com/kjmueller/libczi/internal/codec"
	"github.com/kjmueller/libczi/internal/directory"
	"github.com/kjmueller/libczi/internal/model"
)

// RGB is a background-color triple in [0,1] (spec §4.1 Fill); any NaN
// component opts out of clearing the destination, exactly like Fill does.
type RGB struct {
	R, G, B float64
}

// Options bundles the accessor parameters common to the unscaled and
// scaling variants (spec §4.8, §4.9).
type Options struct {
	Background RGB

	// SortByM stable-sorts candidates ascending by m_index instead of
	// keeping directory order (spec §4.8 step 3).
	SortByM bool

	// DrawTileBorder asks the blit kernel to paint a one-pixel black
	// frame around each tile (spec §4.1, §4.8 step 4).
	DrawTileBorder bool

	// SceneFilter, when non-nil, restricts candidates to entries whose
	// scene coordinate is a member (spec §4.8 step 2).
	SceneFilter *directory.IndexSet

	// UseVisibilityCheck enables the rectangle-coverage skip-if-covered
	// optimization before decoding each candidate (spec §4.8 step 5).
	UseVisibilityCheck bool

	// Cache, if non-nil, is consulted before decoding and populated after
	// (spec §4.7, §4.8 step 4).
	Cache *cache.Cache
}

// decodeTile returns the decoded bitmap for the sub-block at index,
// consulting opts.Cache first and populating it after a cold decode (spec
// §4.8 step 4).
func decodeTile(repo directory.Repository, opts Options, index int, info model.SubBlockInfo) (*bitmap.Bitmap, error) {
	if opts.Cache != nil {
		if bm, ok := opts.Cache.Get(index); ok {
			return bm, nil
		}
	}

	block, err := repo.ReadSubBlock(index)
	if err != nil {
		return nil, err
	}
	raw, err := block.RawData(model.KindData)
	if err != nil {
		return nil, err
	}
	hint := codec.DecodeHint{
		PixelType: info.PixelType,
		Width:     info.PhysicalSize.W,
		Height:    info.PhysicalSize.H,
	}
	res, err := codec.Decode(info.CompressionMode, raw, hint)
	if err != nil {
		return nil, err
	}

	bm := bitmap.New(res.PixelType, res.Width, res.Height, res.Stride)
	lv := bm.Lock()
	copy(lv.Data, res.Pixels)
	bm.Unlock()

	if opts.Cache != nil {
		opts.Cache.Add(index, bm)
	}
	return bm, nil
}

// sceneOf returns the S coordinate of info, or (0, false) if it has none.
func sceneOf(info model.SubBlockInfo) (int, bool) {
	return info.Coordinate.TryGet(model.DimS)
}
