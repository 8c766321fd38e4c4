package libczi

import "github.com/kjmueller/libczi/internal/accessor"

// RGB is a background-color triple in [0,1]; any NaN component opts out of
// clearing the destination (spec §4.1 Fill).
type RGB = accessor.RGB

// AccessorOptions bundles the parameters shared by the unscaled and
// scaling tile accessors (spec §4.8, §4.9).
type AccessorOptions struct {
	Background         RGB
	SortByM            bool
	DrawTileBorder     bool
	SceneFilter        *IndexSet
	UseVisibilityCheck bool
	Cache              *Cache
}

func (o AccessorOptions) toInternal() accessor.Options {
	return accessor.Options{
		Background:         o.Background,
		SortByM:            o.SortByM,
		DrawTileBorder:     o.DrawTileBorder,
		SceneFilter:        o.SceneFilter,
		UseVisibilityCheck: o.UseVisibilityCheck,
		Cache:              o.Cache,
	}
}

// ComposeUnscaled implements the single-channel tile accessor of spec
// §4.8: it composes the layer-0 sub-blocks of repo intersecting roi on
// planeCoord into dst, which must already be sized roi.W x roi.H.
func ComposeUnscaled(repo ISubBlockRepository, dst *Bitmap, roi IntRect, planeCoord Coordinate, opts AccessorOptions) error {
	return accessor.ComposeUnscaled(repo, dst, roi, planeCoord, opts.toInternal())
}

// ComposeScaled implements the single-channel scaling tile accessor of
// spec §4.9: it selects the appropriate pyramid layer(s) for zoom and
// nearest-neighbor-scales them into dst, which must be sized
// floor(roi.W*zoom) x floor(roi.H*zoom).
func ComposeScaled(repo ISubBlockRepository, stats SubBlockStatistics, dst *Bitmap, roi IntRect, planeCoord Coordinate, zoom float64, opts AccessorOptions) error {
	return accessor.ComposeScaled(repo, stats, dst, roi, planeCoord, zoom, opts.toInternal())
}
