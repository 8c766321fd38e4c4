package accessor

import (
	"sort"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/directory"
	"github.com/kjmueller/libczi/internal/model"
)

// ComposeUnscaled implements the single-channel tile accessor of spec §4.8:
// clear dst with the background color, collect layer-0 candidates
// intersecting roi on planeCoord, optionally sort by m_index, then blit
// each candidate at its logical offset into dst. dst must already be sized
// to roi.W x roi.H.
func ComposeUnscaled(repo directory.Repository, dst *bitmap.Bitmap, roi model.IntRect, planeCoord model.Coordinate, opts Options) error {
	dstView := dst.Lock()
	defer dst.Unlock()
	bitmap.Fill(dstView.Data, dstView.Stride, dst.PixelType(), dst.Width(), dst.Height(), opts.Background.R, opts.Background.G, opts.Background.B)

	type candidate struct {
		index int
		info  model.SubBlockInfo
	}
	var candidates []candidate
	repo.EnumSubset(planeCoord, &roi, true, func(index int, info model.SubBlockInfo) bool {
		if opts.SceneFilter != nil {
			scene, ok := sceneOf(info)
			if !ok || !opts.SceneFilter.Contains(scene) {
				return true
			}
		}
		candidates = append(candidates, candidate{index: index, info: info})
		return true
	})

	if opts.SortByM {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].info.MIndex < candidates[j].info.MIndex
		})
	}

	var painted coverage
	for _, c := range candidates {
		clipped := c.info.LogicalRect.Intersect(roi)
		if clipped.Empty() {
			continue
		}
		if opts.UseVisibilityCheck {
			if painted.Covered(clipped) {
				continue
			}
		}

		srcBitmap, err := decodeTile(repo, opts, c.index, c.info)
		if err != nil {
			return err
		}
		srcView := srcBitmap.Lock()
		blitErr := bitmap.CopyWithOffset(
			bitmap.BlitInfo{
				SrcRectAtOffset: model.IntRect{
					X: c.info.LogicalRect.X - roi.X,
					Y: c.info.LogicalRect.Y - roi.Y,
					W: c.info.LogicalRect.W,
					H: c.info.LogicalRect.H,
				},
				Src:       srcView.Data,
				SrcStride: srcView.Stride,
				SrcType:   srcBitmap.PixelType(),
				SrcSize:   model.IntSize{W: srcBitmap.Width(), H: srcBitmap.Height()},
			},
			dstView.Data, dstView.Stride, dst.PixelType(), model.IntSize{W: dst.Width(), H: dst.Height()},
			opts.DrawTileBorder,
		)
		srcBitmap.Unlock()
		if blitErr != nil {
			return blitErr
		}

		if opts.UseVisibilityCheck {
			painted.Insert(clipped)
		}
	}
	return nil
}
