package accessor

import (
	"sort"

	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/directory"
	"github.com/kjmueller/libczi/internal/model"
	"github.com/kjmueller/libczi/internal/stats"
)

// pivotOverzoomFactor is the "never mix more than one pyramid level deep"
// heuristic constant of spec §4.9 step 5. It is not derived from the file
// format and is preserved verbatim per spec §9's open question.
const pivotOverzoomFactor = 1.9

// ComposeScaled implements the single-channel scaling tile accessor of
// spec §4.9: it clears dst, optionally splits the work into one pass per
// scene so pyramid selection honors scene boundaries, and for each pass
// picks the pivot pyramid layer (the coarsest layer whose effective zoom is
// still >= the requested zoom) and nearest-neighbor-scales candidates from
// the pivot up to 1.9x the pivot's zoom into dst. statistics must be the
// consolidated statistics for repo (spec §4.6), used only to find which
// scenes intersect roi. dst must be sized floor(roi.W*zoom) x
// floor(roi.H*zoom).
func ComposeScaled(repo directory.Repository, statistics stats.Statistics, dst *bitmap.Bitmap, roi model.IntRect, planeCoord model.Coordinate, zoom float64, opts Options) error {
	dstView := dst.Lock()
	defer dst.Unlock()
	bitmap.Fill(dstView.Data, dstView.Stride, dst.PixelType(), dst.Width(), dst.Height(), opts.Background.R, opts.Background.G, opts.Background.B)

	scenes := involvedScenes(statistics, roi)

	var passes []*int
	if len(scenes) <= 1 {
		passes = []*int{nil}
	} else {
		for _, s := range scenes {
			s := s
			passes = append(passes, &s)
		}
	}

	for _, scenePass := range passes {
		if err := composeScaledPass(repo, dst, dstView, roi, planeCoord, zoom, opts, scenePass); err != nil {
			return err
		}
	}
	return nil
}

// involvedScenes returns the scene indices whose overall bounding box
// intersects roi, in ascending order (spec §4.9 step 2). stats.NoSceneKey
// is included like any other scene index; it just means "entries with no S
// coordinate".
func involvedScenes(statistics stats.Statistics, roi model.IntRect) []int {
	var scenes []int
	for scene, boxes := range statistics.SceneBoundingBoxes {
		if boxes.Overall.Intersects(roi) {
			scenes = append(scenes, scene)
		}
	}
	sort.Ints(scenes)
	return scenes
}

type scaledCandidate struct {
	index int
	info  model.SubBlockInfo
	zoomX float64
	zoomY float64
}

func composeScaledPass(repo directory.Repository, dst *bitmap.Bitmap, dstView bitmap.LockedView, roi model.IntRect, planeCoord model.Coordinate, zoom float64, opts Options, scenePass *int) error {
	var candidates []scaledCandidate
	repo.EnumSubset(planeCoord, &roi, false, func(index int, info model.SubBlockInfo) bool {
		if opts.SceneFilter != nil {
			scene, ok := sceneOf(info)
			if !ok || !opts.SceneFilter.Contains(scene) {
				return true
			}
		}
		if scenePass != nil && !sceneMatches(info, *scenePass) {
			return true
		}
		if info.LogicalRect.W == 0 || info.LogicalRect.H == 0 {
			return true
		}
		candidates = append(candidates, scaledCandidate{
			index: index,
			info:  info,
			zoomX: float64(info.PhysicalSize.W) / float64(info.LogicalRect.W),
			zoomY: float64(info.PhysicalSize.H) / float64(info.LogicalRect.H),
		})
		return true
	})
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].zoomX < candidates[j].zoomX
	})

	pivot := -1
	for i, c := range candidates {
		if c.zoomX >= zoom {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		// Requested zoom is below the coarsest available pyramid layer;
		// callers wanting overzoom must supply a higher zoom (spec §4.9
		// step 4, §9 "reference leaves background color").
		return nil
	}

	pivotZoom := candidates[pivot].zoomX
	threshold := pivotZoom * pivotOverzoomFactor

	for i := pivot; i < len(candidates); i++ {
		c := candidates[i]
		if c.zoomX >= threshold {
			break
		}
		if err := paintScaledCandidate(repo, dst, dstView, roi, zoom, opts, c); err != nil {
			return err
		}
	}
	return nil
}

func paintScaledCandidate(repo directory.Repository, dst *bitmap.Bitmap, dstView bitmap.LockedView, roi model.IntRect, zoom float64, opts Options, c scaledCandidate) error {
	interLogical := c.info.LogicalRect.Intersect(roi)
	if interLogical.Empty() {
		return nil
	}

	srcROI := bitmap.RealRect{
		X: float64(interLogical.X-c.info.LogicalRect.X) * c.zoomX,
		Y: float64(interLogical.Y-c.info.LogicalRect.Y) * c.zoomY,
		W: float64(interLogical.W) * c.zoomX,
		H: float64(interLogical.H) * c.zoomY,
	}
	dstROI := bitmap.RealRect{
		X: float64(interLogical.X-roi.X) * zoom,
		Y: float64(interLogical.Y-roi.Y) * zoom,
		W: float64(interLogical.W) * zoom,
		H: float64(interLogical.H) * zoom,
	}

	srcBitmap, err := decodeTile(repo, opts, c.index, c.info)
	if err != nil {
		return err
	}
	srcView := srcBitmap.Lock()
	defer srcBitmap.Unlock()

	return bitmap.NNResize(
		srcView.Data, srcView.Stride, srcBitmap.PixelType(), srcBitmap.Width(), srcBitmap.Height(), srcROI,
		dstView.Data, dstView.Stride, dst.PixelType(), dst.Width(), dst.Height(), dstROI,
	)
}

// sceneMatches reports whether info belongs to scene (stats.NoSceneKey
// meaning "no S coordinate at all"), per spec §4.9 step 2's grouping rule.
func sceneMatches(info model.SubBlockInfo, scene int) bool {
	v, ok := sceneOf(info)
	if scene == stats.NoSceneKey {
		return !ok
	}
	return ok && v == scene
}
