// Package accessor implements the tile accessors of spec §4.8 and §4.9:
// given a region of interest, a plane coordinate, and (for the scaling
// variant) a zoom factor, select the relevant sub-blocks from a directory,
// decode them, and paint a destination bitmap. Grounded on
// internal/tile/generator.go's ROI-driven orchestration over a source list
// and internal/tile/resample.go's per-tile sampling loop.
package accessor

import "github.com/kjmueller/libczi/internal/model"

// coverage is the rectangle-coverage helper of spec §9: given a running set
// of pairwise-disjoint "already opaquely painted" rectangles, it answers
// "is this rectangle completely covered?" and lets a new rectangle be
// folded in, splitting it against every existing rectangle into up to four
// non-overlapping pieces. Used by the unscaled accessor's
// use_visibility_check optimization (spec §4.8 step 5).
type coverage struct {
	disjoint []model.IntRect
}

// Covered reports whether r is entirely contained in the union of the
// rectangles already inserted.
func (c *coverage) Covered(r model.IntRect) bool {
	if r.Empty() {
		return true
	}
	remaining := []model.IntRect{r}
	for _, existing := range c.disjoint {
		remaining = subtractFromAll(remaining, existing)
		if len(remaining) == 0 {
			return true
		}
	}
	return len(remaining) == 0
}

// Insert folds r into the disjoint set, splitting it against every
// existing rectangle so the invariant (pairwise-disjoint) is preserved.
func (c *coverage) Insert(r model.IntRect) {
	if r.Empty() {
		return
	}
	fragments := []model.IntRect{r}
	for _, existing := range c.disjoint {
		fragments = subtractFromAll(fragments, existing)
		if len(fragments) == 0 {
			return
		}
	}
	c.disjoint = append(c.disjoint, fragments...)
}

// subtractFromAll subtracts obstacle from every rectangle in rects,
// returning the concatenation of the remaining non-overlapping pieces.
func subtractFromAll(rects []model.IntRect, obstacle model.IntRect) []model.IntRect {
	out := make([]model.IntRect, 0, len(rects))
	for _, r := range rects {
		out = append(out, subtract(r, obstacle)...)
	}
	return out
}

// subtract returns r \ obstacle as up to four axis-aligned, non-overlapping
// rectangles (top band, bottom band, left band, right band around the
// intersection), per spec §9's rectangle-coverage helper description.
func subtract(r, obstacle model.IntRect) []model.IntRect {
	inter := r.Intersect(obstacle)
	if inter.Empty() {
		return []model.IntRect{r}
	}
	var out []model.IntRect
	if inter.Y > r.Y {
		out = append(out, model.IntRect{X: r.X, Y: r.Y, W: r.W, H: inter.Y - r.Y})
	}
	if bottom := r.Y + r.H; inter.Y+inter.H < bottom {
		out = append(out, model.IntRect{X: r.X, Y: inter.Y + inter.H, W: r.W, H: bottom - (inter.Y + inter.H)})
	}
	if inter.X > r.X {
		out = append(out, model.IntRect{X: r.X, Y: inter.Y, W: inter.X - r.X, H: inter.H})
	}
	if right := r.X + r.W; inter.X+inter.W < right {
		out = append(out, model.IntRect{X: inter.X + inter.W, Y: inter.Y, W: right - (inter.X + inter.W), H: inter.H})
	}
	return out
}
