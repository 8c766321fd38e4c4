package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DimensionIndex enumerates the axes of the discrete multi-dimensional
// coordinate space a sub-block may be tagged with (spec §3.3, GLOSSARY).
// Grounded on original_source/Src/libCZI/DimCoordinate.cpp's dimension
// enumeration (Supplemented Feature #5).
type DimensionIndex int

const (
	DimInvalid DimensionIndex = iota
	DimZ
	DimC
	DimT
	DimR
	DimS
	DimI
	DimH
	DimV
	DimB
)

// allDimensions lists every valid axis, in the canonical order used for
// string formatting and for the directory writer's sort key (spec §4.5).
var allDimensions = [...]DimensionIndex{DimZ, DimC, DimT, DimR, DimS, DimI, DimH, DimV, DimB}

func (d DimensionIndex) String() string {
	switch d {
	case DimZ:
		return "Z"
	case DimC:
		return "C"
	case DimT:
		return "T"
	case DimR:
		return "R"
	case DimS:
		return "S"
	case DimI:
		return "I"
	case DimH:
		return "H"
	case DimV:
		return "V"
	case DimB:
		return "B"
	default:
		return ""
	}
}

// ParseDimensionIndex maps a single-letter axis name to its DimensionIndex.
func ParseDimensionIndex(s string) (DimensionIndex, bool) {
	switch s {
	case "Z":
		return DimZ, true
	case "C":
		return DimC, true
	case "T":
		return DimT, true
	case "R":
		return DimR, true
	case "S":
		return DimS, true
	case "I":
		return DimI, true
	case "H":
		return DimH, true
	case "V":
		return DimV, true
	case "B":
		return DimB, true
	default:
		return DimInvalid, false
	}
}

// Coordinate is a sparse mapping from DimensionIndex to an integer position;
// each dimension is either valid (present in the map) or absent (spec §3.3).
type Coordinate struct {
	values map[DimensionIndex]int
}

// NewCoordinate returns an empty Coordinate (no valid dimensions); use Set
// to add (dimension, value) pairs.
func NewCoordinate() Coordinate {
	return Coordinate{values: make(map[DimensionIndex]int, 4)}
}

// Set assigns a value to a dimension, marking it valid.
func (c *Coordinate) Set(d DimensionIndex, value int) {
	if c.values == nil {
		c.values = make(map[DimensionIndex]int, 4)
	}
	c.values[d] = value
}

// Clear marks a dimension absent.
func (c *Coordinate) Clear(d DimensionIndex) {
	delete(c.values, d)
}

// TryGet returns the value at d and whether it is valid.
func (c Coordinate) TryGet(d DimensionIndex) (int, bool) {
	v, ok := c.values[d]
	return v, ok
}

// IsValid reports whether dimension d is present in this coordinate.
func (c Coordinate) IsValid(d DimensionIndex) bool {
	_, ok := c.values[d]
	return ok
}

// ForEachValid calls fn once for every valid dimension, in canonical axis
// order (Z,C,T,R,S,I,H,V,B), matching the iteration order the original
// implementation's EnumValidDims uses.
func (c Coordinate) ForEachValid(fn func(d DimensionIndex, value int)) {
	for _, d := range allDimensions {
		if v, ok := c.values[d]; ok {
			fn(d, v)
		}
	}
}

// Len returns the number of valid dimensions.
func (c Coordinate) Len() int {
	return len(c.values)
}

// Matches reports whether every dimension set in filter also matches c's
// value for that dimension; dimensions unset in filter match anything. This
// is the compatibility rule enum_subset's plane_coord parameter uses
// (spec §4.5).
func (c Coordinate) Matches(filter Coordinate) bool {
	for d, v := range filter.values {
		if cv, ok := c.values[d]; !ok || cv != v {
			return false
		}
	}
	return true
}

// Equal reports whether c and other have exactly the same valid dimensions
// with exactly the same values (the "coordinates match" half of the
// coordinate-equal rule in spec §3.3).
func (c Coordinate) Equal(other Coordinate) bool {
	if len(c.values) != len(other.values) {
		return false
	}
	for d, v := range c.values {
		if ov, ok := other.values[d]; !ok || ov != v {
			return false
		}
	}
	return true
}

// String renders the coordinate in the compact "C1T3Z0"-style form used by
// the original implementation's coordinate formatter (Supplemented Feature #5),
// in canonical axis order.
func (c Coordinate) String() string {
	var b strings.Builder
	for _, d := range allDimensions {
		if v, ok := c.values[d]; ok {
			b.WriteString(d.String())
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}

// ParseCoordinate parses the compact "C1T3Z0"-style form back into a
// Coordinate. Axis letters may appear in any order; each must be followed by
// a (possibly negative) decimal integer.
func ParseCoordinate(s string) (Coordinate, error) {
	c := NewCoordinate()
	i := 0
	for i < len(s) {
		letter := s[i : i+1]
		d, ok := ParseDimensionIndex(letter)
		if !ok {
			return Coordinate{}, fmt.Errorf("%w: unknown axis %q in coordinate %q", ErrInvalidArgument, letter, s)
		}
		j := i + 1
		start := j
		if j < len(s) && s[j] == '-' {
			j++
		}
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == start {
			return Coordinate{}, fmt.Errorf("%w: missing value for axis %q in coordinate %q", ErrInvalidArgument, letter, s)
		}
		v, err := strconv.Atoi(s[start:j])
		if err != nil {
			return Coordinate{}, fmt.Errorf("%w: bad value for axis %q in coordinate %q: %v", ErrInvalidArgument, letter, s, err)
		}
		c.Set(d, v)
		i = j
	}
	return c, nil
}

// IntRect is an axis-aligned integer rectangle (position + extent) used for
// logical_rect (spec §3.3) and ROI parameters throughout the accessors.
type IntRect struct {
	X, Y, W, H int
}

// Empty reports whether r has zero or negative area.
func (r IntRect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether r and other overlap.
func (r IntRect) Intersects(other IntRect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// Intersect returns the intersection of r and other. The result is Empty if
// they do not overlap.
func (r IntRect) Intersect(other IntRect) IntRect {
	x0 := maxInt(r.X, other.X)
	y0 := maxInt(r.Y, other.Y)
	x1 := minInt(r.X+r.W, other.X+other.W)
	y1 := minInt(r.Y+r.H, other.Y+other.H)
	if x1 <= x0 || y1 <= y0 {
		return IntRect{}
	}
	return IntRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle containing both r and other. If one
// operand is Empty, the other is returned unchanged.
func (r IntRect) Union(other IntRect) IntRect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := minInt(r.X, other.X)
	y0 := minInt(r.Y, other.Y)
	x1 := maxInt(r.X+r.W, other.X+other.W)
	y1 := maxInt(r.Y+r.H, other.Y+other.H)
	return IntRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntSize is a width/height pair, used for physical_size (spec §3.3).
type IntSize struct {
	W, H int
}

// CompressionMode enumerates how a sub-block's payload is encoded.
type CompressionMode int

const (
	CompressionUncompressed CompressionMode = iota
	CompressionJpeg
	CompressionLzw
	CompressionJpegXr
	CompressionZstd0
	CompressionZstd1
	CompressionUnknown
)

// PyramidType classifies whether, and how, a sub-block participates in a
// stored pyramid. CZI's own format distinguishes "no pyramid",
// "single-subblock pyramid frame", and "multi-subblock pyramid frame"; this
// core only needs to know whether layer-0/pyramid detection applies, which
// stored_size_equals_logical already encodes (spec §3.3), so PyramidType is
// carried through as an opaque tag for fidelity with the on-disk format
// without being interpreted here.
type PyramidType int

// SubBlockInfo is the immutable record produced by the (out-of-scope)
// on-disk parser and held by the directory (spec §3.3).
type SubBlockInfo struct {
	Coordinate  Coordinate
	MIndex      int  // meaningful only if MIndexValid
	MIndexValid bool

	LogicalRect  IntRect
	PhysicalSize IntSize

	PixelType       PixelType
	CompressionMode CompressionMode
	PyramidType     PyramidType

	// FilePosition is an opaque handle passed back to the (external)
	// parser/stream to retrieve the encoded payload (spec §3.3, §6.1).
	FilePosition uint64
}

// StoredSizeEqualsLogical reports whether the entry's stored pixel
// dimensions equal its logical dimensions — i.e. it is a layer-0 tile
// (spec §3.3, GLOSSARY "Layer-0").
func (s SubBlockInfo) StoredSizeEqualsLogical() bool {
	return s.PhysicalSize.W == s.LogicalRect.W && s.PhysicalSize.H == s.LogicalRect.H
}

// Validate checks the invariants spec §3.3 requires of every entry: logical
// and physical dimensions must be strictly positive.
func (s SubBlockInfo) Validate() error {
	if s.LogicalRect.W <= 0 || s.LogicalRect.H <= 0 {
		return fmt.Errorf("%w: logical rect has non-positive extent %dx%d", ErrInvalidArgument, s.LogicalRect.W, s.LogicalRect.H)
	}
	if s.PhysicalSize.W <= 0 || s.PhysicalSize.H <= 0 {
		return fmt.Errorf("%w: physical size has non-positive extent %dx%d", ErrInvalidArgument, s.PhysicalSize.W, s.PhysicalSize.H)
	}
	return nil
}

// CoordinateEqual implements the duplicate-detection rule of spec §3.3: two
// entries are coordinate-equal iff their coordinates match on all valid
// dimensions AND (both have a valid, equal m_index AND both are
// stored_size_equals_logical).
func (s SubBlockInfo) CoordinateEqual(other SubBlockInfo) bool {
	if !s.Coordinate.Equal(other.Coordinate) {
		return false
	}
	if !s.MIndexValid || !other.MIndexValid {
		return false
	}
	if s.MIndex != other.MIndex {
		return false
	}
	return s.StoredSizeEqualsLogical() && other.StoredSizeEqualsLogical()
}

// SortKey produces the writer variant's sort key components (spec §4.5):
// zoom descending, coordinate ascending, valid-m-index-first,
// m-index ascending, x ascending, y ascending. Zoom here is physical/logical
// width ratio; ascending coordinate compares the canonical string form,
// which already orders lexicographically by axis letter then value width in
// the same way the original's std::map<CDimCoordinate,...> comparator does
// for the fixed axis set.
func (s SubBlockInfo) SortKey() string {
	return s.Coordinate.String()
}

func (s SubBlockInfo) effectiveZoom() float64 {
	if s.LogicalRect.W == 0 {
		return 0
	}
	return float64(s.PhysicalSize.W) / float64(s.LogicalRect.W)
}

// lessWriterOrder implements the full writer ordering (spec §4.5) as a
// less-than relation over two entries, for use with sort.Slice.
func lessWriterOrder(a, b SubBlockInfo) bool {
	za, zb := a.effectiveZoom(), b.effectiveZoom()
	if za != zb {
		return za > zb // zoom descending
	}
	ka, kb := a.SortKey(), b.SortKey()
	if ka != kb {
		return ka < kb // coordinate ascending
	}
	if a.MIndexValid != b.MIndexValid {
		return a.MIndexValid // valid-m-index-first
	}
	if a.MIndexValid && a.MIndex != b.MIndex {
		return a.MIndex < b.MIndex // m-index ascending
	}
	if a.LogicalRect.X != b.LogicalRect.X {
		return a.LogicalRect.X < b.LogicalRect.X
	}
	return a.LogicalRect.Y < b.LogicalRect.Y
}

// SortSubBlocksForWriter sorts entries in place according to the writer
// variant's ordering rule (spec §4.5).
func SortSubBlocksForWriter(entries []SubBlockInfo) {
	sort.SliceStable(entries, func(i, j int) bool {
		return lessWriterOrder(entries[i], entries[j])
	})
}

// WriterOrderLess exposes the writer variant's ordering rule as a
// less-than relation, for callers (internal/directory) that keep entries
// paired with other per-entry state and cannot sort a bare []SubBlockInfo.
func WriterOrderLess(a, b SubBlockInfo) bool {
	return lessWriterOrder(a, b)
}
