// Command czi-inspect exercises the core library end to end against a
// synthetic in-memory fixture (there is no on-disk CZI segment parser in
// this core; spec.md §1 puts that out of scope): it builds a three-layer
// pyramid directory, prints the derived statistics and pyramid-layer
// catalogue, then renders a requested region through the tile accessors
// and writes the result as a PNG. Grounded on cmd/coginfo/main.go
// (diagnostic dump) and cmd/geotiff2pmtiles/main.go (flag registration
// style, grouped var block, custom flag.Usage).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/kjmueller/libczi/internal/accessor"
	"github.com/kjmueller/libczi/internal/bitmap"
	"github.com/kjmueller/libczi/internal/cache"
	"github.com/kjmueller/libczi/internal/directory"
	"github.com/kjmueller/libczi/internal/model"
)

func main() {
	var (
		roiX, roiY, roiW, roiH int
		zoom                   float64
		scaled                 bool
		outPath                string
		verbose                bool
	)

	flag.IntVar(&roiX, "x", 0, "ROI origin X in canvas pixels")
	flag.IntVar(&roiY, "y", 0, "ROI origin Y in canvas pixels")
	flag.IntVar(&roiW, "w", 400, "ROI width in canvas pixels")
	flag.IntVar(&roiH, "h", 300, "ROI height in canvas pixels")
	flag.Float64Var(&zoom, "zoom", 1.0, "Requested zoom (physical/logical); only used with -scaled")
	flag.BoolVar(&scaled, "scaled", false, "Use the scaling accessor instead of the unscaled one")
	flag.StringVar(&outPath, "out", "czi-inspect.png", "Output PNG path")
	flag.BoolVar(&verbose, "verbose", false, "Print per-sub-block detail")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: czi-inspect [flags]\n\nBuilds a synthetic multi-resolution sub-block fixture, prints its\nderived statistics, and renders a region of it to a PNG.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	repo, err := buildFixture()
	if err != nil {
		log.Fatalf("building fixture: %v", err)
	}

	st := repo.Statistics()
	fmt.Printf("sub-blocks: %d\n", st.SubBlockCount)
	if st.BoundingBoxValid {
		fmt.Printf("bounding box: %+v\n", st.BoundingBox)
	}
	if st.BoundingBoxLayer0OK {
		fmt.Printf("bounding box (layer-0 only): %+v\n", st.BoundingBoxLayer0)
	}
	for scene, rows := range st.PyramidLayerCatalogue {
		fmt.Printf("scene %d pyramid catalogue:\n", scene)
		for _, row := range rows {
			if row.NotIdentified {
				fmt.Printf("  factor=? layer=? count=%d (not identified)\n", row.Count)
				continue
			}
			fmt.Printf("  factor=%d layer=%d count=%d\n", row.MinificationFactor, row.PyramidLayerNo, row.Count)
		}
	}

	roi := model.IntRect{X: roiX, Y: roiY, W: roiW, H: roiH}
	tileCache := cache.New()
	opts := accessor.Options{
		Background: accessor.RGB{R: 0, G: 0, B: 0},
		SortByM:    true,
		Cache:      tileCache,
	}

	var dst *bitmap.Bitmap
	if scaled {
		dst = bitmap.New(model.Gray8, int(float64(roiW)*zoom), int(float64(roiH)*zoom), int(float64(roiW)*zoom))
		if err := accessor.ComposeScaled(repo, st, dst, roi, model.NewCoordinate(), zoom, opts); err != nil {
			log.Fatalf("compose scaled: %v", err)
		}
	} else {
		dst = bitmap.New(model.Gray8, roiW, roiH, roiW)
		if err := accessor.ComposeUnscaled(repo, dst, roi, model.NewCoordinate(), opts); err != nil {
			log.Fatalf("compose unscaled: %v", err)
		}
	}

	if verbose {
		fmt.Printf("cache: %+v\n", tileCache.Statistics(cache.StatAll))
	}

	if err := writePNG(dst, outPath); err != nil {
		log.Fatalf("writing %s: %v", outPath, err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", outPath, dst.Width(), dst.Height())
}

// buildFixture synthesizes a three-layer (factor-of-2) pyramid over an
// 800x600 canvas: one layer-0 sub-block plus two downsampled sub-blocks,
// each carrying a distinct gradient so a rendered region visibly shows
// which layer contributed it.
func buildFixture() (*directory.ReadOnly, error) {
	repo := directory.NewReadOnly()

	layers := []struct {
		physW, physH int
	}{
		{800, 600},
		{400, 300},
		{200, 150},
	}
	for i, l := range layers {
		info := model.SubBlockInfo{
			LogicalRect:     model.IntRect{X: 0, Y: 0, W: 800, H: 600},
			PhysicalSize:    model.IntSize{W: l.physW, H: l.physH},
			PixelType:       model.Gray8,
			CompressionMode: model.CompressionUncompressed,
		}
		if _, err := repo.Add(fixtureSubBlock{info: info, fill: byte(64 * (i + 1))}); err != nil {
			return nil, err
		}
	}
	repo.AddingFinished()
	return repo, nil
}

// fixtureSubBlock is a minimal model.ISubBlock producing a flat-gradient
// payload on demand, standing in for the out-of-scope on-disk parser.
type fixtureSubBlock struct {
	info model.SubBlockInfo
	fill byte
}

func (f fixtureSubBlock) Info() model.SubBlockInfo { return f.info }

func (f fixtureSubBlock) RawData(kind model.AttachmentKind) ([]byte, error) {
	w, h := f.info.PhysicalSize.W, f.info.PhysicalSize.H
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = f.fill + byte((x+y)%32)
		}
	}
	return buf, nil
}

func writePNG(bm *bitmap.Bitmap, path string) error {
	view := bm.Lock()
	defer bm.Unlock()

	img := image.NewGray(image.Rect(0, 0, bm.Width(), bm.Height()))
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			img.SetGray(x, y, color.Gray{Y: view.Data[y*view.Stride+x]})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
