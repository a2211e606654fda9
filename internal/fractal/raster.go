package fractal

import (
	"fmt"
	"image"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

// Tile is a rectangular pixel region, top-left at (X0, Y0).
type Tile struct {
	X0, Y0 int
	W, H   int
}

func (t Tile) rect() image.Rectangle {
	return image.Rect(t.X0, t.Y0, t.X0+t.W, t.Y0+t.H)
}

// NewImage allocates a row-major RGBA8888 raster (stride 4·width) with every
// alpha byte set to 255.
func NewImage(width, height int) (*image.RGBA, error) {
	if err := dynamo.Positive("raster", "width", float64(width)); err != nil {
		return nil, err
	}
	if err := dynamo.Positive("raster", "height", float64(height)); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img, nil
}

// Tiles splits a width×height raster into size×size tiles, clipped at the
// right and bottom edges.
func Tiles(width, height, size int) []Tile {
	if width <= 0 || height <= 0 || size <= 0 {
		return nil
	}
	var out []Tile
	for y := 0; y < height; y += size {
		for x := 0; x < width; x += size {
			out = append(out, Tile{X0: x, Y0: y, W: min(size, width-x), H: min(size, height-y)})
		}
	}
	return out
}

// ComputeRows fills rows [start, start+count) of img, clipped to its bounds,
// and returns how many rows were written. Nothing outside those rows is
// touched.
func (e *Engine) ComputeRows(img *image.RGBA, start, count int) (int, error) {
	if img == nil {
		return 0, fmt.Errorf("%s: %w: nil image", e.kind, dynamo.ErrInvalidParameter)
	}
	if err := dynamo.NonNegative("raster", "start_row", float64(start)); err != nil {
		return 0, err
	}
	if err := dynamo.NonNegative("raster", "row_count", float64(count)); err != nil {
		return 0, err
	}
	b := img.Bounds()
	region := image.Rect(b.Min.X, b.Min.Y+start, b.Max.X, b.Min.Y+start+count).Intersect(b)
	e.fill(img, region)
	return region.Dy(), nil
}

// ComputeTile fills the part of t that lies inside img.
func (e *Engine) ComputeTile(img *image.RGBA, t Tile) error {
	if img == nil {
		return fmt.Errorf("%s: %w: nil image", e.kind, dynamo.ErrInvalidParameter)
	}
	if t.W < 0 || t.H < 0 {
		return &dynamo.ParamError{Engine: "raster", Param: "tile", Value: float64(min(t.W, t.H)), Reason: "must not be negative"}
	}
	b := img.Bounds()
	e.fill(img, t.rect().Add(b.Min).Intersect(b))
	return nil
}

// fill evaluates every pixel of region, sampling the plane at the pixel's
// coordinate relative to the image origin.
func (e *Engine) fill(img *image.RGBA, region image.Rectangle) {
	if region.Empty() {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	for py := region.Min.Y; py < region.Max.Y; py++ {
		off := img.PixOffset(region.Min.X, py)
		for px := region.Min.X; px < region.Max.X; px++ {
			z := e.ScreenToComplex(float64(px-b.Min.X), float64(py-b.Min.Y), w, h)
			res := e.CalculatePoint(z)
			c := e.IterationsToColor(res.Iterations, res.Escaped)
			pix := img.Pix[off : off+4 : off+4]
			pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, 255
			off += 4
		}
	}
}

// Render computes a complete width×height raster in one call.
func (e *Engine) Render(width, height int) (*image.RGBA, error) {
	img, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}
	if _, err := e.ComputeRows(img, 0, height); err != nil {
		return nil, err
	}
	return img, nil
}
