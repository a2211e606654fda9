package compute

import (
	"image"

	"github.com/san-kum/chaoslab/internal/fractal"
)

// Backend computes a chunk of rows into an image. *fractal.Engine is the
// production implementation.
type Backend interface {
	ComputeRows(img *image.RGBA, start, count int) (int, error)
}

// Snapshot returns a copy of eng that later parameter changes cannot reach.
func Snapshot(eng *fractal.Engine) Backend {
	return eng.Clone()
}

// chunks splits [0, height) into runs of at most size rows.
func chunks(height, size int) [][2]int {
	if size <= 0 {
		size = height
	}
	var out [][2]int
	for start := 0; start < height; start += size {
		out = append(out, [2]int{start, min(size, height-start)})
	}
	return out
}
