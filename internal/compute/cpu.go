package compute

import (
	"context"
	"image"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// renderRows computes img chunk by chunk on at most workers goroutines. No
// new chunk starts once ctx is done.
func renderRows(ctx context.Context, b Backend, img *image.RGBA, workers, chunkRows int, rows prometheus.Counter) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, ch := range chunks(img.Bounds().Dy(), chunkRows) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := b.ComputeRows(img, ch[0], ch[1])
			rows.Add(float64(n))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
