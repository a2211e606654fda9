package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/metrics"
)

// Member is one independent run of an ensemble. Members must not share
// systems, integrators or metrics.
type Member struct {
	System     dynamo.System
	Integrator dynamo.Integrator
	X0         dynamo.State
	Metrics    []metrics.Metric
}

// RunEnsemble runs every member concurrently on at most workers goroutines
// (one per CPU when workers <= 0). Results are in member order. The first
// error cancels the remaining runs.
func RunEnsemble(ctx context.Context, members []Member, cfg Config, workers int) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*Result, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range members {
		g.Go(func() error {
			s := New(m.System, m.Integrator)
			for _, mt := range m.Metrics {
				s.AddMetric(mt)
			}
			r, err := s.Run(gctx, m.X0, cfg)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
