package compute

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/fractal"
)

const DefaultChunkRows = 16

// Job is one submitted render. Its result is available once Done is closed.
type Job struct {
	ID     string
	Kind   string
	Width  int
	Height int

	cancel context.CancelFunc
	done   chan struct{}
	img    *image.RGBA
	err    error
}

func (j *Job) Done() <-chan struct{} { return j.done }

func (j *Job) Cancel() { j.cancel() }

// Wait blocks until the job finishes or ctx is done. A cancelled or failed job
// returns a nil image.
func (j *Job) Wait(ctx context.Context) (*image.RGBA, error) {
	select {
	case <-j.done:
		return j.img, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type Scheduler struct {
	workers   int
	chunkRows int
	logger    *slog.Logger
	metrics   *Metrics

	mu      sync.Mutex
	current *Job
}

type Option func(*Scheduler)

func WithWorkers(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithChunkRows(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.chunkRows = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		workers:   runtime.NumCPU(),
		chunkRows: DefaultChunkRows,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	return s
}

// Submit starts rendering a width×height raster of eng's current parameters
// and cancels any job still in flight.
func (s *Scheduler) Submit(ctx context.Context, eng *fractal.Engine, width, height int) (*Job, error) {
	if eng == nil {
		return nil, fmt.Errorf("compute: %w: nil engine", dynamo.ErrInvalidParameter)
	}
	return s.submit(ctx, eng.Kind().String(), Snapshot(eng), width, height)
}

func (s *Scheduler) submit(ctx context.Context, kind string, b Backend, width, height int) (*Job, error) {
	img, err := fractal.NewImage(width, height)
	if err != nil {
		return nil, err
	}

	jctx, cancel := context.WithCancel(ctx)
	job := &Job{
		ID:     ulid.Make().String(),
		Kind:   kind,
		Width:  width,
		Height: height,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	if s.current != nil {
		s.logger.Debug("superseding render job", "job_id", s.current.ID, "by", job.ID)
		s.current.cancel()
	}
	s.current = job
	s.mu.Unlock()

	go s.run(jctx, job, b, img)
	return job, nil
}

func (s *Scheduler) run(ctx context.Context, job *Job, b Backend, img *image.RGBA) {
	defer job.cancel()
	start := time.Now()
	s.metrics.activeJobs.Inc()

	err := renderRows(ctx, b, img, s.workers, s.chunkRows, s.metrics.rowsTotal)
	elapsed := time.Since(start)
	s.metrics.activeJobs.Dec()

	switch {
	case err == nil:
		job.img = img
		s.metrics.jobsTotal.WithLabelValues(job.Kind, statusCompleted).Inc()
		s.metrics.renderSeconds.Observe(elapsed.Seconds())
		s.logger.Info("render completed",
			"job_id", job.ID, "kind", job.Kind,
			"width", job.Width, "height", job.Height,
			"duration_ms", elapsed.Milliseconds())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.metrics.jobsTotal.WithLabelValues(job.Kind, statusCancelled).Inc()
		s.logger.Debug("render cancelled", "job_id", job.ID, "kind", job.Kind)
	default:
		s.metrics.jobsTotal.WithLabelValues(job.Kind, statusFailed).Inc()
		s.logger.Error("render failed", "job_id", job.ID, "kind", job.Kind, "error", err)
	}
	job.err = err
	close(job.done)

	s.mu.Lock()
	if s.current == job {
		s.current = nil
	}
	s.mu.Unlock()
}

// Cancel stops the job in flight, if any.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.cancel()
	}
}

// Render computes eng into dst and waits for it. dst is only written when the
// whole raster completed.
func (s *Scheduler) Render(ctx context.Context, eng *fractal.Engine, dst *image.RGBA) error {
	if dst == nil {
		return fmt.Errorf("compute: %w: nil destination", dynamo.ErrInvalidParameter)
	}
	b := dst.Bounds()
	job, err := s.Submit(ctx, eng, b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	img, err := job.Wait(ctx)
	if err != nil {
		return err
	}
	draw.Draw(dst, b, img, image.Point{}, draw.Src)
	return nil
}
