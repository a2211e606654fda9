// Package compute schedules fractal rasters across worker goroutines.
//
// A [Scheduler] snapshots the engine parameters when a job is submitted,
// renders into a private buffer in row chunks and publishes the buffer only
// when every chunk finished. Submitting a new job cancels the one in flight:
//
//	s := compute.NewScheduler(compute.WithWorkers(8), compute.WithLogger(logger))
//	job, _ := s.Submit(ctx, mandel.Engine, 800, 600)
//	img, err := job.Wait(ctx)
//
// Cancellation is checked between chunks, so a superseded job stops after at
// most one chunk per worker.
package compute
