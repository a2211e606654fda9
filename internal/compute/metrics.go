package compute

import "github.com/prometheus/client_golang/prometheus"

// Job status label values.
const (
	statusCompleted = "completed"
	statusCancelled = "cancelled"
	statusFailed    = "failed"
)

// Metrics are the scheduler's Prometheus collectors.
type Metrics struct {
	rowsTotal     prometheus.Counter
	jobsTotal     *prometheus.CounterVec
	renderSeconds prometheus.Histogram
	activeJobs    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chaoslab_render_rows_total",
			Help: "Total number of raster rows computed.",
		}),
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chaoslab_render_jobs_total",
			Help: "Total number of render jobs by final status.",
		}, []string{"kind", "status"}),
		renderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chaoslab_render_seconds",
			Help:    "Duration of completed render jobs, in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		activeJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chaoslab_render_active_jobs",
			Help: "Number of render jobs currently running.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.rowsTotal, m.jobsTotal, m.renderSeconds, m.activeJobs)
	}

	for _, kind := range []string{"mandelbrot", "julia"} {
		m.jobsTotal.WithLabelValues(kind, statusCompleted)
		m.jobsTotal.WithLabelValues(kind, statusCancelled)
		m.jobsTotal.WithLabelValues(kind, statusFailed)
	}
	return m
}
