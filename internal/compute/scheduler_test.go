package compute

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/fractal"
)

// gateBackend blocks inside its first chunk until released.
type gateBackend struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGate() *gateBackend {
	return &gateBackend{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateBackend) ComputeRows(img *image.RGBA, start, count int) (int, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	return count, nil
}

type failingBackend struct{}

func (failingBackend) ComputeRows(*image.RGBA, int, int) (int, error) {
	return 0, errors.New("boom")
}

func counterValue(reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	Expect(err).NotTo(HaveOccurred())
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return -1
}

func matchLabels(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

var _ = Describe("chunks", func() {
	It("covers the height with bounded runs", func() {
		Expect(chunks(10, 4)).To(Equal([][2]int{{0, 4}, {4, 4}, {8, 2}}))
		Expect(chunks(3, 0)).To(Equal([][2]int{{0, 3}}))
		Expect(chunks(0, 4)).To(BeEmpty())
	})
})

var _ = Describe("Scheduler", func() {
	var (
		reg   *prometheus.Registry
		sched *Scheduler
		logs  *bytes.Buffer
		m     *fractal.Mandelbrot
		ctx   context.Context
	)

	BeforeEach(func() {
		reg = prometheus.NewRegistry()
		logs = &bytes.Buffer{}
		logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		sched = NewScheduler(
			WithWorkers(4),
			WithChunkRows(3),
			WithLogger(logger),
			WithMetrics(NewMetrics(reg)),
		)
		var err error
		m, err = fractal.NewMandelbrot(fractal.DefaultMandelbrotParams())
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	It("renders the same pixels as a single-threaded pass", func() {
		want, err := m.Render(40, 30)
		Expect(err).NotTo(HaveOccurred())

		dst, _ := fractal.NewImage(40, 30)
		Expect(sched.Render(ctx, m.Engine, dst)).To(Succeed())
		Expect(dst.Pix).To(Equal(want.Pix))
	})

	It("records rows, jobs and duration", func() {
		dst, _ := fractal.NewImage(16, 10)
		Expect(sched.Render(ctx, m.Engine, dst)).To(Succeed())

		Expect(counterValue(reg, "chaoslab_render_rows_total", nil)).To(Equal(10.0))
		Expect(counterValue(reg, "chaoslab_render_jobs_total",
			map[string]string{"kind": "mandelbrot", "status": "completed"})).To(Equal(1.0))
		Expect(counterValue(reg, "chaoslab_render_jobs_total",
			map[string]string{"kind": "julia", "status": "completed"})).To(Equal(0.0))
		Expect(logs.String()).To(ContainSubstring(`"msg":"render completed"`))
	})

	It("assigns a ULID to every job", func() {
		job, err := sched.Submit(ctx, m.Engine, 8, 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(job.ID).To(HaveLen(26))
		_, err = job.Wait(ctx)
		Expect(err).NotTo(HaveOccurred())
	})

	It("snapshots parameters at submit time", func() {
		want, _ := m.Render(12, 12)
		job, err := sched.Submit(ctx, m.Engine, 12, 12)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.SetParam("zoom", 40)).To(Succeed())

		img, err := job.Wait(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Pix).To(Equal(want.Pix))
	})

	It("cancels the job in flight when a new one is submitted", func() {
		gate := newGate()
		own := prometheus.NewRegistry()
		s := NewScheduler(WithWorkers(1), WithChunkRows(1), WithMetrics(NewMetrics(own)))

		first, err := s.submit(ctx, "mandelbrot", gate, 4, 4)
		Expect(err).NotTo(HaveOccurred())
		Eventually(gate.started).Should(BeClosed())

		second, err := s.Submit(ctx, m.Engine, 4, 4)
		Expect(err).NotTo(HaveOccurred())
		close(gate.release)

		img, err := first.Wait(ctx)
		Expect(err).To(MatchError(context.Canceled))
		Expect(img).To(BeNil())

		img, err = second.Wait(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(4))

		Expect(counterValue(own, "chaoslab_render_jobs_total",
			map[string]string{"kind": "mandelbrot", "status": "cancelled"})).To(Equal(1.0))
	})

	It("leaves the destination untouched when cancelled", func() {
		dst, _ := fractal.NewImage(10, 10)
		before := append([]byte(nil), dst.Pix...)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		Expect(sched.Render(cctx, m.Engine, dst)).To(MatchError(context.Canceled))
		Expect(dst.Pix).To(Equal(before))
	})

	It("reports backend failures", func() {
		job, err := sched.submit(ctx, "julia", failingBackend{}, 4, 4)
		Expect(err).NotTo(HaveOccurred())
		_, err = job.Wait(ctx)
		Expect(err).To(MatchError("boom"))
		Expect(counterValue(reg, "chaoslab_render_jobs_total",
			map[string]string{"kind": "julia", "status": "failed"})).To(Equal(1.0))
	})

	It("rejects empty rasters and nil inputs", func() {
		_, err := sched.Submit(ctx, m.Engine, 0, 10)
		Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		_, err = sched.Submit(ctx, nil, 10, 10)
		Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		Expect(sched.Render(ctx, m.Engine, nil)).To(MatchError(dynamo.ErrInvalidParameter))
	})
})
