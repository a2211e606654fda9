package sim

import (
	"context"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/metrics"
)

// Simulator drives any dynamo.System with a chosen integrator and feeds each
// visited state to its metrics. Engines have their own Step; the simulator is
// for runs that swap the integrator or need the full state history.
type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []metrics.Metric
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{dyn: dyn, integrator: integrator}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }

// Run integrates cfg.Steps steps from x0. The context is checked before every
// step; a cancelled run returns the partial result with ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := dynamo.CheckDim(x0, s.dyn.StateDim()); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([]dynamo.State, 0, cfg.Steps+1),
		Times:   make([]float64, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
	s.observe(x)

	for i := 0; i < cfg.Steps; i++ {
		if err := ctx.Err(); err != nil {
			s.collect(result)
			return result, err
		}

		next := s.integrator.Step(s.dyn, x, cfg.Dt)
		if cfg.ValidateState && !next.IsValid() {
			result.Diverged = &SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			break
		}

		x = next
		t += cfg.Dt
		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
		s.observe(x)
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) observe(x dynamo.State) {
	for _, m := range s.metrics {
		m.Observe(x)
	}
}

func (s *Simulator) collect(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
