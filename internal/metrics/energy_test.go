package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

type springEnergy struct{}

func (springEnergy) Energy(x dynamo.State) float64 {
	return 0.5*x[0]*x[0] + 0.5*x[1]*x[1]
}

func TestEnergyMean(t *testing.T) {
	m := NewEnergy(springEnergy{})

	m.Observe(dynamo.State{1, 0})
	m.Observe(dynamo.State{0, 2})
	if got := m.Value(); math.Abs(got-1.25) > 1e-12 {
		t.Errorf("mean energy = %v, want 1.25", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	d := NewEnergyDrift(springEnergy{})

	d.Observe(dynamo.State{1, 0})
	d.Observe(dynamo.State{1, 1})
	d.Observe(dynamo.State{1, 0.5})

	if got := d.Value(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("max drift = %v, want 1", got)
	}
	if d.Initial() != 0.5 || d.Current() != 0.625 {
		t.Errorf("initial %v current %v", d.Initial(), d.Current())
	}

	d.Reset()
	if d.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestEnergyDriftZeroInitial(t *testing.T) {
	d := NewEnergyDrift(springEnergy{})
	d.ObserveEnergy(0)
	d.ObserveEnergy(3)
	if d.Value() != 0 {
		t.Errorf("drift against zero energy = %v", d.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability(100)
	if s.Value() != 1 {
		t.Errorf("empty stability = %v", s.Value())
	}

	s.Observe(dynamo.State{1, 2, 3})
	s.Observe(dynamo.State{1, 200, 3})
	s.Observe(dynamo.State{math.NaN(), 0, 0})
	s.Observe(dynamo.State{0, 0, 0})

	if got := s.Value(); got != 0.5 {
		t.Errorf("stability = %v, want 0.5", got)
	}

	var _ Metric = s
	var _ Metric = NewEnergyDrift(springEnergy{})
}
