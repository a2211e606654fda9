package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/integrators"
	"github.com/san-kum/chaoslab/internal/metrics"
	"github.com/san-kum/chaoslab/internal/physics"
)

var decay = dynamo.DerivFunc(func(x dynamo.State) dynamo.State { return dynamo.State{-x[0]} })

func TestSimulatorRun(t *testing.T) {
	s := New(decay, integrators.NewRK4())
	result, err := s.Run(context.Background(), dynamo.State{1}, Config{Dt: 0.1, Steps: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 || len(result.Times) != 11 {
		t.Fatalf("got %d states, %d times; want 11", len(result.States), len(result.Times))
	}
	if math.Abs(result.Times[10]-1) > 1e-12 {
		t.Errorf("final time %v", result.Times[10])
	}
	if got, want := result.Final()[0], math.Exp(-1); math.Abs(got-want) > 1e-6 {
		t.Errorf("final state %v, want %v", got, want)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(decay, integrators.NewEuler())
	for _, cfg := range []Config{{Dt: 0, Steps: 1}, {Dt: 0.1, Steps: -1}} {
		if _, err := s.Run(context.Background(), dynamo.State{1}, cfg); !errors.Is(err, dynamo.ErrInvalidParameter) {
			t.Errorf("%+v: err = %v", cfg, err)
		}
	}
}

func TestSimulatorRejectsWrongDimension(t *testing.T) {
	l, err := physics.NewLorenz(physics.DefaultLorenzParams())
	if err != nil {
		t.Fatal(err)
	}
	s := New(l, integrators.NewRK4())
	if _, err := s.Run(context.Background(), dynamo.State{1, 1}, Config{Dt: 0.01, Steps: 1}); !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("2-component start for a 3-variable system: err = %v", err)
	}
}

func TestSimulatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(decay, integrators.NewRK4())
	result, err := s.Run(ctx, dynamo.State{1}, Config{Dt: 0.1, Steps: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("cancelled run took %d steps", result.StepsTaken)
	}
}

func TestSimulatorStopsOnDivergence(t *testing.T) {
	blowup := dynamo.DerivFunc(func(x dynamo.State) dynamo.State { return dynamo.State{x[0] * x[0]} })
	s := New(blowup, integrators.NewEuler())
	result, err := s.Run(context.Background(), dynamo.State{10}, Config{Dt: 1, Steps: 50, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Diverged == nil {
		t.Fatal("divergence not reported")
	}
	if !result.Final().IsValid() {
		t.Error("invalid state recorded")
	}
	if result.StepsTaken >= 50 {
		t.Errorf("run did not stop early: %d steps", result.StepsTaken)
	}
}

func TestSimulatorMetrics(t *testing.T) {
	p := physics.DefaultPendulumParams()
	p.Equations = physics.EquationsLagrangian
	dp, err := physics.NewDoublePendulum(p, physics.PendulumState{})
	if err != nil {
		t.Fatal(err)
	}

	s := New(dp, integrators.NewRK4())
	s.AddMetric(metrics.NewEnergyDrift(dp))
	x0 := dynamo.State{1.0, 0.5, 0, 0}
	result, err := s.Run(context.Background(), x0, Config{Dt: 0.01, Steps: 500})
	if err != nil {
		t.Fatal(err)
	}
	drift, ok := result.Metrics["energy_drift"]
	if !ok {
		t.Fatalf("metrics: %v", result.Metrics)
	}
	if drift > 1e-3 {
		t.Errorf("relative energy drift %v", drift)
	}
}

func TestRunEnsemble(t *testing.T) {
	p := physics.DefaultPendulumParams()
	members := make([]Member, 4)
	for i := range members {
		dp, err := physics.NewDoublePendulum(p, physics.PendulumState{})
		if err != nil {
			t.Fatal(err)
		}
		s := physics.SeededPendulumState(int64(i))
		members[i] = Member{
			System:     dp,
			Integrator: integrators.NewRK4(),
			X0:         dynamo.State{s.Theta1, s.Theta2, s.Omega1, s.Omega2},
		}
	}

	results, err := RunEnsemble(context.Background(), members, Config{Dt: 0.01, Steps: 200}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(members) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.StepsTaken != 200 {
			t.Errorf("member %d took %d steps", i, r.StepsTaken)
		}
		if r.States[0][0] != members[i].X0[0] {
			t.Errorf("member %d results out of order", i)
		}
	}

	// Same run serially gives the same answer.
	solo, err := New(members[1].System, integrators.NewRK4()).Run(context.Background(), members[1].X0, Config{Dt: 0.01, Steps: 200})
	if err != nil {
		t.Fatal(err)
	}
	for j, v := range solo.Final() {
		if v != results[1].Final()[j] {
			t.Fatalf("ensemble result differs from serial run at %d", j)
		}
	}
}
