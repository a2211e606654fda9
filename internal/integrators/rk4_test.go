package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}
}

func TestRK4ZeroDerivativeKeepsState(t *testing.T) {
	zero := dynamo.DerivFunc(func(x dynamo.State) dynamo.State {
		return make(dynamo.State, len(x))
	})
	integ := NewRK4()

	x0 := dynamo.State{1.5, -2.25, 3.125, 0}
	x := integ.Step(zero, x0, 0.01)

	for i := range x0 {
		if x[i] != x0[i] {
			t.Errorf("component %d changed: %v -> %v", i, x0[i], x[i])
		}
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	integ := NewRK4()
	x0 := dynamo.State{1.0, 0.0}
	_ = integ.Step(&simpleDynamics{}, x0, 0.1)

	if x0[0] != 1.0 || x0[1] != 0.0 {
		t.Errorf("input state modified: %v", x0)
	}
}

func TestRK4NegativeDtReversesStep(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x0 := dynamo.State{1.0, 0.0}
	forward := integ.Step(dyn, x0, 0.01)
	back := integ.Step(dyn, forward, -0.01)

	for i := range x0 {
		if math.Abs(back[i]-x0[i]) > 1e-10 {
			t.Errorf("component %d: expected %v, got %v", i, x0[i], back[i])
		}
	}
}

func TestRK4ExponentialDecay(t *testing.T) {
	decay := dynamo.DerivFunc(func(x dynamo.State) dynamo.State {
		return dynamo.State{-x[0]}
	})
	integ := NewRK4()

	x := dynamo.State{1.0}
	for i := 0; i < 100; i++ {
		x = integ.Step(decay, x, 0.01)
	}

	if math.Abs(x[0]-math.Exp(-1)) > 1e-9 {
		t.Errorf("expected %v, got %v", math.Exp(-1), x[0])
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"rk4", false},
		{"", false},
		{"euler", false},
		{"verlet", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ByName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestEulerFirstOrder(t *testing.T) {
	integ := NewEuler()
	x := integ.Step(&simpleDynamics{}, dynamo.State{1.0, 0.0}, 0.1)

	if x[0] != 1.0 || math.Abs(x[1]+0.1) > 1e-15 {
		t.Errorf("unexpected euler step: %v", x)
	}
}
