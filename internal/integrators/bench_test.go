package integrators

import (
	"testing"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

type benchDynamics struct{}

func (b *benchDynamics) StateDim() int { return 2 }
func (b *benchDynamics) Derive(x dynamo.State) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &benchDynamics{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &benchDynamics{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0.01)
	}
}

type benchLorenz struct{}

func (b *benchLorenz) StateDim() int { return 3 }
func (b *benchLorenz) Derive(s dynamo.State) dynamo.State {
	return dynamo.State{10 * (s[1] - s[0]), s[0]*(28-s[2]) - s[1], s[0]*s[1] - 8.0/3.0*s[2]}
}

func BenchmarkRK4_Lorenz(b *testing.B) {
	integrator := NewRK4()
	dyn := &benchLorenz{}
	x := dynamo.State{1, 1, 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0.001)
	}
}
