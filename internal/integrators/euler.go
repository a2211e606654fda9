package integrators

import (
	"fmt"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

// Euler is the explicit first-order method, kept for side-by-side accuracy runs.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	dx := dyn.Derive(x)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// ByName returns a fresh integrator for "rk4" or "euler".
func ByName(name string) (dynamo.Integrator, error) {
	switch name {
	case "", "rk4":
		return NewRK4(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

// Names lists the integrators ByName accepts.
func Names() []string {
	return []string{"rk4", "euler"}
}
