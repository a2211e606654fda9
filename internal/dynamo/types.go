package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Point2 is a position in the plane.
type Point2 struct {
	X, Y float64
}

// Point3 is a position in space.
type Point3 struct {
	X, Y, Z float64
}

// System is an autonomous ODE: dX/dt = Derive(X).
type System interface {
	Derive(x State) State
	StateDim() int
}

// DerivFunc adapts a plain derivative function to System.
type DerivFunc func(x State) State

func (f DerivFunc) Derive(x State) State { return f(x) }

// StateDim is unknown for a bare function; integrators size from the state.
func (f DerivFunc) StateDim() int { return 0 }

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, dt float64) State
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
