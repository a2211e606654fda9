// Package dynamo provides the core primitives shared by every engine.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of autonomous ordinary differential equations:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X))
//   - [Integrator]: numerical stepper interface
//   - [Configurable]: name-addressed parameter access
//   - [Trail]: fixed-capacity ring buffer of visited positions
//
// # Example
//
//	dyn := dynamo.DerivFunc(func(x dynamo.State) dynamo.State { return dynamo.State{-x[0]} })
//	integ := integrators.NewRK4()
//	x := integ.Step(dyn, dynamo.State{1}, 0.01)
//
// # Thread Safety
//
// Engines built on these primitives are NOT thread-safe. A single engine
// must only be advanced from one goroutine; separate engines are independent.
package dynamo
