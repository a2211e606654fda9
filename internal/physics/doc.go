// Package physics provides the ODE and map engines.
//
//   - [Lorenz]: butterfly attractor, 3D trail
//   - [DoublePendulum]: coupled pendulum, 2D trail of the outer bob
//   - [LogisticMap]: scalar iterated map, time series and bifurcation raster
//
// The ODE engines implement [dynamo.System] and [dynamo.Configurable] and
// advance on an RK4 integrator they own. [DoublePendulum] also implements
// [dynamo.Hamiltonian]:
//
//	dp, _ := physics.NewDoublePendulum(physics.DefaultPendulumParams(), physics.SeededPendulumState(1))
//	before := dp.TotalEnergy()
//	dp.Step()
//	drift := dp.TotalEnergy() - before
//
// An engine instance must only be stepped from one goroutine.
package physics
