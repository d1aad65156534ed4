// Package dynamo is the numerical core behind integrated motion curves.
//
// A [System] describes dX/dt = f(X, u, t); an [Integrator] advances it by
// one step. [Trajectory] walks a system forward from an initial state and
// keeps its position, so callers sampling increasing times do not start
// over on every sample:
//
//	spring := physics.NewSpringDamper(5, 100, 200)
//	tr, err := dynamo.NewTrajectory(spring, integrators.NewRK4(), dynamo.State{0, 0}, 1.0/240)
//	x, err := tr.At(0.5)
//
// Integrators keep scratch buffers and are not safe for concurrent use.
package dynamo
