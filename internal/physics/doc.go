// Package physics provides the dynamical systems behind animation curves.
//
// [SpringDamper] implements [dynamo.System] and [dynamo.Hamiltonian]:
//
//	m x'' = -k (x - target) - c x' + u
//
// For an unforced, damped spring the energy only decreases:
//
//	s := physics.NewSpringDamper(5, 100, 200)
//	e := s.Energy(dynamo.State{0, 0})
package physics
