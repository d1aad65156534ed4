package integrators

import "github.com/san-kum/barmotion/internal/dynamo"

// Euler is the explicit first-order stepper. Cheap, and visibly lossy
// on stiff springs.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, u, t)
	next := make(dynamo.State, len(x))
	for i := range x {
		next[i] = x[i] + dt*dx[i]
	}
	return next
}

// SemiImplicitEuler updates velocities first and positions with the new
// velocities. The state must be laid out as [positions..., velocities...].
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, u, t)
	half := len(x) / 2
	next := make(dynamo.State, len(x))
	for i := 0; i < half; i++ {
		next[half+i] = x[half+i] + dt*dx[half+i]
		next[i] = x[i] + dt*next[half+i]
	}
	return next
}
