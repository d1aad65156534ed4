package integrators

import "github.com/san-kum/barmotion/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta stepper.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	probe          dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if len(r.probe) == n {
		return
	}
	r.k1 = make(dynamo.State, n)
	r.k2 = make(dynamo.State, n)
	r.k3 = make(dynamo.State, n)
	r.k4 = make(dynamo.State, n)
	r.probe = make(dynamo.State, n)
}

// offset writes x + h*k into r.probe.
func (r *RK4) offset(x, k dynamo.State, h float64) dynamo.State {
	for i := range x {
		r.probe[i] = x[i] + h*k[i]
	}
	return r.probe
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	r.resize(len(x))
	half := dt * 0.5

	copy(r.k1, dyn.Derive(x, u, t))
	copy(r.k2, dyn.Derive(r.offset(x, r.k1, half), u, t+half))
	copy(r.k3, dyn.Derive(r.offset(x, r.k2, half), u, t+half))
	copy(r.k4, dyn.Derive(r.offset(x, r.k3, dt), u, t+dt))

	next := make(dynamo.State, len(x))
	dt6 := dt / 6.0
	for i := range x {
		next[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return next
}
