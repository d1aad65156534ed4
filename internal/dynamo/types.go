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

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Control is an external input to a system, e.g. a force.
type Control []float64

// System is an ODE dX/dt = f(X, u, t).
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// Trajectory integrates a system forward in fixed steps and remembers where
// it got to, so sampling increasing times costs one pass overall.
type Trajectory struct {
	sys   System
	integ Integrator
	x0    State
	dt    float64

	x    State
	step int
}

func NewTrajectory(sys System, integ Integrator, x0 State, dt float64) (*Trajectory, error) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, ErrParameterBounds
	}
	if len(x0) != sys.StateDim() {
		return nil, ErrParameterBounds
	}
	return &Trajectory{sys: sys, integ: integ, x0: x0.Clone(), dt: dt, x: x0.Clone()}, nil
}

func (tr *Trajectory) Time() float64 { return float64(tr.step) * tr.dt }

// State returns a copy of the current state.
func (tr *Trajectory) State() State { return tr.x.Clone() }

func (tr *Trajectory) Reset() {
	tr.x = tr.x0.Clone()
	tr.step = 0
}

// At returns the state at the step nearest to t. Asking for an earlier time
// than the current one restarts from x0. Negative times yield x0.
func (tr *Trajectory) At(t float64) (State, error) {
	target := int(math.Round(max(t, 0) / tr.dt))
	if target < tr.step {
		tr.Reset()
	}
	for tr.step < target {
		now := tr.Time()
		next := tr.integ.Step(tr.sys, tr.x, nil, now, tr.dt)
		if !next.IsValid() {
			return tr.State(), &SimulationError{Step: tr.step, Time: now, State: next, Wrapped: ErrInvalidState}
		}
		tr.x = next
		tr.step++
	}
	return tr.State(), nil
}
