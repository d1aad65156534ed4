package dynamo

import (
	"errors"
	"math"
	"testing"
)

type decay struct{ rate float64 }

func (d *decay) Derive(x State, u Control, t float64) State { return State{-d.rate * x[0]} }
func (d *decay) StateDim() int                                { return 1 }

type countingEuler struct{ steps int }

func (e *countingEuler) Step(dyn System, x State, u Control, t, dt float64) State {
	e.steps++
	dx := dyn.Derive(x, u, t)
	return State{x[0] + dt*dx[0]}
}

func TestTrajectoryAt(t *testing.T) {
	integ := &countingEuler{}
	tr, err := NewTrajectory(&decay{rate: 1}, integ, State{1}, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	x, err := tr.At(1)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Pow(0.9, 10); math.Abs(x[0]-want) > 1e-12 {
		t.Errorf("x(1) = %v, want %v", x[0], want)
	}
	if math.Abs(tr.Time()-1) > 1e-12 {
		t.Errorf("time = %v, want 1", tr.Time())
	}

	if _, err := tr.At(1.5); err != nil {
		t.Fatal(err)
	}
	if integ.steps != 15 {
		t.Errorf("advancing should continue from the last sample, took %d steps", integ.steps)
	}

	x, err = tr.At(0.2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x[0]-0.81) > 1e-12 {
		t.Errorf("x(0.2) after rewind = %v, want 0.81", x[0])
	}
}

func TestTrajectoryNegativeTime(t *testing.T) {
	tr, err := NewTrajectory(&decay{rate: 1}, &countingEuler{}, State{2}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	x, err := tr.At(-3)
	if err != nil || x[0] != 2 {
		t.Errorf("At(-3) = %v, %v", x, err)
	}
}

func TestTrajectoryBounds(t *testing.T) {
	tests := []struct {
		name string
		x0   State
		dt   float64
	}{
		{"zero dt", State{1}, 0},
		{"negative dt", State{1}, -1},
		{"nan dt", State{1}, math.NaN()},
		{"wrong dimension", State{1, 2}, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTrajectory(&decay{}, &countingEuler{}, tt.x0, tt.dt); !errors.Is(err, ErrParameterBounds) {
				t.Errorf("err = %v, want ErrParameterBounds", err)
			}
		})
	}
}

func TestTrajectoryInvalidState(t *testing.T) {
	tr, err := NewTrajectory(&decay{rate: math.Inf(1)}, &countingEuler{}, State{1}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	_, err = tr.At(1)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	var simErr *SimulationError
	if !errors.As(err, &simErr) || simErr.Step != 0 {
		t.Errorf("expected SimulationError at step 0, got %v", err)
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{3, 4}
	c := s.Clone()
	c[0] = 0
	if s[0] != 3 {
		t.Error("Clone shares storage")
	}
	if !s.IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{math.NaN()}).IsValid() || (State{math.Inf(-1)}).IsValid() {
		t.Error("non-finite state reported valid")
	}
}
