package dynamo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState    = errors.New("dynamo: state is not finite")
	ErrParameterBounds = errors.New("dynamo: parameter out of bounds")
)

// SimulationError records where integration broke down.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d at t=%.4f: %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error { return e.Wrapped }
