package physics

import (
	"math"

	"github.com/san-kum/barmotion/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 100.0
	DefaultDamping   = 10.0
)

// SpringDamper is a mass on a damped spring pulled towards Target.
// State is [position, velocity]; an optional control is an external force.
type SpringDamper struct {
	Mass      float64
	Stiffness float64
	Damping   float64
	Target    float64
}

func NewSpringDamper(mass, stiffness, damping float64) *SpringDamper {
	return &SpringDamper{
		Mass:      mass,
		Stiffness: stiffness,
		Damping:   damping,
		Target:    1,
	}
}

func (s *SpringDamper) StateDim() int { return 2 }

func (s *SpringDamper) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	pos, vel := x[0], x[1]

	force := -s.Stiffness*(pos-s.Target) - s.Damping*vel
	if len(u) > 0 {
		force += u[0]
	}
	return dynamo.State{vel, force / s.Mass}
}

// Energy is kinetic energy plus the energy stored in the spring.
func (s *SpringDamper) Energy(x dynamo.State) float64 {
	stretch := x[0] - s.Target
	return 0.5*s.Mass*x[1]*x[1] + 0.5*s.Stiffness*stretch*stretch
}

// NaturalFrequency is the undamped angular frequency sqrt(k/m).
func (s *SpringDamper) NaturalFrequency() float64 {
	return math.Sqrt(s.Stiffness / s.Mass)
}

// DampingRatio is c / (2*sqrt(k*m)); below 1 the spring overshoots.
func (s *SpringDamper) DampingRatio() float64 {
	return s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
}
