package physics

import (
	"math"
	"testing"

	"github.com/san-kum/barmotion/internal/dynamo"
)

func TestSpringDamperDerive_Equilibrium(t *testing.T) {
	s := NewSpringDamper(DefaultMass, DefaultStiffness, DefaultDamping)
	dx := s.Derive(dynamo.State{1.0, 0.0}, nil, 0.0)

	if dx[0] != 0 {
		t.Errorf("velocity at rest should be 0, got %f", dx[0])
	}
	if dx[1] != 0 {
		t.Errorf("acceleration at target should be 0, got %f", dx[1])
	}
}

func TestSpringDamperDerive_Displaced(t *testing.T) {
	s := NewSpringDamper(5, 100, 200)
	dx := s.Derive(dynamo.State{0.0, 0.0}, nil, 0.0)

	expectedAcc := 100.0 * 1.0 / 5.0
	if math.Abs(dx[1]-expectedAcc) > 1e-12 {
		t.Errorf("expected acceleration %f, got %f", expectedAcc, dx[1])
	}

	forced := s.Derive(dynamo.State{0.0, 0.0}, dynamo.Control{-100}, 0.0)
	if math.Abs(forced[1]) > 1e-12 {
		t.Errorf("external force should cancel the spring, got %f", forced[1])
	}
}

func TestSpringDamperRatio(t *testing.T) {
	tests := []struct {
		mass, stiffness, damping float64
		zeta                     float64
	}{
		{1, 100, 20, 1},
		{1, 100, 10, 0.5},
		{5, 100, 200, 200 / (2 * math.Sqrt(500))},
	}
	for _, tt := range tests {
		s := NewSpringDamper(tt.mass, tt.stiffness, tt.damping)
		if got := s.DampingRatio(); math.Abs(got-tt.zeta) > 1e-12 {
			t.Errorf("DampingRatio(%v) = %v, want %v", tt, got, tt.zeta)
		}
	}

	if got := NewSpringDamper(4, 100, 0).NaturalFrequency(); got != 5 {
		t.Errorf("expected omega 5, got %v", got)
	}
}

func TestSpringDamperEnergy(t *testing.T) {
	s := NewSpringDamper(2, 8, 0)

	pe := s.Energy(dynamo.State{0, 0})
	if pe != 4 {
		t.Errorf("expected potential energy 4, got %f", pe)
	}

	ke := s.Energy(dynamo.State{1, 2})
	if ke != 4 {
		t.Errorf("expected kinetic energy 4, got %f", ke)
	}
}
