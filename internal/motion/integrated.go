package motion

import (
	"log/slog"

	"github.com/san-kum/barmotion/internal/dynamo"
	"github.com/san-kum/barmotion/internal/integrators"
	"github.com/san-kum/barmotion/internal/physics"
)

// IntegratedSpring solves the same spring numerically. It is the exact
// damped oscillator, so it diverges from Spring when zeta > 1.
type IntegratedSpring struct {
	cfg Config
	fps float64
	tr  *dynamo.Trajectory
}

func NewIntegratedSpring(cfg Config, fps int) (*IntegratedSpring, error) {
	cfg = cfg.withDefaults()
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	sys := physics.NewSpringDamper(cfg.Mass, cfg.Stiffness, cfg.Damping)
	tr, err := dynamo.NewTrajectory(sys, integ, dynamo.State{0, 0}, 1/(float64(fps)*float64(cfg.Substeps)))
	if err != nil {
		return nil, err
	}
	return &IntegratedSpring{cfg: cfg, fps: float64(fps), tr: tr}, nil
}

// Progress is not safe for concurrent use; the trajectory is shared.
func (s *IntegratedSpring) Progress(frame float64) float64 {
	x, err := s.tr.At(frame / s.fps)
	if err != nil {
		slog.Default().Warn("integrated spring diverged", slog.String("module", "motion"), slog.Any("error", err))
		return s.cfg.output(0)
	}
	return s.cfg.output(x[0])
}
