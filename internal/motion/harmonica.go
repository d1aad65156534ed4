package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// HarmonicaSpring steps a harmonica spring once per frame.
type HarmonicaSpring struct {
	cfg   Config
	fps   int
	omega float64
	zeta  float64
	frame harmonica.Spring
}

func NewHarmonicaSpring(cfg Config, fps int) *HarmonicaSpring {
	cfg = cfg.withDefaults()
	omega := math.Sqrt(cfg.Stiffness / cfg.Mass)
	zeta := cfg.DampingRatio()
	return &HarmonicaSpring{
		cfg:   cfg,
		fps:   fps,
		omega: omega,
		zeta:  zeta,
		frame: harmonica.NewSpring(harmonica.FPS(fps), omega, zeta),
	}
}

func (h *HarmonicaSpring) Progress(frame float64) float64 {
	frame = math.Max(0, frame)
	whole := math.Floor(frame)

	pos, vel := 0.0, 0.0
	for f := 0.0; f < whole; f++ {
		pos, vel = h.frame.Update(pos, vel, 1)
	}
	if rest := frame - whole; rest > 0 {
		partial := harmonica.NewSpring(rest/float64(h.fps), h.omega, h.zeta)
		pos, _ = partial.Update(pos, vel, 1)
	}
	return h.cfg.output(pos)
}
