package motion

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

var easings = map[string]func(float64) float64{
	"linear":      ease.Linear,
	"in-out-quad": ease.InOutQuad,
	"out-cubic":   ease.OutCubic,
	"in-out-sine": ease.InOutSine,
	"out-back":    ease.OutBack,
	"out-bounce":  ease.OutBounce,
	"out-elastic": ease.OutElastic,
}

func Easings() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Eased runs an easing function over a fixed number of frames and holds
// the final value afterwards.
type Eased struct {
	cfg      Config
	fn       func(float64) float64
	duration float64
}

func NewEased(cfg Config) (*Eased, error) {
	cfg = cfg.withDefaults()
	name := cfg.Ease
	if name == "" {
		name = "out-cubic"
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: ease %s", ErrUnknownCurve, name)
	}
	if cfg.DurationInFrames <= 0 {
		return nil, fmt.Errorf("eased curve needs a positive duration, got %d", cfg.DurationInFrames)
	}
	return &Eased{cfg: cfg, fn: fn, duration: float64(cfg.DurationInFrames)}, nil
}

func (e *Eased) Progress(frame float64) float64 {
	t := frame / e.duration
	switch {
	case t <= 0:
		return e.cfg.output(0)
	case t >= 1:
		return e.cfg.output(1)
	}
	return e.cfg.output(e.fn(t))
}
