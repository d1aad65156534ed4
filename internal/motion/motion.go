package motion

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/barmotion/internal/dynamo"
)

var (
	ErrUnknownCurve = errors.New("motion: unknown curve")
	ErrNotSettled   = errors.New("motion: spring did not settle")
)

// Curve maps a frame (relative to the start of the animation) to a value.
// Frames below zero behave like frame zero.
type Curve interface {
	Progress(frame float64) float64
}

// CurveFunc adapts a plain function to Curve.
type CurveFunc func(frame float64) float64

func (f CurveFunc) Progress(frame float64) float64 { return f(frame) }

type Config struct {
	Kind              string  `yaml:"kind" json:"kind"`
	Mass              float64 `yaml:"mass" json:"mass"`
	Damping           float64 `yaml:"damping" json:"damping"`
	Stiffness         float64 `yaml:"stiffness" json:"stiffness"`
	OvershootClamping bool    `yaml:"overshoot_clamping" json:"overshoot_clamping"`
	From              float64 `yaml:"from" json:"from"`
	To                float64 `yaml:"to" json:"to"`

	// eased curves only
	DurationInFrames int    `yaml:"duration_in_frames,omitempty" json:"duration_in_frames,omitempty"`
	Ease             string `yaml:"ease,omitempty" json:"ease,omitempty"`

	// integrated curves only
	Integrator string `yaml:"integrator,omitempty" json:"integrator,omitempty"`
	Substeps   int    `yaml:"substeps,omitempty" json:"substeps,omitempty"`
}

// DefaultConfig is the growth animation used by the bar chart.
func DefaultConfig() Config {
	return Config{
		Kind:      "spring",
		Mass:      5,
		Damping:   200,
		Stiffness: 100,
		From:      0,
		To:        1,
	}
}

func (c Config) withDefaults() Config {
	if c.Kind == "" {
		c.Kind = "spring"
	}
	if c.Mass == 0 {
		c.Mass = 1
	}
	if c.Damping == 0 {
		c.Damping = 10
	}
	if c.Stiffness == 0 {
		c.Stiffness = 100
	}
	// a zero From/To pair means the unit range
	if c.From == 0 && c.To == 0 {
		c.To = 1
	}
	if c.Substeps <= 0 {
		c.Substeps = 8
	}
	return c
}

func (c Config) Validate() error {
	c = c.withDefaults()
	if c.Mass < 0 || c.Stiffness < 0 {
		return fmt.Errorf("mass and stiffness must be positive: %w", dynamo.ErrParameterBounds)
	}
	if c.Damping < 0 {
		return fmt.Errorf("damping must be positive: %w", dynamo.ErrParameterBounds)
	}
	if c.Kind == "eased" && c.DurationInFrames <= 0 {
		return fmt.Errorf("eased curve needs duration_in_frames > 0: %w", dynamo.ErrParameterBounds)
	}
	return nil
}

// DampingRatio is zeta = c / (2*sqrt(k*m)).
func (c Config) DampingRatio() float64 {
	c = c.withDefaults()
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// output maps a unit-range value into [From, To], clamping overshoot if asked.
func (c Config) output(v float64) float64 {
	if c.OvershootClamping {
		v = math.Min(v, 1)
	}
	if c.From == 0 && c.To == 1 {
		return v
	}
	return c.From + v*(c.To-c.From)
}

var kinds = map[string]func(cfg Config, fps int) (Curve, error){
	"spring":     func(cfg Config, fps int) (Curve, error) { return NewSpring(cfg, fps), nil },
	"integrated": func(cfg Config, fps int) (Curve, error) { return NewIntegratedSpring(cfg, fps) },
	"harmonica":  func(cfg Config, fps int) (Curve, error) { return NewHarmonicaSpring(cfg, fps), nil },
	"eased":      func(cfg Config, fps int) (Curve, error) { return NewEased(cfg) },
}

// New builds the curve named by cfg.Kind.
func New(cfg Config, fps int) (Curve, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive: %w", dynamo.ErrParameterBounds)
	}
	cfg = cfg.withDefaults()
	mk, ok := kinds[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurve, cfg.Kind)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return mk(cfg, fps)
}

func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Sample evaluates c at frames 0..n-1.
func Sample(c Curve, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = c.Progress(float64(i))
	}
	return out
}
