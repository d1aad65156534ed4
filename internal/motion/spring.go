package motion

import (
	"fmt"
	"math"
)

// maxDeltaMs caps the time advanced in a single step.
const maxDeltaMs = 64.0

type springState struct {
	lastMs   float64
	current  float64
	velocity float64
}

// advance moves the spring from its last timestamp to nowMs using the
// closed-form solution of the damped oscillator towards 1.
func (s springState) advance(nowMs, mass, damping, stiffness float64) springState {
	dtMs := math.Min(nowMs-s.lastMs, maxDeltaMs)
	t := dtMs / 1000

	v0 := -s.velocity
	x0 := 1 - s.current
	zeta := damping / (2 * math.Sqrt(stiffness*mass))
	omega0 := math.Sqrt(stiffness / mass)

	next := springState{lastMs: nowMs}
	if zeta < 1 {
		omega1 := omega0 * math.Sqrt(1-zeta*zeta)
		sin1, cos1 := math.Sincos(omega1 * t)
		envelope := math.Exp(-zeta * omega0 * t)
		frag := envelope * (sin1*((v0+zeta*omega0*x0)/omega1) + x0*cos1)
		next.current = 1 - frag
		next.velocity = zeta*omega0*frag - envelope*(cos1*(v0+zeta*omega0*x0)-omega1*x0*sin1)
		return next
	}

	envelope := math.Exp(-omega0 * t)
	next.current = 1 - envelope*(x0+(v0+omega0*x0)*t)
	next.velocity = envelope * (v0*(t*omega0-1) + t*x0*omega0*omega0)
	return next
}

// Spring is the frame-stepped physical spring used for the bar growth.
// Over-damped configurations use the critically damped solution.
type Spring struct {
	cfg Config
	fps float64
}

func NewSpring(cfg Config, fps int) *Spring {
	return &Spring{cfg: cfg.withDefaults(), fps: float64(fps)}
}

func (s *Spring) unit(frame float64) float64 {
	frame = math.Max(0, frame)
	whole := math.Floor(frame)
	rest := frame - whole

	var st springState
	for f := 0.0; f <= whole; f++ {
		at := f
		if f == whole {
			at += rest
		}
		st = st.advance(at/s.fps*1000, s.cfg.Mass, s.cfg.Damping, s.cfg.Stiffness)
	}
	return st.current
}

func (s *Spring) Progress(frame float64) float64 {
	return s.cfg.output(s.unit(frame))
}

// MeasureSpring returns the number of frames the spring needs to settle:
// the first frame within threshold of the target, pushed back whenever it
// leaves the threshold again within the following 20 frames.
func MeasureSpring(cfg Config, fps int, threshold float64) (int, error) {
	if threshold <= 0 {
		return 0, fmt.Errorf("threshold must be positive, got %v", threshold)
	}
	if fps <= 0 {
		return 0, fmt.Errorf("fps must be positive, got %d", fps)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	rate := float64(fps)
	budget := 600 * fps

	var st springState
	frame := 0
	step := func() float64 {
		st = st.advance(float64(frame)/rate*1000, cfg.Mass, cfg.Damping, cfg.Stiffness)
		return math.Abs(st.current - 1)
	}

	diff := step()
	for diff >= threshold {
		frame++
		if frame > budget {
			return 0, fmt.Errorf("%w within %d frames", ErrNotSettled, budget)
		}
		diff = step()
	}

	finished := frame
	for held := 0; held < 20; held++ {
		frame++
		if frame > budget {
			return 0, fmt.Errorf("%w within %d frames", ErrNotSettled, budget)
		}
		if step() >= threshold {
			held = 0
			finished = frame + 1
		}
	}
	return finished, nil
}
