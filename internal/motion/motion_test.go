package motion

import (
	"errors"
	"math"
	"testing"
)

func TestSpringStartsAtZero(t *testing.T) {
	s := NewSpring(DefaultConfig(), 30)
	for _, f := range []float64{-10, -0.5, 0} {
		if got := s.Progress(f); got != 0 {
			t.Errorf("Progress(%v) = %v, want 0", f, got)
		}
	}
}

func TestSpringCriticalClosedForm(t *testing.T) {
	// zeta > 1 follows the critically damped solution 1 - e^(-w t)(1 + w t)
	s := NewSpring(DefaultConfig(), 30)
	omega := math.Sqrt(100.0 / 5.0)
	for _, f := range []float64{1, 5, 12, 30, 59} {
		tt := f / 30
		want := 1 - math.Exp(-omega*tt)*(1+omega*tt)
		if got := s.Progress(f); math.Abs(got-want) > 1e-9 {
			t.Errorf("Progress(%v) = %.12f, want %.12f", f, got, want)
		}
	}
}

func TestSpringMonotoneAndBounded(t *testing.T) {
	s := NewSpring(DefaultConfig(), 30)
	prev := 0.0
	for f := 0; f < 120; f++ {
		p := s.Progress(float64(f))
		if p < prev {
			t.Fatalf("progress decreased at frame %d: %v < %v", f, p, prev)
		}
		if p > 1 {
			t.Fatalf("over-damped spring overshot at frame %d: %v", f, p)
		}
		prev = p
	}
	if prev < 0.999 {
		t.Errorf("spring should be near 1 after 120 frames, got %v", prev)
	}
}

func TestSpringOvershootClamping(t *testing.T) {
	cfg := Config{Mass: 1, Damping: 5, Stiffness: 100}
	free := NewSpring(cfg, 30)
	cfg.OvershootClamping = true
	clamped := NewSpring(cfg, 30)

	overshot := false
	for f := 0; f < 60; f++ {
		if free.Progress(float64(f)) > 1 {
			overshot = true
		}
		if got := clamped.Progress(float64(f)); got > 1 {
			t.Fatalf("clamped spring exceeded 1 at frame %d: %v", f, got)
		}
	}
	if !overshot {
		t.Error("under-damped spring should overshoot without clamping")
	}
}

func TestSpringFromTo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.From, cfg.To = 10, 20
	s := NewSpring(cfg, 30)
	unit := NewSpring(DefaultConfig(), 30)

	if got := s.Progress(0); got != 10 {
		t.Errorf("Progress(0) = %v, want 10", got)
	}
	want := 10 + 10*unit.Progress(15)
	if got := s.Progress(15); math.Abs(got-want) > 1e-12 {
		t.Errorf("Progress(15) = %v, want %v", got, want)
	}
}

func TestSpringFractionalFrame(t *testing.T) {
	s := NewSpring(DefaultConfig(), 30)
	a, mid, b := s.Progress(10), s.Progress(10.5), s.Progress(11)
	if !(a < mid && mid < b) {
		t.Errorf("fractional frame out of order: %v %v %v", a, mid, b)
	}
}

func TestMeasureSpring(t *testing.T) {
	frames, err := MeasureSpring(DefaultConfig(), 30, 0.005)
	if err != nil {
		t.Fatal(err)
	}
	if frames < 40 || frames > 60 {
		t.Errorf("default spring settles at frame %d, want 40..60", frames)
	}

	s := NewSpring(DefaultConfig(), 30)
	if d := math.Abs(1 - s.Progress(float64(frames))); d >= 0.005 {
		t.Errorf("not settled at measured frame %d: diff %v", frames, d)
	}
	if d := math.Abs(1 - s.Progress(float64(frames-1))); d < 0.005 {
		t.Errorf("already settled one frame earlier than %d", frames)
	}
}

func TestMeasureSpringErrors(t *testing.T) {
	if _, err := MeasureSpring(DefaultConfig(), 30, 0); err == nil {
		t.Error("expected error for zero threshold")
	}
	slow := Config{Mass: 1, Damping: 1e-6, Stiffness: 100}
	if _, err := MeasureSpring(slow, 30, 0.005); !errors.Is(err, ErrNotSettled) {
		t.Errorf("expected ErrNotSettled, got %v", err)
	}
}

func TestCurvesAgree(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"under-damped", Config{Mass: 1, Damping: 10, Stiffness: 100}},
		{"critical", Config{Mass: 1, Damping: 20, Stiffness: 100}},
		{"heavy under-damped", Config{Mass: 5, Damping: 12, Stiffness: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewSpring(tt.cfg, 30)
			num, err := NewIntegratedSpring(tt.cfg, 30)
			if err != nil {
				t.Fatal(err)
			}
			harm := NewHarmonicaSpring(tt.cfg, 30)

			for f := 0; f <= 60; f += 3 {
				want := ref.Progress(float64(f))
				if got := num.Progress(float64(f)); math.Abs(got-want) > 1e-4 {
					t.Errorf("integrated frame %d: %v, want %v", f, got, want)
				}
				if got := harm.Progress(float64(f)); math.Abs(got-want) > 1e-6 {
					t.Errorf("harmonica frame %d: %v, want %v", f, got, want)
				}
			}
		})
	}
}

func TestEased(t *testing.T) {
	e, err := NewEased(Config{Ease: "linear", DurationInFrames: 20})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		frame, want float64
	}{
		{-5, 0},
		{0, 0},
		{5, 0.25},
		{10, 0.5},
		{20, 1},
		{40, 1},
	}
	for _, tt := range tests {
		if got := e.Progress(tt.frame); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Progress(%v) = %v, want %v", tt.frame, got, tt.want)
		}
	}

	for _, name := range Easings() {
		c, err := NewEased(Config{Ease: name, DurationInFrames: 10})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := c.Progress(10); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s should end at 1, got %v", name, got)
		}
	}
}

func TestNew(t *testing.T) {
	for _, kind := range Kinds() {
		cfg := DefaultConfig()
		cfg.Kind = kind
		cfg.DurationInFrames = 30
		c, err := New(cfg, 30)
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		if got := c.Progress(0); math.Abs(got) > 1e-12 {
			t.Errorf("%s: Progress(0) = %v, want 0", kind, got)
		}
	}

	if _, err := New(Config{Kind: "bezier"}, 30); !errors.Is(err, ErrUnknownCurve) {
		t.Errorf("expected ErrUnknownCurve, got %v", err)
	}
	if _, err := New(Config{Kind: "eased", Ease: "wobble", DurationInFrames: 5}, 30); !errors.Is(err, ErrUnknownCurve) {
		t.Errorf("expected ErrUnknownCurve for unknown ease, got %v", err)
	}
	if _, err := New(DefaultConfig(), 0); err == nil {
		t.Error("expected error for zero fps")
	}
	if _, err := New(Config{Kind: "eased"}, 30); err == nil {
		t.Error("expected error for eased curve without duration")
	}
}

func TestSample(t *testing.T) {
	got := Sample(CurveFunc(func(f float64) float64 { return f * 2 }), 4)
	want := []float64{0, 2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
