package composition

import (
	"errors"
	"reflect"
	"testing"

	"github.com/san-kum/barmotion/internal/dataset"
)

func TestD3Demo(t *testing.T) {
	c, err := Default().Get("D3Demo")
	if err != nil {
		t.Fatal(err)
	}
	if c.DurationInFrames != 60 || c.FPS != 30 || c.Width != 1280 || c.Height != 720 {
		t.Errorf("unexpected D3Demo: %+v", c)
	}
	if c.Seconds() != 2 {
		t.Errorf("Seconds() = %v, want 2", c.Seconds())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("D3Demo invalid: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := Default()
	if got, want := r.IDs(), []string{"D3Demo", "D3DemoSquare"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if _, err := r.Get("Nope"); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	a, b := D3Demo(), D3Demo()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal compositions should share a fingerprint")
	}
	if a.Fingerprint() == D3DemoSquare().Fingerprint() {
		t.Error("different sizes should not share a fingerprint")
	}

	c := D3Demo()
	c.Chart.BarColor = "#ff0000"
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("chart config should change the fingerprint")
	}

	d := D3Demo()
	d.Data = dataset.New(dataset.LetterFrequency[:5])
	if a.Fingerprint() == d.Fingerprint() {
		t.Error("data should change the fingerprint")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Composition)
	}{
		{"fps", func(c *Composition) { c.FPS = 0 }},
		{"duration", func(c *Composition) { c.DurationInFrames = -1 }},
		{"size", func(c *Composition) { c.Width = 0 }},
		{"data", func(c *Composition) { c.Data = nil }},
		{"chart", func(c *Composition) { c.Chart.TickSpacing = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := D3Demo()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
