// Package composition declares the named videos this module can render.
package composition

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/san-kum/barmotion/internal/chart"
	"github.com/san-kum/barmotion/internal/dataset"
)

var ErrUnknown = errors.New("composition: unknown id")

type Composition struct {
	ID               string
	DurationInFrames int
	FPS              int
	Width            int
	Height           int
	Chart            chart.Config
	Data             *dataset.Dataset
}

func (c Composition) Video() chart.VideoConfig {
	return chart.VideoConfig{Width: float64(c.Width), Height: float64(c.Height), FPS: c.FPS}
}

// Seconds is the playing time of the composition.
func (c Composition) Seconds() float64 {
	return float64(c.DurationInFrames) / float64(c.FPS)
}

func (c Composition) Validate() error {
	if c.ID == "" {
		return errors.New("composition: empty id")
	}
	if c.DurationInFrames <= 0 {
		return fmt.Errorf("composition %s: duration must be positive", c.ID)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("composition %s: fps must be positive", c.ID)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("composition %s: size must be positive", c.ID)
	}
	if c.Data == nil {
		return fmt.Errorf("composition %s: no data", c.ID)
	}
	return c.Chart.Validate()
}

// Fingerprint identifies everything that affects the rendered pixels.
// Frames cached under one fingerprint are reusable by an equal composition.
func (c Composition) Fingerprint() string {
	payload, _ := json.Marshal(struct {
		ID       string
		Duration int
		FPS      int
		W, H     int
		Chart    chart.Config
		Data     []dataset.DataPoint
	}{c.ID, c.DurationInFrames, c.FPS, c.Width, c.Height, c.Chart, c.Data.Points()})
	return strconv.FormatUint(xxhash.Sum64(payload), 16)
}

func D3Demo() Composition {
	return Composition{
		ID:               "D3Demo",
		DurationInFrames: 60,
		FPS:              30,
		Width:            1280,
		Height:           720,
		Chart:            chart.DefaultConfig(),
		Data:             dataset.Letters(),
	}
}

func D3DemoSquare() Composition {
	c := D3Demo()
	c.ID = "D3DemoSquare"
	c.Width = 1080
	c.Height = 1080
	return c
}

// Registry maps ids to composition factories.
type Registry struct {
	entries map[string]func() Composition
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]func() Composition)}
}

// Default holds the built-in compositions.
func Default() *Registry {
	r := NewRegistry()
	r.Register("D3Demo", D3Demo)
	r.Register("D3DemoSquare", D3DemoSquare)
	return r
}

func (r *Registry) Register(id string, mk func() Composition) {
	r.entries[id] = mk
}

func (r *Registry) Get(id string) (Composition, error) {
	mk, ok := r.entries[id]
	if !ok {
		return Composition{}, fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	return mk(), nil
}

func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
