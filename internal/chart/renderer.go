package chart

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/barmotion/internal/dataset"
	"github.com/san-kum/barmotion/internal/motion"
	"github.com/san-kum/barmotion/internal/scene"
)

type VideoConfig struct {
	Width  float64
	Height float64
	FPS    int
}

// Bar is the animated state of one row in a rendered frame.
type Bar struct {
	Category string
	Width    float64
	LabelX   float64
	// Outside is set when the label sits past the end of a short bar.
	Outside bool
}

type Result struct {
	Frame    int
	Progress float64
	// Skipped is set when the surface was not attached.
	Skipped bool
	Bars    scene.Join
	Labels  scene.Join
	State   []Bar
}

// Renderer redraws the dynamic part of the chart once per frame.
type Renderer struct {
	cfg     Config
	builder *Builder
	curves  map[int]motion.Curve
	labelOn string
	log     *slog.Logger
}

func NewRenderer(cfg Config, data *dataset.Dataset) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		cfg:     cfg,
		builder: NewBuilder(cfg, data),
		curves:  make(map[int]motion.Curve),
		labelOn: invert(cfg.LabelColor),
		log:     slog.Default().With(slog.String("module", "chart")),
	}, nil
}

func (r *Renderer) Config() Config { return r.cfg }

func (r *Renderer) Builder() *Builder { return r.builder }

// SetData swaps the dataset. Rows that are no longer present are removed
// on the next render.
func (r *Renderer) SetData(data *dataset.Dataset) {
	r.builder = NewBuilder(r.cfg, data)
}

func (r *Renderer) curve(fps int) (motion.Curve, error) {
	if c, ok := r.curves[fps]; ok {
		return c, nil
	}
	c, err := motion.New(r.cfg.Motion, fps)
	if err != nil {
		return nil, fmt.Errorf("motion curve: %w", err)
	}
	r.curves[fps] = c
	return c, nil
}

// Progress is the animation factor at frame.
func (r *Renderer) Progress(frame int, fps int) (float64, error) {
	c, err := r.curve(fps)
	if err != nil {
		return 0, err
	}
	return c.Progress(float64(frame) - r.cfg.Delay), nil
}

// Projection is the animated chart at one frame, without touching a surface.
type Projection struct {
	Progress float64
	Layout   Layout
	// Bars follows Layout.Rows.
	Bars []Bar
}

func (r *Renderer) Project(frame int, vc VideoConfig) (Projection, error) {
	progress, err := r.Progress(frame, vc.FPS)
	if err != nil {
		return Projection{}, err
	}

	l := r.builder.Layout(vc.Width, vc.Height)
	x0 := l.X.Scale(0)
	bars := make([]Bar, len(l.Rows))
	for i, row := range l.Rows {
		end := l.X.Scale(row.Value * progress)
		bars[i] = Bar{
			Category: row.Category,
			Width:    max(0, end-x0),
			LabelX:   end,
			Outside:  row.FullWidth < r.cfg.LabelThreshold,
		}
	}
	return Projection{Progress: progress, Layout: l, Bars: bars}, nil
}

// Render draws frame onto s. An unattached surface is left untouched and
// reported as skipped.
func (r *Renderer) Render(s *scene.Surface, frame int, vc VideoConfig) (Result, error) {
	res := Result{Frame: frame}
	if !s.Attached() {
		res.Skipped = true
		return res, nil
	}

	p, err := r.Project(frame, vc)
	if err != nil {
		return res, err
	}
	res.Progress = p.Progress
	res.State = p.Bars

	l := p.Layout
	bars, labels := r.builder.EnsureStatic(s.Root(), l)

	keys := make([]string, len(l.Rows))
	rows := make(map[string]Row, len(l.Rows))
	state := make(map[string]Bar, len(l.Rows))
	for i, row := range l.Rows {
		keys[i] = row.Category
		rows[row.Category] = row
		state[row.Category] = p.Bars[i]
	}

	x0 := l.X.Scale(0)
	bw := l.Y.Bandwidth()

	res.Bars = scene.Reconcile(bars, keys,
		func(key string) *scene.Node { return scene.NewRect(key).WithClass("bar") },
		func(n *scene.Node, key string) {
			n.X = x0
			n.Y = rows[key].Y
			n.Width = state[key].Width
			n.Height = bw
		})

	res.Labels = scene.Reconcile(labels, keys,
		func(key string) *scene.Node { return scene.NewText(key, "").WithClass("label") },
		func(n *scene.Node, key string) {
			b := state[key]
			n.Text = rows[key].Label
			n.X = b.LabelX
			n.Y = rows[key].Y + bw/2
			n.DyEm = 0.35
			if b.Outside {
				n.Dx = 4
				n.Set("text-anchor", "start")
				n.Set("fill", r.labelOn)
			} else {
				n.Dx = -4
				n.Unset("text-anchor")
				n.Unset("fill")
			}
		})

	if res.Bars.Enter > 0 || res.Bars.Exit > 0 {
		r.log.Debug("bars reconciled",
			slog.Int("frame", frame),
			slog.Int("enter", res.Bars.Enter),
			slog.Int("exit", res.Bars.Exit))
	}
	return res, nil
}
