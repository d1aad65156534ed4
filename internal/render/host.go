// Package render drives a composition frame by frame: it renders the chart
// onto a retained surface, encodes it and hands the bytes to a sink.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/barmotion/internal/cache"
	"github.com/san-kum/barmotion/internal/chart"
	"github.com/san-kum/barmotion/internal/composition"
	"github.com/san-kum/barmotion/internal/export"
	"github.com/san-kum/barmotion/internal/scene"
)

var ErrFrameOutOfRange = errors.New("render: frame out of range")

type Frame struct {
	Number   int
	Format   string
	Data     []byte
	Progress float64
	Cached   bool
	Skipped  bool
	Bars     []chart.Bar
}

type Sink interface {
	WriteFrame(ctx context.Context, f Frame) error
}

type SinkFunc func(ctx context.Context, f Frame) error

func (fn SinkFunc) WriteFrame(ctx context.Context, f Frame) error { return fn(ctx, f) }

// Stats summarizes a Run.
type Stats struct {
	Rendered  int
	CacheHits int
	Skipped   int
	Progress  []float64
	Elapsed   time.Duration
}

// Host owns one surface and renders into it from a single goroutine.
type Host struct {
	comp        composition.Composition
	renderer    *chart.Renderer
	surface     *scene.Surface
	enc         export.Encoder
	cache       cache.FrameCache
	fingerprint string
	log         *slog.Logger
}

type Option func(*Host)

func WithEncoder(enc export.Encoder) Option {
	return func(h *Host) { h.enc = enc }
}

func WithCache(c cache.FrameCache) Option {
	return func(h *Host) { h.cache = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.log = l }
}

func NewHost(comp composition.Composition, opts ...Option) (*Host, error) {
	if err := comp.Validate(); err != nil {
		return nil, err
	}
	r, err := chart.NewRenderer(comp.Chart, comp.Data)
	if err != nil {
		return nil, err
	}

	h := &Host{
		comp:        comp,
		renderer:    r,
		surface:     scene.NewSurface(),
		enc:         export.NewSVG(),
		fingerprint: comp.Fingerprint(),
		log:         slog.Default().With(slog.String("module", "render")),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.surface.Attach(float64(comp.Width), float64(comp.Height))
	return h, nil
}

func (h *Host) Composition() composition.Composition { return h.comp }

func (h *Host) Surface() *scene.Surface { return h.surface }

func (h *Host) Renderer() *chart.Renderer { return h.renderer }

// Frame renders and encodes frame n, or returns it from the cache.
func (h *Host) Frame(ctx context.Context, n int) (Frame, error) {
	if n < 0 || n >= h.comp.DurationInFrames {
		return Frame{}, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, n, h.comp.DurationInFrames)
	}
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	f := Frame{Number: n, Format: h.enc.Ext()}
	key := cache.Key(h.fingerprint, n, f.Format)

	if h.cache != nil {
		data, ok, err := h.cache.Get(ctx, key)
		if err != nil {
			h.log.Warn("cache get failed", slog.String("key", key), slog.Any("error", err))
		}
		if ok {
			p, err := h.renderer.Project(n, h.comp.Video())
			if err != nil {
				return f, err
			}
			f.Data, f.Cached = data, true
			f.Progress, f.Bars = p.Progress, p.Bars
			return f, nil
		}
	}

	res, err := h.renderer.Render(h.surface, n, h.comp.Video())
	if err != nil {
		return f, fmt.Errorf("render frame %d: %w", n, err)
	}
	if res.Skipped {
		f.Skipped = true
		return f, nil
	}
	f.Progress, f.Bars = res.Progress, res.State

	var buf bytes.Buffer
	if err := h.enc.Encode(&buf, h.surface); err != nil {
		return f, fmt.Errorf("encode frame %d: %w", n, err)
	}
	f.Data = buf.Bytes()

	if h.cache != nil {
		if err := h.cache.Put(ctx, key, f.Data); err != nil {
			h.log.Warn("cache put failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return f, nil
}

// Run renders frames [from, to) in increasing order and passes each one to
// sink. It stops at the first error or when ctx is done.
func (h *Host) Run(ctx context.Context, from, to int, sink Sink) (st Stats, err error) {
	if from < 0 || to > h.comp.DurationInFrames || from > to {
		return st, fmt.Errorf("%w: [%d, %d) not within [0, %d)", ErrFrameOutOfRange, from, to, h.comp.DurationInFrames)
	}

	start := time.Now()
	defer func() { st.Elapsed = time.Since(start) }()

	h.log.Info("run started",
		slog.String("composition", h.comp.ID),
		slog.Int("from", from),
		slog.Int("to", to),
		slog.String("format", h.enc.Ext()))

	for n := from; n < to; n++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		f, err := h.Frame(ctx, n)
		if err != nil {
			return st, err
		}
		switch {
		case f.Skipped:
			st.Skipped++
		case f.Cached:
			st.CacheHits++
		default:
			st.Rendered++
		}
		st.Progress = append(st.Progress, f.Progress)

		if sink != nil && !f.Skipped {
			if err := sink.WriteFrame(ctx, f); err != nil {
				return st, fmt.Errorf("sink frame %d: %w", n, err)
			}
		}
	}

	h.log.Info("run finished",
		slog.String("composition", h.comp.ID),
		slog.Int("rendered", st.Rendered),
		slog.Int("cache_hits", st.CacheHits),
		slog.Duration("elapsed", time.Since(start)))
	return st, nil
}
