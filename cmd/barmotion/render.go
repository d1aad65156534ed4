package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/barmotion/internal/cache"
	"github.com/san-kum/barmotion/internal/composition"
	"github.com/san-kum/barmotion/internal/config"
	"github.com/san-kum/barmotion/internal/export"
	"github.com/san-kum/barmotion/internal/motion"
	"github.com/san-kum/barmotion/internal/render"
	"github.com/san-kum/barmotion/internal/storage"
)

func listCompositions(cmd *cobra.Command, args []string) error {
	reg := composition.Default()
	for _, id := range reg.IDs() {
		c, err := reg.Get(id)
		if err != nil {
			return err
		}
		fmt.Printf("%-14s %4dx%-4d %2d fps %4d frames (%.1fs)\n", c.ID, c.Width, c.Height, c.FPS, c.DurationInFrames, c.Seconds())
	}
	return nil
}

func openCache(ctx context.Context, cfg config.CacheConfig) (cache.FrameCache, func(), error) {
	switch cfg.Kind {
	case "", "none":
		return nil, func() {}, nil
	case "memory":
		return cache.NewMemory(), func() {}, nil
	case "redis":
		r, err := cache.Dial(ctx, cfg.RedisAddr, cache.WithPrefix(cfg.Prefix), cache.WithTTL(cfg.TTL))
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		return r, func() { r.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown cache %q", cfg.Kind)
}

// frameEncoder maps an output format to the per-frame encoder. GIF output
// is assembled from PNG frames.
func frameEncoder(format string) (export.Encoder, error) {
	if format == "gif" {
		return export.NewPNG(), nil
	}
	return export.ByFormat(format)
}

func renderFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fc, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if !renderAll {
		comp, err := resolveComposition(cfg, args)
		if err != nil {
			return err
		}
		return renderComposition(ctx, st, fc, cfg, comp)
	}

	reg := composition.Default()
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range reg.IDs() {
		comp, err := resolveComposition(cfg, []string{id})
		if err != nil {
			return err
		}
		g.Go(func() error {
			return renderComposition(ctx, st, fc, cfg, comp)
		})
	}
	return g.Wait()
}

func renderComposition(ctx context.Context, st *storage.Store, fc cache.FrameCache, cfg *config.Config, comp composition.Composition) error {
	enc, err := frameEncoder(cfg.Format)
	if err != nil {
		return err
	}
	opts := []render.Option{render.WithEncoder(enc)}
	if fc != nil {
		opts = append(opts, render.WithCache(fc))
	}
	host, err := render.NewHost(comp, opts...)
	if err != nil {
		return err
	}

	to := toFrame
	if to < 0 || to > comp.DurationInFrames {
		to = comp.DurationInFrames
	}

	meta := storage.RunMetadata{
		Composition: comp.ID,
		Fingerprint: comp.Fingerprint(),
		Format:      cfg.Format,
		Width:       comp.Width,
		Height:      comp.Height,
		FPS:         comp.FPS,
		From:        fromFrame,
		To:          to,
		Motion:      comp.Chart.Motion.Kind,
	}
	if comp.Chart.Motion.Kind != "eased" {
		settle, err := motion.MeasureSpring(comp.Chart.Motion, comp.FPS, cfg.SettleThreshold)
		if err != nil && !errors.Is(err, motion.ErrNotSettled) {
			return err
		}
		meta.SettleFrame = settle
	}

	isGIF := cfg.Format == "gif"
	run, err := st.Begin(meta, keepFrames && !isGIF)
	if err != nil {
		return err
	}
	// no-op once Finish has run
	defer run.Abort()

	var anim *export.GIF
	sink := render.Sink(run)
	if isGIF {
		anim = export.NewGIF(comp.FPS)
		sink = render.SinkFunc(func(ctx context.Context, f render.Frame) error {
			if err := anim.AddPNG(f.Data); err != nil {
				return err
			}
			return run.WriteFrame(ctx, f)
		})
	}

	stats, err := host.Run(ctx, fromFrame, to, sink)
	if err != nil {
		return err
	}

	if anim != nil {
		var buf bytes.Buffer
		if err := anim.Encode(&buf); err != nil {
			return err
		}
		if err := run.WriteFile(comp.ID+".gif", buf.Bytes()); err != nil {
			return err
		}
	}

	if err := run.Finish(stats); err != nil {
		return err
	}

	slog.Info("render stored",
		slog.String("run", run.ID()),
		slog.String("dir", run.Dir()),
		slog.Int("rendered", stats.Rendered),
		slog.Int("cache_hits", stats.CacheHits))
	fmt.Printf("run id: %s\n", run.ID())
	fmt.Printf("frames: %d rendered, %d cached in %v\n", stats.Rendered, stats.CacheHits, stats.Elapsed)
	return nil
}

func renderStill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	comp, err := resolveComposition(cfg, args)
	if err != nil {
		return err
	}
	enc, err := export.ByFormat(cfg.Format)
	if err != nil {
		return err
	}
	host, err := render.NewHost(comp, render.WithEncoder(enc))
	if err != nil {
		return err
	}

	f, err := host.Frame(cmd.Context(), frameNum)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outFile != "" {
		file, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	_, err = w.Write(f.Data)
	return err
}
