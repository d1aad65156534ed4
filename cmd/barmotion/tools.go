package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/barmotion/internal/export"
	"github.com/san-kum/barmotion/internal/metrics"
	"github.com/san-kum/barmotion/internal/motion"
	"github.com/san-kum/barmotion/internal/render"
	"github.com/san-kum/barmotion/internal/stream"
	"github.com/san-kum/barmotion/internal/viz"
)

func plotSpring(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	comp, err := resolveComposition(cfg, args)
	if err != nil {
		return err
	}
	mc := comp.Chart.Motion

	curve, err := motion.New(mc, comp.FPS)
	if err != nil {
		return err
	}

	settle := -1
	if mc.Kind != "eased" {
		settle, err = motion.MeasureSpring(mc, comp.FPS, cfg.SettleThreshold)
		switch {
		case errors.Is(err, motion.ErrNotSettled):
			settle = -1
		case err != nil:
			return err
		}
	}

	n := curveLen
	if n <= 0 {
		n = max(settle+20, comp.DurationInFrames)
	}
	values := motion.Sample(curve, n)

	fmt.Printf("motion: %s (mass %g, damping %g, stiffness %g, zeta %.3f)\n",
		kindOrDefault(mc.Kind), mc.Mass, mc.Damping, mc.Stiffness, mc.DampingRatio())
	fmt.Printf("fps: %d, frames sampled: %d\n\n", comp.FPS, n)
	fmt.Println(asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("progress vs frame"),
	))
	fmt.Println()

	if settle >= 0 {
		fmt.Printf("settles after %d frames (%.2fs)\n", settle, float64(settle)/float64(comp.FPS))
	} else if mc.Kind != "eased" {
		fmt.Println("does not settle")
	}

	target := mc.To
	if mc.From == 0 && mc.To == 0 {
		target = 1
	}
	results := metrics.Evaluate(values, metrics.Default(target, cfg.SettleThreshold)...)
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, results[name])
	}

	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.CurveSVG(f, values, 800, 400, comp.Chart.BarColor); err != nil {
			return err
		}
		fmt.Printf("\ncurve written to %s\n", svgOut)
	}
	return nil
}

func kindOrDefault(kind string) string {
	if kind == "" {
		return "spring"
	}
	return kind
}

func streamFrames(cmd *cobra.Command, args []string) error {
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

	sink, err := stream.DialMQTT(cfg.Stream.Broker, cfg.Stream.ClientID, cfg.Stream.Topic, stream.WithQoS(cfg.Stream.QoS))
	if err != nil {
		return err
	}
	defer sink.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := stream.NewStreamer(host, sink, comp.FPS, comp.DurationInFrames, stream.WithLoop(loop))
	fmt.Printf("streaming %s to %s on %s\n", comp.ID, cfg.Stream.Broker, cfg.Stream.Topic)
	sent, err := s.Run(ctx)
	fmt.Printf("published %d frames\n", sent)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	comp, err := resolveComposition(cfg, args)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(comp)
	if err != nil {
		return err
	}
	m = m.WithTheme(theme)
	if gifPath != "" {
		m = m.WithGIFPath(gifPath)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
