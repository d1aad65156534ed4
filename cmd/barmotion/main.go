package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/barmotion/internal/composition"
	"github.com/san-kum/barmotion/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string

	format     string
	fromFrame  int
	toFrame    int
	fps        int
	width      int
	height     int
	cacheKind  string
	redisAddr  string
	keepFrames bool
	renderAll  bool

	frameNum int
	outFile  string

	threshold float64
	svgOut    string
	curveLen  int

	broker string
	topic  string
	loop   bool

	theme   string
	gifPath string

	asJSON bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "barmotion",
		Short:         "spring-animated bar chart renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text|json)")

	compositionsCmd := &cobra.Command{
		Use:   "compositions",
		Short: "list registered compositions",
		RunE:  listCompositions,
	}

	renderCmd := &cobra.Command{
		Use:   "render [id]",
		Short: "render frames into the data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrames,
	}
	addVideoFlags(renderCmd)
	renderCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format (svg|png|gif)")
	renderCmd.Flags().IntVar(&fromFrame, "from", 0, "first frame")
	renderCmd.Flags().IntVar(&toFrame, "to", -1, "frame to stop before (-1 for the whole composition)")
	renderCmd.Flags().StringVar(&cacheKind, "cache", "none", "frame cache (none|memory|redis)")
	renderCmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address")
	renderCmd.Flags().BoolVar(&keepFrames, "keep-frames", true, "write every encoded frame")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "render every registered composition")

	stillCmd := &cobra.Command{
		Use:   "still [id]",
		Short: "render a single frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderStill,
	}
	addVideoFlags(stillCmd)
	stillCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format (svg|png)")
	stillCmd.Flags().IntVar(&frameNum, "frame", 0, "frame number")
	stillCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	springCmd := &cobra.Command{
		Use:   "spring [id]",
		Short: "plot the animation curve and measure when it settles",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSpring,
	}
	springCmd.Flags().IntVar(&fps, "fps", 0, "frame rate (0 keeps the composition's)")
	springCmd.Flags().Float64Var(&threshold, "threshold", config.DefaultSettleThreshold, "settle threshold")
	springCmd.Flags().IntVar(&curveLen, "frames", 0, "frames to sample (0 samples until settled)")
	springCmd.Flags().StringVar(&svgOut, "svg", "", "also write the curve as svg")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored renders",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show render metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "export metadata and progress as json")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the progress of a stored render",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	streamCmd := &cobra.Command{
		Use:   "stream [id]",
		Short: "publish frames over mqtt",
		Args:  cobra.MaximumNArgs(1),
		RunE:  streamFrames,
	}
	addVideoFlags(streamCmd)
	streamCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "frame format (svg|png)")
	streamCmd.Flags().StringVar(&broker, "broker", "tcp://localhost:1883", "mqtt broker url")
	streamCmd.Flags().StringVar(&topic, "topic", config.DefaultTopic, "mqtt topic")
	streamCmd.Flags().BoolVar(&loop, "loop", false, "restart after the last frame")

	previewCmd := &cobra.Command{
		Use:   "preview [id]",
		Short: "play a composition in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	addVideoFlags(previewCmd)
	previewCmd.Flags().StringVar(&theme, "theme", "classic", "color theme")
	previewCmd.Flags().StringVar(&gifPath, "gif", "", "where recordings are saved (default <id>.gif)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(compositionsCmd, renderCmd, stillCmd, springCmd, listCmd, showCmd, plotCmd, streamCmd, previewCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addVideoFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fps, "fps", 0, "frame rate (0 keeps the composition's)")
	cmd.Flags().IntVar(&width, "width", 0, "width in pixels (0 keeps the composition's)")
	cmd.Flags().IntVar(&height, "height", 0, "height in pixels (0 keeps the composition's)")
}

func setupLogging(level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "text":
		h = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("cache") {
		cfg.Cache.Kind = cacheKind
	}
	if flags.Changed("redis-addr") {
		cfg.Cache.RedisAddr = redisAddr
	}
	if flags.Changed("threshold") {
		cfg.SettleThreshold = threshold
	}
	if flags.Changed("broker") {
		cfg.Stream.Broker = broker
	}
	if flags.Changed("topic") {
		cfg.Stream.Topic = topic
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveComposition looks up the id from args or the config and applies
// the config on top of it.
func resolveComposition(cfg *config.Config, args []string) (composition.Composition, error) {
	id := cfg.Composition
	if len(args) > 0 {
		id = args[0]
	}
	comp, err := composition.Default().Get(id)
	if err != nil {
		return comp, fmt.Errorf("%w (available: %v)", err, composition.Default().IDs())
	}
	comp = cfg.Apply(comp)
	if err := comp.Validate(); err != nil {
		return comp, err
	}
	return comp, nil
}
