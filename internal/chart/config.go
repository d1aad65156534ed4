package chart

import (
	"errors"
	"fmt"

	"github.com/san-kum/barmotion/internal/motion"
)

var ErrInvalidConfig = errors.New("chart: invalid config")

type Margins struct {
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Left   float64 `yaml:"left" json:"left"`
}

// Config is passed by value; a renderer never changes it after construction.
type Config struct {
	Margins    Margins `yaml:"margins" json:"margins"`
	BarColor   string  `yaml:"bar_color" json:"bar_color"`
	LabelColor string  `yaml:"label_color" json:"label_color"`
	FontFamily string  `yaml:"font_family" json:"font_family"`
	FontSize   float64 `yaml:"font_size" json:"font_size"`
	XLabel     string  `yaml:"x_label" json:"x_label"`

	// YPadding is the band padding, inner and outer.
	YPadding float64 `yaml:"y_padding" json:"y_padding"`
	// TickSpacing is the pixel width per requested x-axis tick.
	TickSpacing float64 `yaml:"tick_spacing" json:"tick_spacing"`

	// Delay is the number of frames before the bars start growing.
	Delay float64 `yaml:"delay" json:"delay"`
	// Labels of bars shorter than LabelThreshold pixels are drawn outside.
	LabelThreshold float64 `yaml:"label_threshold" json:"label_threshold"`
	LabelPrecision int     `yaml:"label_precision" json:"label_precision"`

	Motion motion.Config `yaml:"motion" json:"motion"`
}

func DefaultConfig() Config {
	return Config{
		Margins:        Margins{Top: 50, Right: 30, Bottom: 30, Left: 40},
		BarColor:       "#4290f5",
		LabelColor:     "#ffffff",
		FontFamily:     "sans-serif",
		FontSize:       10,
		XLabel:         "Frequency",
		YPadding:       0.1,
		TickSpacing:    80,
		Delay:          10,
		LabelThreshold: 20,
		LabelPrecision: 0,
		Motion:         motion.DefaultConfig(),
	}
}

func (c Config) Validate() error {
	m := c.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidConfig)
	}
	if c.YPadding < 0 || c.YPadding >= 1 {
		return fmt.Errorf("%w: y_padding must be in [0, 1), got %v", ErrInvalidConfig, c.YPadding)
	}
	if c.TickSpacing <= 0 {
		return fmt.Errorf("%w: tick_spacing must be positive", ErrInvalidConfig)
	}
	if c.LabelPrecision < 0 {
		return fmt.Errorf("%w: label_precision must not be negative", ErrInvalidConfig)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("%w: font_size must be positive", ErrInvalidConfig)
	}
	if _, err := parseColor(c.BarColor); err != nil {
		return fmt.Errorf("%w: bar_color: %v", ErrInvalidConfig, err)
	}
	if _, err := parseColor(c.LabelColor); err != nil {
		return fmt.Errorf("%w: label_color: %v", ErrInvalidConfig, err)
	}
	return c.Motion.Validate()
}
