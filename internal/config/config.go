package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/barmotion/internal/chart"
	"github.com/san-kum/barmotion/internal/composition"
	"github.com/san-kum/barmotion/internal/dataset"
)

const (
	DefaultComposition     = "D3Demo"
	DefaultFormat          = "svg"
	DefaultDataDir         = "data"
	DefaultSettleThreshold = 0.005
	DefaultTopic           = "barmotion/frames"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Composition string `yaml:"composition"`
	Format      string `yaml:"format"`
	DataDir     string `yaml:"data_dir"`

	// Zero values keep the composition's own settings.
	Width            int `yaml:"width,omitempty"`
	Height           int `yaml:"height,omitempty"`
	FPS              int `yaml:"fps,omitempty"`
	DurationInFrames int `yaml:"duration_in_frames,omitempty"`

	Chart chart.Config        `yaml:"chart"`
	Data  []dataset.DataPoint `yaml:"data,omitempty"`

	SettleThreshold float64      `yaml:"settle_threshold"`
	Cache           CacheConfig  `yaml:"cache"`
	Stream          StreamConfig `yaml:"stream"`
}

type CacheConfig struct {
	Kind      string        `yaml:"kind"`
	RedisAddr string        `yaml:"redis_addr"`
	Prefix    string        `yaml:"prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

type StreamConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
	QoS      byte   `yaml:"qos"`
}

func DefaultConfig() *Config {
	return &Config{
		Composition:     DefaultComposition,
		Format:          DefaultFormat,
		DataDir:         DefaultDataDir,
		Chart:           chart.DefaultConfig(),
		SettleThreshold: DefaultSettleThreshold,
		Cache: CacheConfig{
			Kind:      "none",
			RedisAddr: "localhost:6379",
			Prefix:    "barmotion:frames",
			TTL:       24 * time.Hour,
		},
		Stream: StreamConfig{
			Broker:   "tcp://localhost:1883",
			Topic:    DefaultTopic,
			ClientID: "barmotion",
			QoS:      1,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys missing from the file keep the
// values of base; base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Data = append(base.Data[:0:0], base.Data...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalid)
	}
	if c.FPS < 0 {
		return fmt.Errorf("%w: fps must be positive", ErrInvalid)
	}
	if c.DurationInFrames < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalid)
	}
	if c.SettleThreshold <= 0 {
		return fmt.Errorf("%w: settle_threshold must be positive", ErrInvalid)
	}
	switch c.Format {
	case "svg", "png", "gif":
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
	}
	switch c.Cache.Kind {
	case "", "none", "memory", "redis":
	default:
		return fmt.Errorf("%w: unknown cache %q", ErrInvalid, c.Cache.Kind)
	}
	if c.Stream.QoS > 2 {
		return fmt.Errorf("%w: qos must be 0, 1 or 2", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Data))
	for _, p := range c.Data {
		if seen[p.Category] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalid, p.Category)
		}
		seen[p.Category] = true
	}
	if err := c.Chart.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Apply overrides the composition with whatever the config sets.
func (c *Config) Apply(comp composition.Composition) composition.Composition {
	if c.Width > 0 {
		comp.Width = c.Width
	}
	if c.Height > 0 {
		comp.Height = c.Height
	}
	if c.FPS > 0 {
		comp.FPS = c.FPS
	}
	if c.DurationInFrames > 0 {
		comp.DurationInFrames = c.DurationInFrames
	}
	comp.Chart = c.Chart
	if len(c.Data) > 0 {
		comp.Data = dataset.New(c.Data)
	}
	return comp
}
