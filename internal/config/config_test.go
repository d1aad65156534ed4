package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/barmotion/internal/composition"
	"github.com/san-kum/barmotion/internal/dataset"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Composition != "D3Demo" {
		t.Errorf("expected composition D3Demo, got %s", cfg.Composition)
	}
	if cfg.Chart.Motion.Mass != 5 || cfg.Chart.Motion.Damping != 200 {
		t.Errorf("unexpected motion defaults: %+v", cfg.Chart.Motion)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barmotion.yaml")

	cfg := DefaultConfig()
	cfg.FPS = 60
	cfg.Chart.BarColor = "#ff8800"
	cfg.Cache.TTL = time.Hour
	cfg.Data = []dataset.DataPoint{{Category: "A", Value: 0.5}}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.FPS != 60 || loaded.Chart.BarColor != "#ff8800" || loaded.Cache.TTL != time.Hour {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Data) != 1 || loaded.Data[0].Category != "A" {
		t.Errorf("data = %+v", loaded.Data)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := writeFile(path, "fps: 24\nchart:\n  delay: 0\n"); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 24 || cfg.Chart.Delay != 0 {
		t.Errorf("overrides not applied: fps %d delay %v", cfg.FPS, cfg.Chart.Delay)
	}
	if cfg.Chart.BarColor != "#4290f5" || cfg.Composition != "D3Demo" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := writeFile(path, "format: png\n"); err != nil {
		t.Fatal(err)
	}
	base := GetPreset("bouncy")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "png" {
		t.Errorf("format = %s", cfg.Format)
	}
	if cfg.Chart.Motion.Damping != 10 {
		t.Errorf("preset damping lost: %v", cfg.Chart.Motion.Damping)
	}
	if base.Format != DefaultFormat {
		t.Errorf("base was modified: %s", base.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps", func(c *Config) { c.FPS = -1 }},
		{"size", func(c *Config) { c.Width = -10 }},
		{"format", func(c *Config) { c.Format = "mp4" }},
		{"cache", func(c *Config) { c.Cache.Kind = "memcached" }},
		{"threshold", func(c *Config) { c.SettleThreshold = 0 }},
		{"qos", func(c *Config) { c.Stream.QoS = 3 }},
		{"duplicate", func(c *Config) {
			c.Data = []dataset.DataPoint{{Category: "A"}, {Category: "A"}}
		}},
		{"chart", func(c *Config) { c.Chart.Margins.Top = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Data = []dataset.DataPoint{{Category: "X", Value: 1}}

	comp := cfg.Apply(composition.D3Demo())
	if comp.Width != 640 || comp.Height != 720 || comp.FPS != 30 {
		t.Errorf("unexpected composition: %+v", comp)
	}
	if comp.Data.Len() != 1 {
		t.Errorf("data override not applied")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("bouncy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Chart.Motion.Damping != 10 {
		t.Errorf("expected damping 10, got %f", cfg.Chart.Motion.Damping)
	}

	cfg.Chart.Motion.Damping = 99
	if GetPreset("bouncy").Chart.Motion.Damping != 10 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
