package config

import "sort"

var Presets = map[string]*Config{
	"default": preset(func(c *Config) {}),
	"bouncy": preset(func(c *Config) {
		c.Chart.Motion.Mass = 1
		c.Chart.Motion.Damping = 10
	}),
	"clamped": preset(func(c *Config) {
		c.Chart.Motion.Mass = 1
		c.Chart.Motion.Damping = 8
		c.Chart.Motion.OvershootClamping = true
	}),
	"slow": preset(func(c *Config) {
		c.Chart.Motion.Mass = 20
		c.Chart.Motion.Damping = 400
		c.DurationInFrames = 120
	}),
	"eased": preset(func(c *Config) {
		c.Chart.Motion.Kind = "eased"
		c.Chart.Motion.Ease = "out-cubic"
		c.Chart.Motion.DurationInFrames = 40
	}),
	"numeric": preset(func(c *Config) {
		c.Chart.Motion.Kind = "integrated"
		c.Chart.Motion.Mass = 1
		c.Chart.Motion.Damping = 12
		c.Chart.Motion.Integrator = "rk4"
	}),
	"harmonica": preset(func(c *Config) {
		c.Chart.Motion.Kind = "harmonica"
		c.Chart.Motion.Mass = 1
		c.Chart.Motion.Damping = 12
	}),
	"square": preset(func(c *Config) {
		c.Composition = "D3DemoSquare"
	}),
	"precise": preset(func(c *Config) {
		c.Chart.LabelPrecision = 1
		c.Chart.Margins.Right = 50
	}),
	"gif": preset(func(c *Config) {
		c.Format = "gif"
		c.Width = 640
		c.Height = 360
	}),
}

func preset(mutate func(*Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	if p.Data != nil {
		c.Data = append(c.Data[:0:0], p.Data...)
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
