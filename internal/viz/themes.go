package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the preview.
type Theme struct {
	Name   string
	Bar    lipgloss.Color
	Label  lipgloss.Color
	Axis   lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Bar:    lipgloss.Color("#4290f5"),
		Label:  lipgloss.Color("#ffffff"),
		Axis:   lipgloss.Color("#cccccc"),
		Accent: lipgloss.Color("#ffd700"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Bar:    lipgloss.Color("#00cc00"),
		Label:  lipgloss.Color("#88ff88"),
		Axis:   lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#ffff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Bar:    lipgloss.Color("#ff6b6b"),
		Label:  lipgloss.Color("#fff5f5"),
		Axis:   lipgloss.Color("#feca57"),
		Accent: lipgloss.Color("#ff9ff3"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{ThemeClassic, ThemeRetroGreen, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}
