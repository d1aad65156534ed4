package chart

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var named = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
}

func parseColor(s string) (colorful.Color, error) {
	if hex, ok := named[strings.ToLower(s)]; ok {
		s = hex
	}
	return colorful.Hex(s)
}

// invert returns the RGB complement of a color, black when s is unparseable.
func invert(s string) string {
	c, err := parseColor(s)
	if err != nil {
		return "#000000"
	}
	return colorful.Color{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B}.Clamped().Hex()
}
