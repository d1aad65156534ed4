package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/barmotion/internal/scene"
)

// PNG rasterizes a surface with the go-chart raster renderer.
type PNG struct {
	Background string
	Foreground string
}

func NewPNG() *PNG {
	return &PNG{Background: "#ffffff", Foreground: "#000000"}
}

func (e *PNG) Ext() string { return "png" }

// style is the inherited presentation state while walking the graph.
type style struct {
	tx, ty        float64
	fill          string
	stroke        string
	strokeOpacity float64
	fontSize      float64
	anchor        string
}

func (st style) with(n *scene.Node) style {
	if v, ok := n.Attr("fill"); ok {
		st.fill = v
	}
	if v, ok := n.Attr("stroke"); ok {
		st.stroke = v
	}
	if v, ok := n.Attr("stroke-opacity"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			st.strokeOpacity = f
		}
	}
	if v, ok := n.Attr("font-size"); ok {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil {
			st.fontSize = f
		}
	}
	if v, ok := n.Attr("text-anchor"); ok {
		st.anchor = v
	}
	return st
}

func (e *PNG) Encode(w io.Writer, s *scene.Surface) error {
	width, height := int(math.Ceil(s.Width)), int(math.Ceil(s.Height))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export: surface has no size (%vx%v)", s.Width, s.Height)
	}

	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("create png renderer: %w", err)
	}
	r.SetDPI(72)
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)

	p := &painter{r: r, fg: e.Foreground}
	p.rect(0, 0, float64(width), float64(height), p.color(e.Background, 1))

	root := s.Root()
	p.node(root, style{fill: "#000000", strokeOpacity: 1, fontSize: 10, anchor: "start"}.with(root))

	return r.Save(w)
}

type painter struct {
	r  chart.Renderer
	fg string
}

func (p *painter) node(n *scene.Node, st style) {
	switch n.Kind {
	case scene.KindGroup:
		st.tx += n.TX
		st.ty += n.TY
		for _, c := range n.Children() {
			p.node(c, st.with(c))
		}
	case scene.KindRect:
		if st.fill == "none" || n.Width <= 0 || n.Height <= 0 {
			return
		}
		p.rect(st.tx+n.X, st.ty+n.Y, n.Width, n.Height, p.color(st.fill, 1))
	case scene.KindLine:
		if st.stroke == "" || st.stroke == "none" {
			return
		}
		p.r.SetStrokeColor(p.color(st.stroke, st.strokeOpacity))
		p.r.SetStrokeWidth(1)
		p.r.MoveTo(px(st.tx+n.X), px(st.ty+n.Y))
		p.r.LineTo(px(st.tx+n.X2), px(st.ty+n.Y2))
		p.r.Stroke()
	case scene.KindText:
		if st.fill == "none" || n.Text == "" {
			return
		}
		p.r.SetFontSize(st.fontSize)
		p.r.SetFontColor(p.color(st.fill, 1))
		x := st.tx + n.X + n.Dx
		y := st.ty + n.Y + n.DyEm*st.fontSize
		box := p.r.MeasureText(n.Text)
		switch st.anchor {
		case "end":
			x -= float64(box.Width())
		case "middle":
			x -= float64(box.Width()) / 2
		}
		p.r.Text(n.Text, px(x), px(y))
	}
}

func (p *painter) rect(x, y, w, h float64, c drawing.Color) {
	p.r.SetFillColor(c)
	p.r.MoveTo(px(x), px(y))
	p.r.LineTo(px(x+w), px(y))
	p.r.LineTo(px(x+w), px(y+h))
	p.r.LineTo(px(x), px(y+h))
	p.r.Close()
	p.r.Fill()
}

// color parses a CSS color; currentColor and anything unparseable fall
// back to the foreground.
func (p *painter) color(s string, opacity float64) drawing.Color {
	switch strings.ToLower(s) {
	case "currentcolor", "":
		s = p.fg
	case "white":
		s = "#ffffff"
	case "black":
		s = "#000000"
	}
	c, err := colorful.Hex(s)
	if err != nil {
		c, _ = colorful.Hex(p.fg)
	}
	r, g, b := c.Clamped().RGB255()
	return drawing.Color{R: r, G: g, B: b, A: uint8(math.Round(255 * math.Max(0, math.Min(1, opacity))))}
}

func px(v float64) int { return int(math.Round(v)) }
