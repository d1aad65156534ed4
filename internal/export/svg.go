package export

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/san-kum/barmotion/internal/scene"
)

type SVG struct{}

func NewSVG() *SVG { return &SVG{} }

func (e *SVG) Ext() string { return "svg" }

func (e *SVG) Encode(w io.Writer, s *scene.Surface) error {
	cw := &countingWriter{w: w}
	canvas := svg.New(cw)

	root := s.Root()
	canvas.Start(s.Width, s.Height, attrs(root)...)
	for _, c := range root.Children() {
		writeNode(canvas, c)
	}
	canvas.End()
	return cw.err
}

func writeNode(canvas *svg.SVG, n *scene.Node) {
	a := attrs(n)
	switch n.Kind {
	case scene.KindGroup:
		if n.TX != 0 || n.TY != 0 {
			a = append(a, fmt.Sprintf(`transform="translate(%s,%s)"`, num(n.TX), num(n.TY)))
		}
		canvas.Group(a...)
		for _, c := range n.Children() {
			writeNode(canvas, c)
		}
		canvas.Gend()
	case scene.KindRect:
		canvas.Rect(n.X, n.Y, n.Width, n.Height, a...)
	case scene.KindLine:
		canvas.Line(n.X, n.Y, n.X2, n.Y2, a...)
	case scene.KindText:
		if n.Dx != 0 {
			a = append(a, fmt.Sprintf(`dx="%s"`, num(n.Dx)))
		}
		if n.DyEm != 0 {
			a = append(a, fmt.Sprintf(`dy="%sem"`, num(n.DyEm)))
		}
		canvas.Text(n.X, n.Y, n.Text, a...)
	}
}

// attrs renders class and presentation attributes in svgo's name="value"
// form, which it copies verbatim into the element.
func attrs(n *scene.Node) []string {
	var out []string
	if n.Class != "" {
		out = append(out, fmt.Sprintf(`class="%s"`, html.EscapeString(n.Class)))
	}
	for _, name := range n.AttrNames() {
		v, _ := n.Attr(name)
		out = append(out, fmt.Sprintf(`%s="%s"`, name, html.EscapeString(v)))
	}
	return out
}

// CurveSVG draws sampled values as a polyline, scaled to fit with 10%
// padding on every side.
func CurveSVG(w io.Writer, values []float64, width, height float64, stroke string) error {
	if len(values) < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", len(values))
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeX := float64(len(values) - 1)
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	padX, padY := rangeX*0.1, rangeY*0.1
	minX := -padX
	minY -= padY
	rangeX += 2 * padX
	rangeY += 2 * padY

	xs := make([]float64, len(values))
	ys := make([]float64, len(values))
	for i, v := range values {
		xs[i] = (float64(i) - minX) / rangeX * width
		ys[i] = height - (v-minY)/rangeY*height
	}

	cw := &countingWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %s %s"`, num(width), num(height)))
	canvas.Rect(0, 0, width, height, `fill="#0a0a0a"`)
	canvas.Polyline(xs, ys, `fill="none"`, fmt.Sprintf(`stroke="%s"`, html.EscapeString(stroke)), `stroke-width="1.5"`)
	canvas.End()
	return cw.err
}

// countingWriter keeps the first write error; svgo does not report them.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
