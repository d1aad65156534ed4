package viz

import (
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/barmotion/internal/scene"
)

const blank = 0x2800

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Dot coordinates run over
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) DotsWide() int { return c.Width * 2 }
func (c *Canvas) DotsHigh() int { return c.Height * 4 }

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotsWide() || y >= c.DotsHigh() {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect sets every dot of the rectangle [x0, x1) x [y0, y1).
func (c *Canvas) FillRect(x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y)
		}
	}
}

// Rasterize draws the rectangles and lines of a surface scaled to fit the
// canvas. Text is not drawn. Lines with a stroke-opacity below 0.5, such as
// gridlines, are skipped.
func (c *Canvas) Rasterize(s *scene.Surface) {
	c.Clear()
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	sx := float64(c.DotsWide()) / s.Width
	sy := float64(c.DotsHigh()) / s.Height
	dot := func(v, k float64) int { return int(math.Round(v * k)) }

	var walk func(n *scene.Node, tx, ty float64)
	walk = func(n *scene.Node, tx, ty float64) {
		switch n.Kind {
		case scene.KindGroup:
			for _, ch := range n.Children() {
				walk(ch, tx+n.TX, ty+n.TY)
			}
		case scene.KindRect:
			if n.Width <= 0 {
				return
			}
			c.FillRect(dot(tx+n.X, sx), dot(ty+n.Y, sy), dot(tx+n.X+n.Width, sx), dot(ty+n.Y+n.Height, sy))
		case scene.KindLine:
			if op, ok := n.Attr("stroke-opacity"); ok {
				if v, err := strconv.ParseFloat(op, 64); err == nil && v < 0.5 {
					return
				}
			}
			c.DrawLine(dot(tx+n.X, sx), dot(ty+n.Y, sy), dot(tx+n.X2, sx), dot(ty+n.Y2, sy))
		}
	}
	walk(s.Root(), 0, 0)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
