package chart

import (
	"fmt"
	"strconv"

	"github.com/san-kum/barmotion/internal/dataset"
	"github.com/san-kum/barmotion/internal/scale"
	"github.com/san-kum/barmotion/internal/scene"
)

// Structural classes of the chart. Each appears exactly once per surface.
const (
	ClassXAxis  = "x-axis"
	ClassYAxis  = "y-axis"
	ClassBars   = "bars"
	ClassLabels = "labels"
)

type Tick struct {
	Value float64
	X     float64
	Label string
}

// Row is one data point placed on the chart, before animation.
type Row struct {
	Category string
	Value    float64
	Y        float64
	Label    string
	// FullWidth is the bar length at progress 1.
	FullWidth float64
}

type Layout struct {
	Width, Height float64
	X             *scale.Linear
	Y             *scale.Band
	Ticks         []Tick
	Rows          []Row
}

// Builder lays the dataset out on a canvas. The domain ordering is computed
// once at construction; Layout is a pure function of width and height.
type Builder struct {
	cfg    Config
	data   *dataset.Dataset
	domain *dataset.Domain
	format func(float64) string
}

func NewBuilder(cfg Config, data *dataset.Dataset) *Builder {
	return &Builder{
		cfg:    cfg,
		data:   data,
		domain: dataset.DomainOrder(data),
		format: scale.Percent(cfg.LabelPrecision),
	}
}

func (b *Builder) Domain() *dataset.Domain { return b.domain }

func (b *Builder) Data() *dataset.Dataset { return b.data }

func (b *Builder) Layout(width, height float64) Layout {
	m := b.cfg.Margins
	x := scale.NewLinear(0, b.data.Max(), m.Left, width-m.Right)
	y := scale.NewBand(b.domain.Keys(), height-m.Bottom, m.Top).Padding(b.cfg.YPadding)

	count := width / b.cfg.TickSpacing
	tickFormat := x.TickFormat(count, "%")
	values := x.Ticks(count)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, X: x.Scale(v), Label: tickFormat(v)}
	}

	x0 := x.Scale(0)
	idx := b.domain.Filter(b.data)
	rows := make([]Row, 0, len(idx))
	for _, i := range idx {
		p := b.data.At(i)
		top, _ := y.Scale(p.Category)
		rows = append(rows, Row{
			Category:  p.Category,
			Value:     p.Value,
			Y:         top,
			Label:     b.format(p.Value),
			FullWidth: max(0, x.Scale(p.Value)-x0),
		})
	}

	return Layout{
		Width:  width,
		Height: height,
		X:      x,
		Y:      y,
		Ticks:  ticks,
		Rows:   rows,
	}
}

// EnsureStatic creates the axes and the bar and label containers on first
// use and returns the two containers. Later calls only look them up. The
// axis ticks are reconciled against l on every call so they follow the
// current dataset.
func (b *Builder) EnsureStatic(root *scene.Node, l Layout) (bars, labels *scene.Node) {
	m := b.cfg.Margins

	root.Set("viewBox", fmt.Sprintf("0 0 %s %s", num(l.Width), num(l.Height)))
	root.Set("style", "max-width: 100%; height: auto;")

	xg := root.Ensure(ClassXAxis, func() *scene.Node {
		return b.xAxis(l)
	})
	b.xTicks(xg, l)

	bars = root.Ensure(ClassBars, func() *scene.Node {
		return scene.NewGroup("").WithClass(ClassBars).Set("fill", b.cfg.BarColor)
	})

	labels = root.Ensure(ClassLabels, func() *scene.Node {
		return scene.NewGroup("").WithClass(ClassLabels).
			Set("fill", b.cfg.LabelColor).
			Set("text-anchor", "end").
			Set("font-family", b.cfg.FontFamily).
			SetFloat("font-size", b.cfg.FontSize)
	})

	yg := root.Ensure(ClassYAxis, func() *scene.Node {
		g := b.yAxis(l)
		g.TX = m.Left
		return g
	})
	b.yTicks(yg, l)

	return bars, labels
}

func (b *Builder) axisGroup(class, anchor string) *scene.Node {
	return scene.NewGroup("").WithClass(class).
		Set("fill", "none").
		SetFloat("font-size", b.cfg.FontSize).
		Set("font-family", b.cfg.FontFamily).
		Set("text-anchor", anchor)
}

func (b *Builder) xAxis(l Layout) *scene.Node {
	m := b.cfg.Margins
	g := b.axisGroup(ClassXAxis, "middle")
	g.TY = m.Top

	title := scene.NewText("title", b.cfg.XLabel).WithClass("title").
		Set("fill", "currentColor").
		Set("text-anchor", "end")
	title.X = l.Width - m.Right
	title.Y = -22
	mustAppend(g, title)
	return g
}

// xTicks keys ticks by value so a tick that survives a domain change moves
// instead of being recreated.
func (b *Builder) xTicks(g *scene.Node, l Layout) {
	m := b.cfg.Margins
	keys := make([]string, len(l.Ticks))
	ticks := make(map[string]Tick, len(l.Ticks))
	for i, t := range l.Ticks {
		keys[i] = "tick-" + num(t.Value)
		ticks[keys[i]] = t
	}

	scene.ReconcileClass(g, "tick", keys,
		func(key string) *scene.Node {
			tick := scene.NewGroup(key)
			line := scene.NewLine("line").Set("stroke", "currentColor")
			line.Y2 = -6
			grid := scene.NewLine("grid").WithClass("grid").
				Set("stroke", "currentColor").
				SetFloat("stroke-opacity", 0.1)
			text := scene.NewText("text", "").Set("fill", "currentColor")
			text.Y = -9
			mustAppend(tick, line, grid, text)
			return tick
		},
		func(n *scene.Node, key string) {
			t := ticks[key]
			n.TX = t.X + 0.5
			if grid, ok := n.Child("grid"); ok {
				grid.Y2 = l.Height - m.Top - m.Bottom
			}
			if text, ok := n.Child("text"); ok {
				text.Text = t.Label
			}
		})
}

func (b *Builder) yAxis(l Layout) *scene.Node {
	g := b.axisGroup(ClassYAxis, "end")

	r0, r1 := l.Height-b.cfg.Margins.Bottom, b.cfg.Margins.Top
	domain := scene.NewLine("domain").WithClass("domain").Set("stroke", "currentColor")
	domain.Y, domain.Y2 = r0, r1
	mustAppend(g, domain)
	return g
}

func (b *Builder) yTicks(g *scene.Node, l Layout) {
	cats := b.domain.Keys()
	keys := make([]string, len(cats))
	byKey := make(map[string]string, len(cats))
	for i, c := range cats {
		keys[i] = "tick-" + c
		byKey[keys[i]] = c
	}

	scene.ReconcileClass(g, "tick", keys,
		func(key string) *scene.Node {
			tick := scene.NewGroup(key)
			line := scene.NewLine("line").Set("stroke", "currentColor")
			line.X2 = -6
			text := scene.NewText("text", "").Set("fill", "currentColor")
			text.X = -9
			text.DyEm = 0.32
			mustAppend(tick, line, text)
			return tick
		},
		func(n *scene.Node, key string) {
			cat := byKey[key]
			center, _ := l.Y.Center(cat)
			n.TY = center + 0.5
			if text, ok := n.Child("text"); ok {
				text.Text = cat
			}
		})
}

// mustAppend is for freshly built subtrees, where keys are known unique.
func mustAppend(parent *scene.Node, children ...*scene.Node) {
	for _, c := range children {
		if err := parent.Append(c); err != nil {
			panic(err)
		}
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
