package chart_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/barmotion/internal/chart"
	"github.com/san-kum/barmotion/internal/dataset"
	"github.com/san-kum/barmotion/internal/scene"
)

var video = chart.VideoConfig{Width: 1280, Height: 720, FPS: 30}

var _ = Describe("Renderer", func() {
	var (
		r       *chart.Renderer
		surface *scene.Surface
	)

	BeforeEach(func() {
		var err error
		r, err = chart.NewRenderer(chart.DefaultConfig(), dataset.Letters())
		Expect(err).NotTo(HaveOccurred())
		surface = scene.NewSurface()
		surface.Attach(video.Width, video.Height)
	})

	bar := func(key string) *scene.Node {
		n, ok := surface.Root().Find(chart.ClassBars).Child(key)
		Expect(ok).To(BeTrue(), "bar %s", key)
		return n
	}
	label := func(key string) *scene.Node {
		n, ok := surface.Root().Find(chart.ClassLabels).Child(key)
		Expect(ok).To(BeTrue(), "label %s", key)
		return n
	}

	It("skips an unattached surface without touching it", func() {
		detached := scene.NewSurface()
		res, err := r.Render(detached, 30, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Skipped).To(BeTrue())
		Expect(detached.Root().Len()).To(Equal(0))
	})

	It("creates the static structure exactly once", func() {
		for f := 0; f < 5; f++ {
			_, err := r.Render(surface, f, video)
			Expect(err).NotTo(HaveOccurred())
		}
		root := surface.Root()
		for _, class := range []string{chart.ClassXAxis, chart.ClassYAxis, chart.ClassBars, chart.ClassLabels} {
			Expect(root.FindAll(class)).To(HaveLen(1), class)
		}
		Expect(root.Len()).To(Equal(4))
	})

	It("enters every row on the first frame and updates afterwards", func() {
		first, err := r.Render(surface, 0, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Bars).To(Equal(scene.Join{Enter: 26}))
		Expect(first.Labels).To(Equal(scene.Join{Enter: 26}))

		second, err := r.Render(surface, 1, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Bars).To(Equal(scene.Join{Update: 26}))
	})

	It("starts growing after the delay", func() {
		res, err := r.Render(surface, 10, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Progress).To(BeNumerically("==", 0))
		Expect(bar("E").Width).To(BeNumerically("==", 0))

		res, err = r.Render(surface, 5, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Progress).To(BeNumerically("==", 0))
	})

	It("sizes bars from the animated value", func() {
		res, err := r.Render(surface, 25, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Progress).To(BeNumerically(">", 0))
		Expect(res.Progress).To(BeNumerically("<", 1))

		l := r.Builder().Layout(video.Width, video.Height)
		for _, key := range []string{"E", "T", "Z"} {
			p, _ := dataset.Letters().Lookup(key)
			want := math.Max(0, l.X.Scale(p.Value*res.Progress)-l.X.Scale(0))
			Expect(bar(key).Width).To(BeNumerically("~", want, 1e-9))
			Expect(bar(key).X).To(Equal(l.X.Scale(0)))
			Expect(bar(key).Height).To(Equal(l.Y.Bandwidth()))
			Expect(label(key).X).To(BeNumerically("~", l.X.Scale(p.Value*res.Progress), 1e-9))
		}
	})

	It("approaches full width once the spring settles", func() {
		_, err := r.Render(surface, 200, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(bar("E").Width).To(BeNumerically("~", 1210, 0.01))
	})

	It("labels bars with the un-animated value", func() {
		for _, f := range []int{0, 12, 59} {
			_, err := r.Render(surface, f, video)
			Expect(err).NotTo(HaveOccurred())
			Expect(label("E").Text).To(Equal("13%"))
		}
	})

	It("moves labels of short bars outside with the inverted color", func() {
		res, err := r.Render(surface, 59, video)
		Expect(err).NotTo(HaveOccurred())

		outside := map[string]bool{}
		for _, b := range res.State {
			if b.Outside {
				outside[b.Category] = true
			}
		}
		Expect(outside).To(Equal(map[string]bool{"J": true, "Q": true, "X": true, "Z": true}))

		z := label("Z")
		Expect(z.Dx).To(Equal(4.0))
		anchor, _ := z.Attr("text-anchor")
		fill, _ := z.Attr("fill")
		Expect(anchor).To(Equal("start"))
		Expect(fill).To(Equal("#000000"))

		e := label("E")
		Expect(e.Dx).To(Equal(-4.0))
		_, hasAnchor := e.Attr("text-anchor")
		Expect(hasAnchor).To(BeFalse())
	})

	It("removes rows that leave the dataset", func() {
		_, err := r.Render(surface, 30, video)
		Expect(err).NotTo(HaveOccurred())

		r.SetData(dataset.New([]dataset.DataPoint{
			{Category: "E", Value: 0.12702},
			{Category: "T", Value: 0.09056},
			{Category: "A", Value: 0.08167},
		}))
		res, err := r.Render(surface, 31, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Bars).To(Equal(scene.Join{Update: 3, Exit: 23}))
		Expect(res.Labels).To(Equal(scene.Join{Update: 3, Exit: 23}))

		keys := []string{}
		for _, n := range surface.Root().Find(chart.ClassBars).Children() {
			keys = append(keys, n.Key)
		}
		Expect(keys).To(Equal([]string{"E", "T", "A"}))
		Expect(surface.Root().FindAll(chart.ClassXAxis)).To(HaveLen(1))

		yAxis := surface.Root().Find(chart.ClassYAxis)
		ticks := yAxis.FindAll("tick")
		Expect(ticks).To(HaveLen(3))
		Expect(yAxis.FindAll("domain")).To(HaveLen(1))
		for _, key := range []string{"E", "T", "A"} {
			tick, ok := yAxis.Child("tick-" + key)
			Expect(ok).To(BeTrue(), "tick %s", key)
			b := bar(key)
			Expect(tick.TY).To(BeNumerically("~", b.Y+b.Height/2+0.5, 1e-9), key)
		}

		xAxis := surface.Root().Find(chart.ClassXAxis)
		Expect(xAxis.FindAll("tick")).To(HaveLen(len(r.Builder().Layout(video.Width, video.Height).Ticks)))
		Expect(xAxis.FindAll("title")).To(HaveLen(1))
	})

	It("is safe to call repeatedly for the same frame", func() {
		_, err := r.Render(surface, 20, video)
		Expect(err).NotTo(HaveOccurred())
		width := bar("A").Width
		res, err := r.Render(surface, 20, video)
		Expect(err).NotTo(HaveOccurred())
		Expect(bar("A").Width).To(Equal(width))
		Expect(res.Bars.Enter).To(BeZero())
	})
})
