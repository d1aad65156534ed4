package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/san-kum/barmotion/internal/scene"
)

// GIF collects rasterized frames into one looping animation.
type GIF struct {
	png    *PNG
	delay  int
	frames []*image.Paletted
}

// NewGIF plays frames at fps (GIF delays are in hundredths of a second).
func NewGIF(fps int) *GIF {
	delay := 100 / max(fps, 1)
	return &GIF{png: NewPNG(), delay: max(delay, 2)}
}

func (g *GIF) Len() int { return len(g.frames) }

// Add rasterizes the current state of s as the next frame.
func (g *GIF) Add(s *scene.Surface) error {
	var buf bytes.Buffer
	if err := g.png.Encode(&buf, s); err != nil {
		return err
	}
	return g.AddPNG(buf.Bytes())
}

// AddPNG appends an already rasterized frame.
func (g *GIF) AddPNG(data []byte) error {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode frame %d: %w", len(g.frames), err)
	}
	frame := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(frame, img.Bounds(), img, image.Point{})
	g.frames = append(g.frames, frame)
	return nil
}

func (g *GIF) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return fmt.Errorf("export: no frames to encode")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range g.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}
