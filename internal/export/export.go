// Package export serializes a scene surface into image formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/san-kum/barmotion/internal/scene"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// Encoder writes one frame.
type Encoder interface {
	Ext() string
	Encode(w io.Writer, s *scene.Surface) error
}

var encoders = map[string]func() Encoder{
	"svg": func() Encoder { return NewSVG() },
	"png": func() Encoder { return NewPNG() },
}

// ByFormat returns the single-frame encoder for a format name.
func ByFormat(format string) (Encoder, error) {
	mk, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return mk(), nil
}

func Formats() []string {
	names := make([]string, 0, len(encoders))
	for n := range encoders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
