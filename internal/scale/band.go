package scale

import "math"

// Band divides a continuous range into uniform bands, one per category.
//
// Padding is a fraction of the step applied both between bands and at the
// outer edges. When R1 < R0 the range is reversed: bands are laid out from
// the low end and handed out in reverse, so the first category still sits
// at R0.
type Band struct {
	keys    []string
	index   map[string]int
	R0, R1  float64
	padding float64
	align   float64

	step      float64
	bandwidth float64
	values    []float64
}

func NewBand(keys []string, r0, r1 float64) *Band {
	b := &Band{
		keys:  make([]string, 0, len(keys)),
		index: make(map[string]int, len(keys)),
		R0:    r0,
		R1:    r1,
		align: 0.5,
	}
	for _, k := range keys {
		if _, ok := b.index[k]; ok {
			continue
		}
		b.index[k] = len(b.keys)
		b.keys = append(b.keys, k)
	}
	b.rescale()
	return b
}

// Padding sets inner and outer padding, clamped to [0, 1].
func (b *Band) Padding(p float64) *Band {
	b.padding = math.Min(1, math.Max(0, p))
	b.rescale()
	return b
}

// Align sets how outer space is distributed, 0.5 centers the bands.
func (b *Band) Align(a float64) *Band {
	b.align = math.Min(1, math.Max(0, a))
	b.rescale()
	return b
}

func (b *Band) rescale() {
	n := float64(len(b.keys))
	reverse := b.R1 < b.R0
	start, stop := b.R0, b.R1
	if reverse {
		start, stop = b.R1, b.R0
	}

	inner, outer := b.padding, b.padding
	b.step = (stop - start) / math.Max(1, n-inner+outer*2)
	start += (stop - start - b.step*(n-inner)) * b.align
	b.bandwidth = b.step * (1 - inner)

	b.values = make([]float64, len(b.keys))
	for i := range b.values {
		b.values[i] = start + b.step*float64(i)
	}
	if reverse {
		for i, j := 0, len(b.values)-1; i < j; i, j = i+1, j-1 {
			b.values[i], b.values[j] = b.values[j], b.values[i]
		}
	}
}

// Scale returns the start of the band for key.
func (b *Band) Scale(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.values[i], true
}

// Center returns the middle of the band for key.
func (b *Band) Center(key string) (float64, bool) {
	v, ok := b.Scale(key)
	return v + b.bandwidth/2, ok
}

func (b *Band) Bandwidth() float64 { return b.bandwidth }
func (b *Band) Step() float64      { return b.step }

func (b *Band) Domain() []string {
	k := make([]string, len(b.keys))
	copy(k, b.keys)
	return k
}
