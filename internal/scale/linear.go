// Package scale maps data values to pixel coordinates.
//
// [Linear] maps a continuous domain to a continuous range and produces
// human-friendly ticks (steps of 1, 2 or 5 times a power of ten). [Band]
// maps an ordered set of categories to equally sized bands. Both follow the
// conventions of d3-scale so charts lay out the way a browser rendition of
// the same chart would.
package scale

import (
	"math"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear is an affine map from [D0, D1] to [R0, R1].
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Scale maps v into the range. A degenerate domain maps everything to the
// middle of the range.
func (l *Linear) Scale(v float64) float64 {
	span := l.D1 - l.D0
	if span == 0 {
		return (l.R0 + l.R1) / 2
	}
	return l.R0 + (v-l.D0)/span*(l.R1-l.R0)
}

// Invert maps a range coordinate back into the domain.
func (l *Linear) Invert(r float64) float64 {
	span := l.R1 - l.R0
	if span == 0 {
		return (l.D0 + l.D1) / 2
	}
	return l.D0 + (r-l.R0)/span*(l.D1-l.D0)
}

// Ticks returns roughly count evenly spaced, round values within the domain.
func (l *Linear) Ticks(count float64) []float64 {
	return Ticks(l.D0, l.D1, count)
}

// TickStep returns the tick spacing Ticks would use for count.
func (l *Linear) TickStep(count float64) float64 {
	return TickStep(l.D0, l.D1, count)
}

// TickFormat returns a formatter for tick values in the given specifier
// ("%" or "f"), with precision derived from the tick step.
func (l *Linear) TickFormat(count float64, specifier string) func(float64) string {
	step := l.TickStep(count)
	p := precisionFixed(step)
	if specifier == "%" {
		p -= 2
		if p < 0 {
			p = 0
		}
		return Percent(p)
	}
	return Fixed(p)
}

// floorLog10 is floor(log10(x)) corrected for rounding at exact powers of
// ten.
func floorLog10(x float64) float64 {
	p := math.Floor(math.Log10(x))
	if math.IsInf(p, 0) || math.IsNaN(p) {
		return p
	}
	if math.Pow(10, p+1) <= x {
		p++
	} else if math.Pow(10, p) > x {
		p--
	}
	return p
}

// jsRound rounds half up, matching Math.round.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := floorLog10(step)
	errv := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case errv >= e10:
		factor = 10
	case errv >= e5:
		factor = 5
	case errv >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = jsRound(start * inc)
		i2 = jsRound(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = jsRound(start / inc)
		i2 = jsRound(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks returns the tick values between start and stop. A negative
// increment encodes 1/|inc| so decimal ticks are computed by division and
// stay exact (0.1 rather than 0.30000000000000004).
func Ticks(start, stop, count float64) []float64 {
	if !(count > 0) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	var i1, i2, inc float64
	if reverse {
		i1, i2, inc = tickSpec(stop, start, count)
	} else {
		i1, i2, inc = tickSpec(start, stop, count)
	}
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		var k float64
		if reverse {
			k = i2 - float64(i)
		} else {
			k = i1 + float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// TickIncrement is the raw tick increment; negative values encode 1/|inc|.
func TickIncrement(start, stop, count float64) float64 {
	_, _, inc := tickSpec(start, stop, count)
	return inc
}

// TickStep is the signed distance between adjacent ticks.
func TickStep(start, stop, count float64) float64 {
	if start == stop || !(count > 0) {
		return 0
	}
	reverse := stop < start
	var inc float64
	if reverse {
		inc = TickIncrement(stop, start, count)
	} else {
		inc = TickIncrement(start, stop, count)
	}
	if inc < 0 {
		inc = 1 / -inc
	}
	if reverse {
		return -inc
	}
	return inc
}
