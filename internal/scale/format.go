package scale

import (
	"math"
	"strconv"
)

// Percent formats a fraction as a percentage rounded to precision decimals:
// Percent(0)(0.12702) == "13%".
func Percent(precision int) func(float64) string {
	return func(v float64) string {
		return fixed(v*100, precision) + "%"
	}
}

// Fixed formats a value with a fixed number of decimals.
func Fixed(precision int) func(float64) string {
	return func(v float64) string {
		return fixed(v, precision)
	}
}

// fixed rounds halves away from zero, as toFixed does, rather than to even.
func fixed(v float64, precision int) string {
	if p := math.Pow10(precision); !math.IsInf(v*p, 0) {
		v = math.Round(v*p) / p
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	// Rounding a small negative value must not leave a "-0".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 && s[0] == '-' {
		s = s[1:]
	}
	return s
}

// precisionFixed is the number of decimals needed to tell apart values a
// step apart.
func precisionFixed(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	p := -int(floorLog10(step))
	if p < 0 {
		return 0
	}
	return p
}
