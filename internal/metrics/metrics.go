// Package metrics summarizes sampled animation curves.
package metrics

import "math"

// Metric accumulates one figure over the frames of a curve.
type Metric interface {
	Name() string
	Observe(frame int, progress float64)
	Value() float64
	Reset()
}

// Evaluate feeds values, one per frame, through every metric.
func Evaluate(values []float64, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, v := range values {
			m.Observe(i, v)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Default is the set reported for a spring curve.
func Default(target, threshold float64) []Metric {
	return []Metric{
		NewOvershoot(target),
		NewPeakFrame(),
		NewSettle(target, threshold),
	}
}

// Overshoot is how far the curve travels past target, relative to target.
type Overshoot struct {
	target float64
	peak   float64
	seen   bool
}

func NewOvershoot(target float64) *Overshoot {
	return &Overshoot{target: target}
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(frame int, progress float64) {
	if !o.seen || progress > o.peak {
		o.peak = progress
		o.seen = true
	}
}

func (o *Overshoot) Value() float64 {
	if !o.seen || o.peak <= o.target {
		return 0
	}
	if o.target == 0 {
		return o.peak
	}
	return (o.peak - o.target) / math.Abs(o.target)
}

func (o *Overshoot) Reset() {
	o.peak = 0
	o.seen = false
}

// PeakFrame is the first frame at which the curve reaches its maximum.
type PeakFrame struct {
	frame int
	peak  float64
	seen  bool
}

func NewPeakFrame() *PeakFrame { return &PeakFrame{} }

func (p *PeakFrame) Name() string { return "peak_frame" }

func (p *PeakFrame) Observe(frame int, progress float64) {
	if !p.seen || progress > p.peak {
		p.frame, p.peak, p.seen = frame, progress, true
	}
}

func (p *PeakFrame) Value() float64 { return float64(p.frame) }

func (p *PeakFrame) Reset() {
	p.frame, p.peak, p.seen = 0, 0, false
}

// Settle is the first frame after which the curve stays within threshold
// of target. It is -1 when the last observed frame is still outside.
type Settle struct {
	target    float64
	threshold float64
	last      int
	settled   bool
}

func NewSettle(target, threshold float64) *Settle {
	return &Settle{target: target, threshold: threshold, last: -1}
}

func (s *Settle) Name() string { return "settle_frame" }

func (s *Settle) Observe(frame int, progress float64) {
	if math.Abs(progress-s.target) >= s.threshold {
		s.last = frame
		s.settled = false
		return
	}
	s.settled = true
}

func (s *Settle) Value() float64 {
	if !s.settled {
		return -1
	}
	return float64(s.last + 1)
}

func (s *Settle) Reset() {
	s.last = -1
	s.settled = false
}
