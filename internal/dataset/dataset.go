// Package dataset holds the categorical data a chart is drawn from.
//
// A [Dataset] is an immutable, ordered list of [DataPoint] values. The
// categorical axis of a chart is laid out along a [Domain], the categories
// ordered by descending value.
package dataset

import (
	"sort"
)

// DataPoint is one bar: a unique category key and its non-negative value.
type DataPoint struct {
	Category string  `yaml:"category" json:"category"`
	Value    float64 `yaml:"value" json:"value"`
}

// Dataset is an ordered list of data points. It is never mutated after
// construction; accessors hand out copies.
type Dataset struct {
	points []DataPoint
}

func New(points []DataPoint) *Dataset {
	p := make([]DataPoint, len(points))
	copy(p, points)
	return &Dataset{points: p}
}

func (d *Dataset) Len() int { return len(d.points) }

func (d *Dataset) At(i int) DataPoint { return d.points[i] }

func (d *Dataset) Points() []DataPoint {
	p := make([]DataPoint, len(d.points))
	copy(p, d.points)
	return p
}

// Values returns the value column in dataset order.
func (d *Dataset) Values() []float64 {
	v := make([]float64, len(d.points))
	for i, p := range d.points {
		v[i] = p.Value
	}
	return v
}

// Categories returns the category column in dataset order.
func (d *Dataset) Categories() []string {
	c := make([]string, len(d.points))
	for i, p := range d.points {
		c[i] = p.Category
	}
	return c
}

// Max returns the largest value, or 0 for an empty dataset.
func (d *Dataset) Max() float64 {
	if len(d.points) == 0 {
		return 0
	}
	m := d.points[0].Value
	for _, p := range d.points[1:] {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Lookup finds the data point for a category.
func (d *Dataset) Lookup(category string) (DataPoint, bool) {
	for _, p := range d.points {
		if p.Category == category {
			return p, true
		}
	}
	return DataPoint{}, false
}

// Domain is an ordered set of category keys.
type Domain struct {
	keys  []string
	index map[string]int
}

func NewDomain(keys []string) *Domain {
	d := &Domain{
		keys:  make([]string, 0, len(keys)),
		index: make(map[string]int, len(keys)),
	}
	for _, k := range keys {
		if _, ok := d.index[k]; ok {
			continue
		}
		d.index[k] = len(d.keys)
		d.keys = append(d.keys, k)
	}
	return d
}

// DomainOrder orders the categories by descending value. Equal values keep
// ascending category order.
func DomainOrder(d *Dataset) *Domain {
	points := d.Points()
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Category < points[j].Category
	})
	keys := make([]string, len(points))
	for i, p := range points {
		keys[i] = p.Category
	}
	return NewDomain(keys)
}

func (d *Domain) Len() int { return len(d.keys) }

func (d *Domain) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Index returns the position of key in the ordering.
func (d *Domain) Index(key string) (int, bool) {
	i, ok := d.index[key]
	return i, ok
}

func (d *Domain) Keys() []string {
	k := make([]string, len(d.keys))
	copy(k, d.keys)
	return k
}

// Filter returns the indices of data points whose category is in the domain.
func (d *Domain) Filter(ds *Dataset) []int {
	idx := make([]int, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		if d.Has(ds.At(i).Category) {
			idx = append(idx, i)
		}
	}
	return idx
}
