package math

import (
	"math"
)

// Stats is a streaming summary of a set of numbers. Undefined values are counted but not aggregated.
type Stats struct {
	count          int
	missing        int
	min, max       float64
	mean, dSquared float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{
		min: math.Inf(1),
		max: math.Inf(-1),
	}
}

// Push adds another element to the set.
func (s *Stats) Push(v float64) {
	if math.IsNaN(v) {
		s.missing++
		return
	}
	s.count++
	diff := (v - s.mean) / float64(s.count)
	mean := s.mean + diff
	s.dSquared += (v - mean) * (v - s.mean)
	s.mean = mean

	if s.min > v {
		s.min = v
	}
	if s.max < v {
		s.max = v
	}
}

// Count returns the number of defined elements.
func (s Stats) Count() int {
	return s.count
}

// Missing returns the number of undefined elements.
func (s Stats) Missing() int {
	return s.missing
}

// Mean returns the average of the defined elements, or NaN if there are none.
func (s Stats) Mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.mean
}

// Min returns the smallest element, or NaN if there are none.
func (s Stats) Min() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.min
}

// Max returns the largest element, or NaN if there are none.
func (s Stats) Max() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.max
}

// SampleStDev is the sample standard deviation, or NaN for less than two elements.
func (s Stats) SampleStDev() float64 {
	if s.count < 2 {
		return math.NaN()
	}
	return math.Sqrt(s.dSquared / float64(s.count-1))
}
