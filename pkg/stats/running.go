// Package stats implements a constant-memory accumulator for scalar streams.
package stats

import "math"

// Running accumulates count, mean, extrema and variance of a stream of
// values without retaining the samples. Mean and variance use Welford's
// update, which stays stable over very long runs.
//
// StandardDeviation is the sample standard deviation (n-1 denominator).
// A NaN sample is counted and makes every derived value NaN until Reset.
//
// The zero value is an empty accumulator ready for use.
type Running struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
	nan  bool
}

// Summary is a point-in-time copy of a Running accumulator
type Summary struct {
	Count             int
	Mean              float64
	StandardDeviation float64
	Range             float64
	Min               float64
	Max               float64
}

// Update incorporates one sample
func (r *Running) Update(v float64) {
	r.n++
	if math.IsNaN(v) {
		r.nan = true
	}
	if r.n == 1 {
		r.mean = v
		r.m2 = 0
		r.min = v
		r.max = v
		return
	}
	delta := v - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (v - r.mean)
	if v < r.min {
		r.min = v
	}
	if v > r.max {
		r.max = v
	}
}

// Reset returns the accumulator to its empty state
func (r *Running) Reset() {
	*r = Running{}
}

// Count is the number of samples since the last Reset
func (r *Running) Count() int {
	return r.n
}

// Mean returns the arithmetic mean, or NaN without samples
func (r *Running) Mean() float64 {
	if r.n == 0 || r.nan {
		return math.NaN()
	}
	return r.mean
}

// Min returns the smallest sample, or NaN without samples
func (r *Running) Min() float64 {
	if r.n == 0 || r.nan {
		return math.NaN()
	}
	return r.min
}

// Max returns the largest sample, or NaN without samples
func (r *Running) Max() float64 {
	if r.n == 0 || r.nan {
		return math.NaN()
	}
	return r.max
}

// Range returns max - min, or NaN without samples
func (r *Running) Range() float64 {
	if r.n == 0 || r.nan {
		return math.NaN()
	}
	return r.max - r.min
}

// Variance returns the sample variance; 0 for a single sample
func (r *Running) Variance() float64 {
	switch {
	case r.n == 0 || r.nan:
		return math.NaN()
	case r.n == 1:
		return 0
	}
	return r.m2 / float64(r.n-1)
}

// StandardDeviation returns the sample standard deviation; 0 for a single sample
func (r *Running) StandardDeviation() float64 {
	return math.Sqrt(r.Variance())
}

// Snapshot copies the current accessors into a Summary
func (r *Running) Snapshot() Summary {
	return Summary{
		Count:             r.Count(),
		Mean:              r.Mean(),
		StandardDeviation: r.StandardDeviation(),
		Range:             r.Range(),
		Min:               r.Min(),
		Max:               r.Max(),
	}
}
