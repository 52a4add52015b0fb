package window

import (
	"errors"
	"math"
)

var ErrInvalidWindowSize = errors.New("window size must be positive")

// RollingVariance keeps mean and variance over the last windowSize values in
// O(1) per push. The window starts out as windowSize zeros, so until it is
// primed the statistics include those zeros and divide by windowSize.
type RollingVariance struct {
	samples []float64
	index   int
	mean    float64
	varSum  float64
	pushes  int
	primed  bool
}

func NewRollingVariance(windowSize int) (*RollingVariance, error) {
	if windowSize < 1 {
		return nil, ErrInvalidWindowSize
	}
	return &RollingVariance{
		samples: make([]float64, windowSize),
	}, nil
}

// Push replaces the oldest sample with x.
func (rv *RollingVariance) Push(x float64) {
	size := float64(len(rv.samples))
	rv.index = (rv.index + 1) % len(rv.samples)
	old := rv.samples[rv.index]

	delta := x - old
	newMean := rv.mean + delta/size
	rv.varSum += (x + old - rv.mean - newMean) * delta
	rv.mean = newMean
	rv.samples[rv.index] = x

	if !rv.primed {
		rv.pushes++
		rv.primed = rv.pushes >= len(rv.samples)
	}
}

// Prime fills the whole window with value, as if it had been pushed
// windowSize times.
func (rv *RollingVariance) Prime(value float64) {
	for i := range rv.samples {
		rv.samples[i] = value
	}
	rv.index = 0
	rv.mean = value
	rv.varSum = 0
	rv.primed = true
}

func (rv *RollingVariance) Clear() {
	for i := range rv.samples {
		rv.samples[i] = 0
	}
	rv.index = 0
	rv.mean = 0
	rv.varSum = 0
	rv.pushes = 0
	rv.primed = false
}

// Primed reports whether every slot holds an observed or primed value.
func (rv *RollingVariance) Primed() bool {
	return rv.primed
}

func (rv *RollingVariance) Mean() float64 {
	return rv.mean
}

// Variance is the population variance of the window. The denominator is
// always windowSize.
func (rv *RollingVariance) Variance() float64 {
	return rv.varSum / float64(len(rv.samples))
}

// SampleVariance divides by windowSize-1, 0 for a window of one.
func (rv *RollingVariance) SampleVariance() float64 {
	if len(rv.samples) < 2 {
		return 0
	}
	return rv.varSum / float64(len(rv.samples)-1)
}

func (rv *RollingVariance) StandardDeviation() float64 {
	return math.Sqrt(math.Max(rv.Variance(), 0))
}

func (rv *RollingVariance) WindowSize() int {
	return len(rv.samples)
}

// Samples returns a copy of the window in slot order.
func (rv *RollingVariance) Samples() []float64 {
	samples := make([]float64, len(rv.samples))
	copy(samples, rv.samples)
	return samples
}
