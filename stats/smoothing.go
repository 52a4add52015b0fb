package stats

import "math"

// ExponentialSmoothing is a single exponentially weighted moving value.
// The value is NaN until the first push, which seeds it directly.
type ExponentialSmoothing struct {
	alpha float64
	value float64
}

// NewExponentialSmoothing clamps alpha into [0, 1]. Alpha 1 follows the input
// exactly, alpha 0 freezes the first value.
func NewExponentialSmoothing(alpha float64) *ExponentialSmoothing {
	return &ExponentialSmoothing{
		alpha: clampUnit(alpha),
		value: math.NaN(),
	}
}

func (es *ExponentialSmoothing) Alpha() float64 {
	return es.alpha
}

func (es *ExponentialSmoothing) SetAlpha(alpha float64) {
	es.alpha = clampUnit(alpha)
}

func (es *ExponentialSmoothing) Value() float64 {
	return es.value
}

func (es *ExponentialSmoothing) Push(x float64) {
	if math.IsNaN(es.value) {
		es.value = x
		return
	}
	es.value = x*es.alpha + es.value*(1-es.alpha)
}

// Smooth pushes x and returns the updated value.
func (es *ExponentialSmoothing) Smooth(x float64) float64 {
	es.Push(x)
	return es.value
}

func (es *ExponentialSmoothing) Clear() {
	es.value = math.NaN()
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
