package window

import (
	"onlinestats/ring"
	"onlinestats/stats"
)

// WindowVariance holds the last windowSize values in a ring buffer and
// recomputes its statistics by replaying them on every query. Queries are
// O(windowSize); denominators follow the number of values actually held.
type WindowVariance struct {
	buf   *ring.Buffer[float64]
	stats *stats.RunningStats
}

func NewWindowVariance(windowSize int) (*WindowVariance, error) {
	buf, err := ring.New[float64](windowSize)
	if err != nil {
		return nil, ErrInvalidWindowSize
	}
	return &WindowVariance{
		buf:   buf,
		stats: stats.NewRunningStats(),
	}, nil
}

func (wv *WindowVariance) Add(x float64) {
	wv.buf.Push(x)
}

func (wv *WindowVariance) replay() *stats.RunningStats {
	wv.stats.Clear()
	wv.buf.Each(func(x float64) bool {
		wv.stats.Push(x)
		return true
	})
	return wv.stats
}

// Stats returns an independent accumulator over the current window.
func (wv *WindowVariance) Stats() *stats.RunningStats {
	return wv.replay().Clone()
}

func (wv *WindowVariance) Mean() float64 {
	return wv.replay().Mean()
}

func (wv *WindowVariance) Variance() float64 {
	return wv.replay().Variance()
}

func (wv *WindowVariance) PopulationVariance() float64 {
	return wv.replay().PopulationVariance()
}

func (wv *WindowVariance) StandardDeviation() float64 {
	return wv.replay().StandardDeviation()
}

func (wv *WindowVariance) Skewness() float64 {
	return wv.replay().Skewness()
}

func (wv *WindowVariance) Kurtosis() float64 {
	return wv.replay().Kurtosis()
}

func (wv *WindowVariance) WindowSize() int {
	return wv.buf.Capacity()
}

func (wv *WindowVariance) Size() int {
	return wv.buf.Size()
}

func (wv *WindowVariance) IsFull() bool {
	return wv.buf.IsFull()
}

func (wv *WindowVariance) Values() []float64 {
	return wv.buf.Values()
}

func (wv *WindowVariance) Clear() {
	wv.buf.Clear()
	wv.stats.Clear()
}
