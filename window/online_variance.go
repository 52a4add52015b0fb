package window

import (
	"math"

	"onlinestats/ring"
)

// OnlineVariance keeps mean and variance over the last windowSize values in
// O(1) per push. Unlike RollingVariance it divides by the number of values
// held, so results during warm-up match WindowVariance.
type OnlineVariance struct {
	buf  *ring.Buffer[float64]
	mean float64
	m2   float64
}

func NewOnlineVariance(windowSize int) (*OnlineVariance, error) {
	buf, err := ring.New[float64](windowSize)
	if err != nil {
		return nil, ErrInvalidWindowSize
	}
	return &OnlineVariance{buf: buf}, nil
}

func (ov *OnlineVariance) Push(x float64) {
	if ov.buf.IsFull() {
		ov.evict()
	}

	ov.buf.Push(x)
	n := float64(ov.buf.Size())
	oldMean := ov.mean
	ov.mean += (x - oldMean) / n
	ov.m2 += (x - oldMean) * (x - ov.mean)
}

func (ov *OnlineVariance) evict() {
	oldest, ok := ov.buf.Peek()
	if !ok {
		return
	}
	remaining := float64(ov.buf.Size() - 1)
	if remaining == 0 {
		ov.mean, ov.m2 = 0, 0
	} else {
		oldMean := ov.mean
		ov.mean -= (oldest - oldMean) / remaining
		ov.m2 -= (oldest - oldMean) * (oldest - ov.mean)
		if ov.m2 < 0 {
			ov.m2 = 0
		}
	}
	ov.buf.Pop()
}

func (ov *OnlineVariance) Count() int64 {
	return int64(ov.buf.Size())
}

func (ov *OnlineVariance) Mean() float64 {
	return ov.mean
}

// Variance is the sample variance of the values held, 0 below two values.
func (ov *OnlineVariance) Variance() float64 {
	n := ov.buf.Size()
	if n < 2 {
		return 0
	}
	return ov.m2 / float64(n-1)
}

func (ov *OnlineVariance) PopulationVariance() float64 {
	n := ov.buf.Size()
	if n < 1 {
		return 0
	}
	return ov.m2 / float64(n)
}

func (ov *OnlineVariance) StandardDeviation() float64 {
	return math.Sqrt(ov.Variance())
}

func (ov *OnlineVariance) WindowSize() int {
	return ov.buf.Capacity()
}

func (ov *OnlineVariance) IsFull() bool {
	return ov.buf.IsFull()
}

func (ov *OnlineVariance) Values() []float64 {
	return ov.buf.Values()
}

func (ov *OnlineVariance) Clear() {
	ov.buf.Clear()
	ov.mean = 0
	ov.m2 = 0
}
