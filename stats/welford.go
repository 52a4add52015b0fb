package stats

import "math"

// Welford tracks count, mean and the second central moment only. It is the
// cheaper sibling of RunningStats when shape statistics are not needed.
type Welford struct {
	count int64
	mean  float64
	m2    float64
}

func NewWelford() *Welford {
	return &Welford{
		count: 0,
		mean:  0,
		m2:    0,
	}
}

func (welford *Welford) Push(value float64) {
	n1 := welford.count
	welford.count++
	delta := value - welford.mean
	deltaN := delta / float64(welford.count)
	welford.m2 += delta * deltaN * float64(n1)
	welford.mean += deltaN
}

func (welford *Welford) Clear() {
	welford.count = 0
	welford.mean = 0
	welford.m2 = 0
}

func (welford *Welford) Count() int64 {
	return welford.count
}

func (welford *Welford) Mean() float64 {
	return welford.mean
}

// Variance is the sample variance (n-1 denominator), 0 below two values.
func (welford *Welford) Variance() float64 {
	if welford.count < 2 {
		return 0
	}
	return welford.m2 / float64(welford.count-1)
}

func (welford *Welford) PopulationVariance() float64 {
	if welford.count < 1 {
		return 0
	}
	return welford.m2 / float64(welford.count)
}

func (welford *Welford) StandardDeviation() float64 {
	return math.Sqrt(welford.Variance())
}

func (welford *Welford) CoefficientOfVariation() float64 {
	if welford.count < 2 {
		return 0
	}
	return welford.StandardDeviation() / welford.Mean()
}

// Combine returns the statistics of both inputs as if their values had been
// pushed into a single Welford. Neither operand is modified.
func (welford *Welford) Combine(other *Welford) *Welford {
	if other.count == 0 {
		return welford.Clone()
	}
	if welford.count == 0 {
		return other.Clone()
	}

	combined := NewWelford()
	combined.count = welford.count + other.count

	na := float64(welford.count)
	nb := float64(other.count)
	n := float64(combined.count)
	delta := other.mean - welford.mean

	combined.mean = (na*welford.mean + nb*other.mean) / n
	combined.m2 = welford.m2 + other.m2 + delta*delta*na*nb/n
	return combined
}

// Add merges other into welford.
func (welford *Welford) Add(other *Welford) *Welford {
	*welford = *welford.Combine(other)
	return welford
}

func (welford *Welford) Clone() *Welford {
	clone := *welford
	return &clone
}
