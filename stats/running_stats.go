package stats

import "math"

// RunningStats accumulates the first four central moments of a stream in a
// single pass. m2, m3 and m4 are sums of centred powers, not yet divided by
// the count.
type RunningStats struct {
	count int64
	m1    float64
	m2    float64
	m3    float64
	m4    float64
}

func NewRunningStats() *RunningStats {
	return &RunningStats{}
}

func (rs *RunningStats) Clear() {
	rs.count = 0
	rs.m1, rs.m2, rs.m3, rs.m4 = 0, 0, 0, 0
}

func (rs *RunningStats) Push(x float64) {
	n1 := float64(rs.count)
	rs.count++
	n := float64(rs.count)

	delta := x - rs.m1
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1

	// m4 reads the old m2 and m3, m3 the old m2.
	rs.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*rs.m2 - 4*deltaN*rs.m3
	rs.m3 += term1*deltaN*(n-2) - 3*deltaN*rs.m2
	rs.m2 += term1
	rs.m1 += deltaN
}

func (rs *RunningStats) Count() int64 {
	return rs.count
}

func (rs *RunningStats) Mean() float64 {
	return rs.m1
}

// Variance is the sample variance (n-1 denominator), 0 below two values.
func (rs *RunningStats) Variance() float64 {
	if rs.count < 2 {
		return 0
	}
	return rs.m2 / float64(rs.count-1)
}

func (rs *RunningStats) PopulationVariance() float64 {
	if rs.count < 1 {
		return 0
	}
	return rs.m2 / float64(rs.count)
}

func (rs *RunningStats) StandardDeviation() float64 {
	return math.Sqrt(rs.Variance())
}

func (rs *RunningStats) Skewness() float64 {
	if rs.count == 0 || rs.m2 == 0 {
		return 0
	}
	return math.Sqrt(float64(rs.count)) * rs.m3 / math.Pow(rs.m2, 1.5)
}

// Kurtosis is the excess kurtosis, 0 for a normal distribution.
func (rs *RunningStats) Kurtosis() float64 {
	if rs.count == 0 || rs.m2 == 0 {
		return 0
	}
	return float64(rs.count)*rs.m4/(rs.m2*rs.m2) - 3
}

// ConfidenceInterval returns the half width of the normal-approximation
// interval around the mean. It is NaN below MinIntervalCount values or for an
// unknown level.
func (rs *RunningStats) ConfidenceInterval(level ConfidenceLevel) float64 {
	if rs.count < MinIntervalCount {
		return math.NaN()
	}
	z := level.ZValue()
	if math.IsNaN(z) {
		return z
	}
	return z * rs.StandardDeviation() / math.Sqrt(float64(rs.count))
}

// ConfidenceIntervalAt is ConfidenceInterval for an arbitrary two-sided
// level in (0, 1).
func (rs *RunningStats) ConfidenceIntervalAt(level float64) float64 {
	if rs.count < MinIntervalCount {
		return math.NaN()
	}
	z := ZScore(level)
	if math.IsNaN(z) {
		return z
	}
	return z * rs.StandardDeviation() / math.Sqrt(float64(rs.count))
}

func (rs *RunningStats) MeanInterval(level ConfidenceLevel) *CI {
	return NewCI(rs.Mean(), rs.ConfidenceInterval(level))
}

// Combine merges two accumulators with the pairwise update of Chan et al.
// The result has the moments of the concatenated streams. Neither operand is
// modified.
func (rs *RunningStats) Combine(other *RunningStats) *RunningStats {
	if other.count == 0 {
		return rs.Clone()
	}
	if rs.count == 0 {
		return other.Clone()
	}

	combined := NewRunningStats()
	combined.count = rs.count + other.count

	na := float64(rs.count)
	nb := float64(other.count)
	n := float64(combined.count)

	delta := other.m1 - rs.m1
	delta2 := delta * delta
	delta3 := delta * delta2
	delta4 := delta2 * delta2

	combined.m1 = (na*rs.m1 + nb*other.m1) / n

	combined.m2 = rs.m2 + other.m2 + delta2*na*nb/n

	combined.m3 = rs.m3 + other.m3 +
		delta3*na*nb*(na-nb)/(n*n)
	combined.m3 += 3 * delta * (na*other.m2 - nb*rs.m2) / n

	combined.m4 = rs.m4 + other.m4 +
		delta4*na*nb*(na*na-na*nb+nb*nb)/(n*n*n)
	combined.m4 += 6*delta2*(na*na*other.m2+nb*nb*rs.m2)/(n*n) +
		4*delta*(na*other.m3-nb*rs.m3)/n

	return combined
}

// Add merges other into rs and returns rs.
func (rs *RunningStats) Add(other *RunningStats) *RunningStats {
	*rs = *rs.Combine(other)
	return rs
}

func (rs *RunningStats) Clone() *RunningStats {
	clone := *rs
	return &clone
}
