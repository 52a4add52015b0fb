package regression

import (
	"fmt"
	"math"

	"github.com/kelindar/binary"

	"onlinestats/stats"
)

// RunningRegression fits y = slope*x + intercept over a stream of pairs. It
// keeps per-axis moments plus the running sum of co-deviations sxy.
type RunningRegression struct {
	xStats *stats.RunningStats
	yStats *stats.RunningStats
	sxy    float64
	count  int64
}

func NewRunningRegression() *RunningRegression {
	return &RunningRegression{
		xStats: stats.NewRunningStats(),
		yStats: stats.NewRunningStats(),
	}
}

func (rr *RunningRegression) Clear() {
	rr.xStats.Clear()
	rr.yStats.Clear()
	rr.sxy = 0
	rr.count = 0
}

func (rr *RunningRegression) Push(x, y float64) {
	// Must use the means and count from before this pair.
	n := float64(rr.count)
	rr.sxy += (rr.xStats.Mean() - x) * (rr.yStats.Mean() - y) * n / (n + 1)

	rr.xStats.Push(x)
	rr.yStats.Push(y)
	rr.count++
}

func (rr *RunningRegression) Count() int64 {
	return rr.count
}

// Slope is NaN with fewer than two pairs or when every x is equal.
func (rr *RunningRegression) Slope() float64 {
	if rr.count < 2 {
		return math.NaN()
	}
	sxx := rr.xStats.Variance() * float64(rr.count-1)
	if sxx == 0 {
		return math.NaN()
	}
	return rr.sxy / sxx
}

func (rr *RunningRegression) Intercept() float64 {
	if rr.count < 2 {
		return math.NaN()
	}
	return rr.yStats.Mean() - rr.Slope()*rr.xStats.Mean()
}

// Correlation is Pearson's r, NaN when either axis has no spread.
func (rr *RunningRegression) Correlation() float64 {
	if rr.count < 2 {
		return math.NaN()
	}
	t := rr.xStats.StandardDeviation() * rr.yStats.StandardDeviation()
	if t == 0 {
		return math.NaN()
	}
	return rr.sxy / (float64(rr.count-1) * t)
}

func (rr *RunningRegression) RSquared() float64 {
	r := rr.Correlation()
	return r * r
}

func (rr *RunningRegression) Predict(x float64) float64 {
	if rr.count < 2 {
		return math.NaN()
	}
	return rr.Intercept() + rr.Slope()*x
}

// Covariance is the sample covariance of x and y.
func (rr *RunningRegression) Covariance() float64 {
	if rr.count < 2 {
		return math.NaN()
	}
	return rr.sxy / float64(rr.count-1)
}

func (rr *RunningRegression) MeanX() float64 {
	return rr.xStats.Mean()
}

func (rr *RunningRegression) MeanY() float64 {
	return rr.yStats.Mean()
}

func (rr *RunningRegression) VarianceX() float64 {
	return rr.xStats.Variance()
}

func (rr *RunningRegression) VarianceY() float64 {
	return rr.yStats.Variance()
}

func (rr *RunningRegression) StandardDeviationX() float64 {
	return rr.xStats.StandardDeviation()
}

func (rr *RunningRegression) StandardDeviationY() float64 {
	return rr.yStats.StandardDeviation()
}

// Combine merges two regressions over disjoint sets of pairs. Neither operand
// is modified.
func (rr *RunningRegression) Combine(other *RunningRegression) *RunningRegression {
	if other.count == 0 {
		return rr.Clone()
	}
	if rr.count == 0 {
		return other.Clone()
	}

	combined := &RunningRegression{
		xStats: rr.xStats.Combine(other.xStats),
		yStats: rr.yStats.Combine(other.yStats),
		count:  rr.count + other.count,
	}

	deltaX := other.xStats.Mean() - rr.xStats.Mean()
	deltaY := other.yStats.Mean() - rr.yStats.Mean()
	combined.sxy = rr.sxy + other.sxy +
		float64(rr.count)*float64(other.count)*deltaX*deltaY/float64(combined.count)

	return combined
}

func (rr *RunningRegression) Add(other *RunningRegression) *RunningRegression {
	*rr = *rr.Combine(other)
	return rr
}

func (rr *RunningRegression) Clone() *RunningRegression {
	return &RunningRegression{
		xStats: rr.xStats.Clone(),
		yStats: rr.yStats.Clone(),
		sxy:    rr.sxy,
		count:  rr.count,
	}
}

func (rr *RunningRegression) String() string {
	if rr.count < 2 {
		return "Insufficient data"
	}
	slope := rr.Slope()
	intercept := rr.Intercept()
	if math.IsNaN(slope) || math.IsNaN(intercept) {
		return "Invalid regression"
	}
	if intercept >= 0 {
		return fmt.Sprintf("y = %.4fx + %.4f", slope, intercept)
	}
	return fmt.Sprintf("y = %.4fx - %.4f", slope, -intercept)
}

// Snapshot is the exported state of a RunningRegression.
type Snapshot struct {
	X     stats.Snapshot
	Y     stats.Snapshot
	Sxy   float64
	Count int64
}

func (rr *RunningRegression) Snapshot() Snapshot {
	return Snapshot{
		X:     rr.xStats.Snapshot(),
		Y:     rr.yStats.Snapshot(),
		Sxy:   rr.sxy,
		Count: rr.count,
	}
}

func (rr *RunningRegression) MarshalBinary() ([]byte, error) {
	return binary.Marshal(rr.Snapshot())
}

func (rr *RunningRegression) UnmarshalBinary(data []byte) error {
	var snapshot Snapshot
	if err := binary.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode regression: %w", err)
	}
	if snapshot.X.Count != snapshot.Count || snapshot.Y.Count != snapshot.Count {
		return stats.ErrInvalidSnapshot
	}
	xStats, err := stats.FromSnapshot(snapshot.X)
	if err != nil {
		return err
	}
	yStats, err := stats.FromSnapshot(snapshot.Y)
	if err != nil {
		return err
	}

	rr.xStats = xStats
	rr.yStats = yStats
	rr.sxy = snapshot.Sxy
	rr.count = snapshot.Count
	return nil
}

func DecodeRunningRegression(data []byte) (*RunningRegression, error) {
	rr := NewRunningRegression()
	if err := rr.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return rr, nil
}
