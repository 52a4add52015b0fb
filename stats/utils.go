package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MinIntervalCount is the smallest count for which the normal approximation
// behind the confidence intervals is reported.
const MinIntervalCount = 30

type ConfidenceLevel int

const (
	CI90 ConfidenceLevel = iota
	CI95
	CI99
)

// ZValue returns the two-sided standard normal critical value for the level,
// or NaN for an unknown level.
func (level ConfidenceLevel) ZValue() float64 {
	switch level {
	case CI90:
		return 1.645
	case CI95:
		return 1.960
	case CI99:
		return 2.576
	default:
		return math.NaN()
	}
}

func (level ConfidenceLevel) String() string {
	switch level {
	case CI90:
		return "90%"
	case CI95:
		return "95%"
	case CI99:
		return "99%"
	default:
		return fmt.Sprintf("ConfidenceLevel(%d)", int(level))
	}
}

// ZScore is the two-sided critical value for an arbitrary confidence level,
// e.g. 0.95 -> 1.959964. Levels outside (0, 1) give NaN.
func ZScore(confidenceLevel float64) float64 {
	if !(confidenceLevel > 0 && confidenceLevel < 1) {
		return math.NaN()
	}
	probability := (1 + confidenceLevel) / 2
	return distuv.UnitNormal.Quantile(probability)
}

type CI struct {
	Mean    float64
	LowerCI float64
	UpperCI float64
}

// NewCI builds a symmetric interval. A NaN half width yields NaN bounds.
func NewCI(mean, halfWidth float64) *CI {
	return &CI{
		Mean:    mean,
		LowerCI: mean - halfWidth,
		UpperCI: mean + halfWidth,
	}
}

func (ci *CI) Width() float64 {
	return ci.UpperCI - ci.LowerCI
}

func (ci *CI) Contains(x float64) bool {
	return ci.LowerCI <= x && x <= ci.UpperCI
}
