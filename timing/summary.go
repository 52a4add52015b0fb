package timing

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Summary is a point-in-time view of a timer or rate accumulator. Units are
// those of the producer: microseconds for TimerStats, events per second for
// RateStats.
type Summary struct {
	Count             int64
	Mean              float64
	StandardDeviation float64
}

func (s Summary) format(unit string) string {
	if s.Count == 0 {
		return "no samples"
	}
	return fmt.Sprintf("%s samples, mean %s%s, stddev %s%s",
		humanize.Comma(s.Count),
		humanize.CommafWithDigits(s.Mean, 3), unit,
		humanize.CommafWithDigits(s.StandardDeviation, 3), unit)
}
