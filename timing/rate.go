package timing

import (
	"math"

	"onlinestats/stats"
)

// RateStats accumulates instantaneous event rates in events per second.
type RateStats struct {
	clock Clock
	rates *stats.RunningStats

	hasEvents     bool
	lastEventTime int64
}

func NewRateStats(clock Clock) *RateStats {
	return &RateStats{
		clock: clock,
		rates: stats.NewRunningStats(),
	}
}

// Push records an event. From the second event on, the rate 1/dt is
// accumulated whenever dt is positive.
func (rate *RateStats) Push() {
	now := rate.clock.Micros()
	if rate.hasEvents {
		deltaSeconds := float64(now-rate.lastEventTime) / 1e6
		if deltaSeconds > 0 {
			rate.rates.Push(1 / deltaSeconds)
		}
	}
	rate.lastEventTime = now
	rate.hasEvents = true
}

// PushValue accumulates an externally measured rate. It does not count as an
// event.
func (rate *RateStats) PushValue(x float64) {
	rate.rates.Push(x)
}

func (rate *RateStats) Clear() {
	rate.rates.Clear()
	rate.hasEvents = false
	rate.lastEventTime = 0
}

func (rate *RateStats) HasEvents() bool {
	return rate.hasEvents
}

// LastEventTime is the clock reading of the last event in microseconds, NaN
// before any event.
func (rate *RateStats) LastEventTime() float64 {
	if !rate.hasEvents {
		return math.NaN()
	}
	return float64(rate.lastEventTime)
}

// TimeSinceLastPush is in seconds, NaN before any event.
func (rate *RateStats) TimeSinceLastPush() float64 {
	if !rate.hasEvents {
		return math.NaN()
	}
	return float64(rate.clock.Micros()-rate.lastEventTime) / 1e6
}

func (rate *RateStats) TimeSinceLastPushMilliseconds() float64 {
	return rate.TimeSinceLastPush() * 1e3
}

func (rate *RateStats) Count() int64 {
	return rate.rates.Count()
}

func (rate *RateStats) Mean() float64 {
	return rate.rates.Mean()
}

// AverageRate is the mean of the accumulated rates.
func (rate *RateStats) AverageRate() float64 {
	return rate.rates.Mean()
}

func (rate *RateStats) StandardDeviation() float64 {
	return rate.rates.StandardDeviation()
}

func (rate *RateStats) Stats() *stats.RunningStats {
	return rate.rates.Clone()
}

func (rate *RateStats) Summary() Summary {
	return Summary{
		Count:             rate.Count(),
		Mean:              rate.Mean(),
		StandardDeviation: rate.StandardDeviation(),
	}
}

func (rate *RateStats) String() string {
	return rate.Summary().format("/s")
}
