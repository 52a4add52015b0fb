package timing

import (
	"onlinestats/stats"
)

// TimerStats accumulates durations in microseconds, either between Start and
// Stop or between consecutive Lap calls.
type TimerStats struct {
	clock     Clock
	durations *stats.RunningStats

	started   bool
	startTime int64
	lapping   bool
	lapTime   int64
}

func NewTimerStats(clock Clock) *TimerStats {
	return &TimerStats{
		clock:     clock,
		durations: stats.NewRunningStats(),
	}
}

func (timer *TimerStats) Start() {
	timer.startTime = timer.clock.Micros()
	timer.started = true
}

// Stop records the time since the last Start. It panics without a prior
// Start.
func (timer *TimerStats) Stop() {
	if !timer.started {
		panic("timing: Stop called before Start")
	}
	timer.durations.Push(float64(timer.clock.Micros() - timer.startTime))
	timer.started = false
}

// Lap records the time since the previous Lap. The first call only marks the
// origin.
func (timer *TimerStats) Lap() {
	now := timer.clock.Micros()
	if timer.lapping {
		timer.durations.Push(float64(now - timer.lapTime))
	}
	timer.lapTime = now
	timer.lapping = true
}

func (timer *TimerStats) Clear() {
	timer.durations.Clear()
	timer.started = false
	timer.lapping = false
	timer.startTime = 0
	timer.lapTime = 0
}

func (timer *TimerStats) Count() int64 {
	return timer.durations.Count()
}

// Mean is in microseconds.
func (timer *TimerStats) Mean() float64 {
	return timer.durations.Mean()
}

func (timer *TimerStats) StandardDeviation() float64 {
	return timer.durations.StandardDeviation()
}

func (timer *TimerStats) MeanMilliseconds() float64 {
	return timer.Mean() / 1e3
}

func (timer *TimerStats) MeanSeconds() float64 {
	return timer.Mean() / 1e6
}

func (timer *TimerStats) StandardDeviationMilliseconds() float64 {
	return timer.StandardDeviation() / 1e3
}

func (timer *TimerStats) StandardDeviationSeconds() float64 {
	return timer.StandardDeviation() / 1e6
}

// Stats returns a copy of the underlying duration moments.
func (timer *TimerStats) Stats() *stats.RunningStats {
	return timer.durations.Clone()
}

func (timer *TimerStats) Summary() Summary {
	return Summary{
		Count:             timer.Count(),
		Mean:              timer.Mean(),
		StandardDeviation: timer.StandardDeviation(),
	}
}

func (timer *TimerStats) String() string {
	summary := timer.Summary()
	summary.Mean /= 1e3
	summary.StandardDeviation /= 1e3
	return summary.format("ms")
}
