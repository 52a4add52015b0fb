package timing

import "time"

// Clock is a monotonic microsecond counter with an unspecified epoch.
type Clock interface {
	Micros() int64
}

// SystemClock reads the runtime monotonic clock relative to its creation.
type SystemClock struct {
	origin time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

func (clock *SystemClock) Micros() int64 {
	return time.Since(clock.origin).Microseconds()
}
