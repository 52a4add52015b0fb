package stats

// StreamStatistics follows a timestamped stream: the values themselves and
// the gaps between consecutive arrivals.
type StreamStatistics struct {
	FirstArrivalTimestamp int64
	LastArrivalTimestamp  int64
	NumValues             int64
	IntervalStats         *RunningStats
	ValueStats            *RunningStats
}

func NewStreamStatistics() *StreamStatistics {
	return &StreamStatistics{
		FirstArrivalTimestamp: -1,
		LastArrivalTimestamp:  -1,
		NumValues:             0,
		IntervalStats:         NewRunningStats(),
		ValueStats:            NewRunningStats(),
	}
}

func (stream *StreamStatistics) Append(timestamp int64, value float64) {
	if stream.FirstArrivalTimestamp == -1 {
		stream.FirstArrivalTimestamp = timestamp
	} else {
		interval := timestamp - stream.LastArrivalTimestamp
		stream.IntervalStats.Push(float64(interval))
	}

	stream.ValueStats.Push(value)
	stream.NumValues++
	stream.LastArrivalTimestamp = timestamp
}

// Rate is the mean number of arrivals per timestamp unit, 0 until two values
// have arrived.
func (stream *StreamStatistics) Rate() float64 {
	mean := stream.IntervalStats.Mean()
	if stream.IntervalStats.Count() == 0 || mean == 0 {
		return 0
	}
	return 1 / mean
}

func (stream *StreamStatistics) Clear() {
	stream.FirstArrivalTimestamp = -1
	stream.LastArrivalTimestamp = -1
	stream.NumValues = 0
	stream.IntervalStats.Clear()
	stream.ValueStats.Clear()
}
