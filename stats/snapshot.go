package stats

import (
	"errors"
	"fmt"

	"github.com/kelindar/binary"
)

var ErrInvalidSnapshot = errors.New("invalid accumulator snapshot")

// Snapshot is the exported state of a RunningStats, used to ship partial
// aggregates between workers.
type Snapshot struct {
	Count int64
	M1    float64
	M2    float64
	M3    float64
	M4    float64
}

func (rs *RunningStats) Snapshot() Snapshot {
	return Snapshot{
		Count: rs.count,
		M1:    rs.m1,
		M2:    rs.m2,
		M3:    rs.m3,
		M4:    rs.m4,
	}
}

func FromSnapshot(snapshot Snapshot) (*RunningStats, error) {
	if snapshot.Count < 0 || snapshot.M2 < 0 {
		return nil, ErrInvalidSnapshot
	}
	return &RunningStats{
		count: snapshot.Count,
		m1:    snapshot.M1,
		m2:    snapshot.M2,
		m3:    snapshot.M3,
		m4:    snapshot.M4,
	}, nil
}

func (rs *RunningStats) MarshalBinary() ([]byte, error) {
	return binary.Marshal(rs.Snapshot())
}

func (rs *RunningStats) UnmarshalBinary(data []byte) error {
	var snapshot Snapshot
	if err := binary.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode running stats: %w", err)
	}
	restored, err := FromSnapshot(snapshot)
	if err != nil {
		return err
	}
	*rs = *restored
	return nil
}

// DecodeRunningStats is UnmarshalBinary into a fresh accumulator.
func DecodeRunningStats(data []byte) (*RunningStats, error) {
	rs := NewRunningStats()
	if err := rs.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return rs, nil
}

type WelfordSnapshot struct {
	Count int64
	Mean  float64
	M2    float64
}

func (welford *Welford) Snapshot() WelfordSnapshot {
	return WelfordSnapshot{
		Count: welford.count,
		Mean:  welford.mean,
		M2:    welford.m2,
	}
}

func (welford *Welford) MarshalBinary() ([]byte, error) {
	return binary.Marshal(welford.Snapshot())
}

func (welford *Welford) UnmarshalBinary(data []byte) error {
	var snapshot WelfordSnapshot
	if err := binary.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode welford: %w", err)
	}
	if snapshot.Count < 0 || snapshot.M2 < 0 {
		return ErrInvalidSnapshot
	}
	welford.count = snapshot.Count
	welford.mean = snapshot.Mean
	welford.m2 = snapshot.M2
	return nil
}

func DecodeWelford(data []byte) (*Welford, error) {
	welford := NewWelford()
	if err := welford.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return welford, nil
}
