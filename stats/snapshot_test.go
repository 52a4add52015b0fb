package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunningStats_Binary(t *testing.T) {
	rs := pushAll(sampleValues(33))

	buf, err := rs.MarshalBinary()
	require.NoError(t, err)

	decoded, err := DecodeRunningStats(buf)
	require.NoError(t, err)
	assert.Equal(t, rs.Snapshot(), decoded.Snapshot())

	_, err = DecodeRunningStats([]byte{})
	assert.Error(t, err)
}

func TestFromSnapshot_Invalid(t *testing.T) {
	_, err := FromSnapshot(Snapshot{Count: -1})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = FromSnapshot(Snapshot{Count: 3, M2: -0.5})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestWelford_Binary(t *testing.T) {
	welford := NewWelford()
	for _, x := range sampleValues(9) {
		welford.Push(x)
	}

	buf, err := welford.MarshalBinary()
	require.NoError(t, err)

	decoded, err := DecodeWelford(buf)
	require.NoError(t, err)
	assert.Equal(t, welford, decoded)
}
