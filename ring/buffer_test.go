package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidCapacity(t *testing.T) {
	_, err := New[float64](0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestBuffer_PushPop(t *testing.T) {
	buf, err := New[int](3)
	require.NoError(t, err)

	assert.True(t, buf.IsEmpty())
	_, ok := buf.Pop()
	assert.False(t, ok)
	_, ok = buf.Peek()
	assert.False(t, ok)

	buf.Push(1)
	buf.Push(2)
	assert.Equal(t, 2, buf.Size())
	assert.False(t, buf.IsFull())

	buf.Push(3)
	assert.True(t, buf.IsFull())
	assert.Equal(t, 3, buf.Size())
	assert.Equal(t, 3, buf.Capacity())

	// overwrite oldest
	buf.Push(4)
	assert.Equal(t, []int{2, 3, 4}, buf.Values())

	head, ok := buf.Peek()
	assert.True(t, ok)
	assert.Equal(t, 2, head)

	item, ok := buf.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2, item)
	assert.False(t, buf.IsFull())
	assert.Equal(t, []int{3, 4}, buf.Values())

	buf.Push(5)
	buf.Push(6)
	assert.Equal(t, []int{4, 5, 6}, buf.Values())
}

func TestBuffer_Each(t *testing.T) {
	buf, _ := New[int](4)
	for i := 1; i <= 6; i++ {
		buf.Push(i)
	}

	// restartable: two full passes see the same sequence
	for pass := 0; pass < 2; pass++ {
		seen := make([]int, 0)
		buf.Each(func(v int) bool {
			seen = append(seen, v)
			return true
		})
		assert.Equal(t, []int{3, 4, 5, 6}, seen)
	}

	count := 0
	buf.Each(func(int) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestBuffer_Clear(t *testing.T) {
	buf, _ := New[float64](2)
	buf.Push(1)
	buf.Push(2)
	buf.Clear()

	assert.True(t, buf.IsEmpty())
	assert.Equal(t, 0, buf.Size())
	assert.Empty(t, buf.Values())

	buf.Push(7)
	assert.Equal(t, []float64{7}, buf.Values())
}
