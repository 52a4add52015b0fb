package ring

import "errors"

var ErrInvalidCapacity = errors.New("ring buffer capacity must be positive")

// Buffer is a fixed-capacity FIFO. Pushing into a full buffer overwrites the
// oldest element.
type Buffer[T any] struct {
	items []T
	head  int // next write slot
	tail  int // oldest element
	full  bool
}

func New[T any](capacity int) (*Buffer[T], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Buffer[T]{
		items: make([]T, capacity),
	}, nil
}

func (buf *Buffer[T]) Push(item T) {
	buf.items[buf.head] = item
	buf.head = (buf.head + 1) % len(buf.items)
	if buf.full {
		buf.tail = (buf.tail + 1) % len(buf.items)
	} else if buf.head == buf.tail {
		buf.full = true
	}
}

// Pop removes and returns the oldest element. ok is false when empty.
func (buf *Buffer[T]) Pop() (item T, ok bool) {
	if buf.IsEmpty() {
		return item, false
	}
	item = buf.items[buf.tail]
	var zero T
	buf.items[buf.tail] = zero
	buf.tail = (buf.tail + 1) % len(buf.items)
	buf.full = false
	return item, true
}

// Peek returns the oldest element without removing it.
func (buf *Buffer[T]) Peek() (item T, ok bool) {
	if buf.IsEmpty() {
		return item, false
	}
	return buf.items[buf.tail], true
}

func (buf *Buffer[T]) IsEmpty() bool {
	return !buf.full && buf.head == buf.tail
}

func (buf *Buffer[T]) IsFull() bool {
	return buf.full
}

func (buf *Buffer[T]) Size() int {
	if buf.full {
		return len(buf.items)
	}
	if buf.head >= buf.tail {
		return buf.head - buf.tail
	}
	return len(buf.items) + buf.head - buf.tail
}

func (buf *Buffer[T]) Capacity() int {
	return len(buf.items)
}

func (buf *Buffer[T]) Clear() {
	var zero T
	for i := range buf.items {
		buf.items[i] = zero
	}
	buf.head = 0
	buf.tail = 0
	buf.full = false
}

// Each calls fn for every held element, oldest first, until fn returns
// false. Every call starts again from the oldest element.
func (buf *Buffer[T]) Each(fn func(T) bool) {
	pos := buf.tail
	for i, n := 0, buf.Size(); i < n; i++ {
		if !fn(buf.items[pos]) {
			return
		}
		pos = (pos + 1) % len(buf.items)
	}
}

// Values returns a copy of the held elements, oldest first.
func (buf *Buffer[T]) Values() []T {
	values := make([]T, 0, buf.Size())
	buf.Each(func(item T) bool {
		values = append(values, item)
		return true
	})
	return values
}
