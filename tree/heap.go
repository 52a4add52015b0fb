package tree

import "container/heap"

// HeapItem orders by Priority, then by Seq so that equal priorities pop in
// insertion order.
type HeapItem[T any] struct {
	Value    T
	Priority int64
	Seq      int64
	Index    int
}

type MinHeap[T any] struct {
	items   []*HeapItem[T]
	nextSeq int64
}

func (mh *MinHeap[T]) Len() int {
	return len(mh.items)
}

func (mh *MinHeap[T]) Less(i, j int) bool {
	if mh.items[i].Priority == mh.items[j].Priority {
		return mh.items[i].Seq < mh.items[j].Seq
	} else {
		return mh.items[i].Priority < mh.items[j].Priority
	}
}

func (mh *MinHeap[T]) Swap(i, j int) {
	mh.items[i], mh.items[j] = mh.items[j], mh.items[i]
	mh.items[i].Index = i
	mh.items[j].Index = j
}

// Push is for container/heap. Use PushItem.
func (mh *MinHeap[T]) Push(x interface{}) {
	n := len(mh.items)
	item := x.(*HeapItem[T])
	item.Index = n
	mh.items = append(mh.items, item)
}

// Pop is for container/heap. Use PopItem.
func (mh *MinHeap[T]) Pop() interface{} {
	old := mh.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // avoid memory leak
	item.Index = -1
	mh.items = old[0 : n-1]
	return item
}

func (mh *MinHeap[T]) PushItem(value T, priority int64) *HeapItem[T] {
	item := &HeapItem[T]{Value: value, Priority: priority, Seq: mh.nextSeq}
	mh.nextSeq++
	heap.Push(mh, item)
	return item
}

func (mh *MinHeap[T]) PopItem() *HeapItem[T] {
	return heap.Pop(mh).(*HeapItem[T])
}

func (mh *MinHeap[T]) Top() *HeapItem[T] {
	return mh.items[0]
}

// Update replaces the value and priority of an item still in the heap.
func (mh *MinHeap[T]) Update(item *HeapItem[T], value T, priority int64) {
	item.Value = value
	item.Priority = priority
	heap.Fix(mh, item.Index)
}

func NewMinHeap[T any](initSize int) *MinHeap[T] {
	mh := &MinHeap[T]{items: make([]*HeapItem[T], 0, initSize)}
	heap.Init(mh)
	return mh
}
