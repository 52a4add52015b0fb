package shard

import "onlinestats/tree"

// Mergeable is an accumulator whose partials merge without loss.
type Mergeable[T any] interface {
	Count() int64
	Combine(other T) T
}

// Reduce merges partials pairwise, always combining the two with the fewest
// observations first so that similar-sized partials meet. zero supplies the
// result for an empty input.
func Reduce[T Mergeable[T]](zero func() T, partials []T) T {
	if len(partials) == 0 {
		return zero()
	}

	minHeap := tree.NewMinHeap[T](len(partials))
	for _, partial := range partials {
		minHeap.PushItem(partial, partial.Count())
	}

	for minHeap.Len() > 1 {
		a := minHeap.PopItem().Value
		next := minHeap.Top()
		merged := a.Combine(next.Value)
		minHeap.Update(next, merged, merged.Count())
	}
	return minHeap.PopItem().Value
}
