// Package stats provides single-pass accumulators for streams of scalar
// observations.
//
// RunningStats tracks count, mean and the second to fourth central moments;
// Welford tracks only the first two. Both update in O(1) per value and can be
// merged, so a stream may be split across workers and recombined:
//
//	a, b := stats.NewRunningStats(), stats.NewRunningStats()
//	for _, x := range left {
//	    a.Push(x)
//	}
//	for _, x := range right {
//	    b.Push(x)
//	}
//	all := a.Combine(b) // same moments as pushing left then right
//
// Queries on too little data return 0 or NaN rather than an error; see each
// method for which one.
package stats
