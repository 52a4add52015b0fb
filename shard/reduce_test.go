package shard

import (
	"fmt"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"onlinestats/stats"
)

type namedPartial struct {
	name  string
	count int64
}

func (p *namedPartial) Count() int64 {
	return p.count
}

func (p *namedPartial) Combine(other *namedPartial) *namedPartial {
	return &namedPartial{
		name:  fmt.Sprintf("(%s+%s)", p.name, other.name),
		count: p.count + other.count,
	}
}

func newNamedPartial() *namedPartial {
	return &namedPartial{name: "empty"}
}

var _ = Describe("Reduce", func() {
	It("should return the zero accumulator for no partials", func() {
		Expect(Reduce(newNamedPartial, nil).name).Should(Equal("empty"))
		Expect(Reduce(stats.NewRunningStats, nil).Count()).Should(Equal(int64(0)))
	})

	It("should return a single partial untouched", func() {
		only := &namedPartial{name: "a", count: 3}
		Expect(Reduce(newNamedPartial, []*namedPartial{only})).Should(BeIdenticalTo(only))
	})

	It("should merge the smallest partials first", func() {
		partials := []*namedPartial{
			{name: "a", count: 5},
			{name: "b", count: 1},
			{name: "c", count: 3},
			{name: "d", count: 10},
		}
		merged := Reduce(newNamedPartial, partials)
		Expect(merged.name).Should(Equal("(((b+c)+a)+d)"))
		Expect(merged.Count()).Should(Equal(int64(19)))
	})

	It("should agree with sequential accumulation", func() {
		sequential := stats.NewRunningStats()
		partials := make([]*stats.RunningStats, 0)
		for w := 0; w < 7; w++ {
			partial := stats.NewRunningStats()
			for i := 0; i < 3*w+1; i++ {
				x := float64(w*100+i) / 7
				partial.Push(x)
				sequential.Push(x)
			}
			partials = append(partials, partial)
		}

		merged := Reduce(stats.NewRunningStats, partials)
		Expect(merged.Count()).Should(Equal(sequential.Count()))
		Expect(merged.Mean()).Should(BeNumerically("~", sequential.Mean(), 1e-9))
		Expect(merged.Variance()).Should(BeNumerically("~", sequential.Variance(), 1e-7))
		Expect(merged.Skewness()).Should(BeNumerically("~", sequential.Skewness(), 1e-9))
		Expect(merged.Kurtosis()).Should(BeNumerically("~", sequential.Kurtosis(), 1e-9))
	})
})
