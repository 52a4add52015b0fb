package shard

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"onlinestats/regression"
	"onlinestats/stats"
)

func samples(n int) (xs, ys []float64) {
	rng := rand.New(rand.NewSource(11))
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64()*3 + 20
		ys[i] = 4*xs[i] - 7 + rng.NormFloat64()
	}
	return xs, ys
}

var _ = Describe("MapReduce", func() {
	xs, ys := samples(10000)

	It("should match sequential moments for any worker count", func() {
		sequential := stats.NewRunningStats()
		for _, x := range xs {
			sequential.Push(x)
		}

		for _, workers := range []int{-1, 0, 1, 2, 3, 8, 64} {
			opts := DefaultOptions()
			opts.Workers = workers
			merged, err := Stats(context.Background(), opts, xs)
			Expect(err).Should(BeNil())
			Expect(merged.Count()).Should(Equal(int64(len(xs))))
			Expect(merged.Mean()).Should(BeNumerically("~", sequential.Mean(), 1e-9))
			Expect(merged.Variance()).Should(BeNumerically("~", sequential.Variance(), 1e-8))
			Expect(merged.Skewness()).Should(BeNumerically("~", sequential.Skewness(), 1e-8))
			Expect(merged.Kurtosis()).Should(BeNumerically("~", sequential.Kurtosis(), 1e-8))
		}
	})

	It("should match a sequential regression", func() {
		sequential := regression.NewRunningRegression()
		for i := range xs {
			sequential.Push(xs[i], ys[i])
		}

		opts := DefaultOptions()
		opts.Workers = 5
		merged, err := Regression(context.Background(), opts, xs, ys)
		Expect(err).Should(BeNil())
		Expect(merged.Slope()).Should(BeNumerically("~", sequential.Slope(), 1e-9))
		Expect(merged.Intercept()).Should(BeNumerically("~", sequential.Intercept(), 1e-8))
		Expect(merged.Correlation()).Should(BeNumerically("~", sequential.Correlation(), 1e-9))
	})

	It("should reject mismatched regression inputs", func() {
		_, err := Regression(context.Background(), DefaultOptions(), xs, ys[1:])
		Expect(err).Should(Equal(ErrLengthMismatch))
	})

	It("should return the zero accumulator for empty input", func() {
		merged, err := Stats(context.Background(), DefaultOptions(), nil)
		Expect(err).Should(BeNil())
		Expect(merged.Count()).Should(Equal(int64(0)))
	})

	It("should stop on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Stats(ctx, DefaultOptions(), xs)
		Expect(err).Should(Equal(context.Canceled))

		_, err = Stats(ctx, DefaultOptions(), nil)
		Expect(err).Should(Equal(context.Canceled))
	})
})
