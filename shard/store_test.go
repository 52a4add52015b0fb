package shard

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mason-leap-lab/go-utils/logger"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"onlinestats/regression"
	"onlinestats/stats"
	"onlinestats/storage"
)

func pushRange(lo, hi int) *stats.RunningStats {
	rs := stats.NewRunningStats()
	for i := lo; i < hi; i++ {
		rs.Push(float64(i))
	}
	return rs
}

func storeSpecs(newBackend func() storage.Backend, cacheEnabled bool) {
	var store *Store[*stats.RunningStats]

	BeforeEach(func() {
		opts := DefaultOptions()
		opts.CacheEnabled = cacheEnabled
		opts.LogLevel = logger.LOG_LEVEL_WARN

		var err error
		store, err = NewStatsStore(newBackend(), opts)
		Expect(err).Should(BeNil())
	})

	AfterEach(func() {
		Expect(store.Close()).Should(BeNil())
	})

	It("should merge every worker of a stream", func() {
		w1, w2, w3 := uuid.New(), uuid.New(), uuid.New()
		Expect(store.Publish("latency", w1, pushRange(1, 4))).Should(BeNil())
		Expect(store.Publish("latency", w2, pushRange(4, 8))).Should(BeNil())
		Expect(store.Publish("latency", w3, pushRange(8, 11))).Should(BeNil())
		Expect(store.Publish("other", w1, pushRange(100, 200))).Should(BeNil())

		workers, err := store.Workers("latency")
		Expect(err).Should(BeNil())
		Expect(workers).Should(ConsistOf(w1, w2, w3))

		merged, err := store.Merged("latency")
		Expect(err).Should(BeNil())
		Expect(merged.Count()).Should(Equal(int64(10)))
		Expect(merged.Mean()).Should(BeNumerically("~", 5.5, 1e-12))
		Expect(merged.Variance()).Should(BeNumerically("~", 9.166666666666666, 1e-9))
	})

	It("should replace a re-published shard", func() {
		worker := uuid.New()
		Expect(store.Publish("requests", worker, pushRange(0, 5))).Should(BeNil())
		_, err := store.Get("requests", worker)
		Expect(err).Should(BeNil())

		Expect(store.Publish("requests", worker, pushRange(0, 5))).Should(BeNil())
		Expect(store.Publish("requests", worker, pushRange(0, 7))).Should(BeNil())

		shard, err := store.Get("requests", worker)
		Expect(err).Should(BeNil())
		Expect(shard.Count()).Should(Equal(int64(7)))

		merged, err := store.Merged("requests")
		Expect(err).Should(BeNil())
		Expect(merged.Count()).Should(Equal(int64(7)))
	})

	It("should hand out copies", func() {
		worker := uuid.New()
		Expect(store.Publish("copies", worker, pushRange(0, 3))).Should(BeNil())

		shard, err := store.Get("copies", worker)
		Expect(err).Should(BeNil())
		shard.Push(1000)

		again, err := store.Get("copies", worker)
		Expect(err).Should(BeNil())
		Expect(again.Count()).Should(Equal(int64(3)))
	})

	It("should yield the zero accumulator for an unknown stream", func() {
		merged, err := store.Merged("nobody")
		Expect(err).Should(BeNil())
		Expect(merged.Count()).Should(Equal(int64(0)))

		_, err = store.Get("nobody", uuid.New())
		Expect(errors.Is(err, storage.ErrNotFound)).Should(BeTrue())
	})

	It("should remove and delete shards", func() {
		w1, w2 := uuid.New(), uuid.New()
		Expect(store.Publish("jobs", w1, pushRange(0, 2))).Should(BeNil())
		Expect(store.Publish("jobs", w2, pushRange(2, 6))).Should(BeNil())
		_, err := store.Merged("jobs")
		Expect(err).Should(BeNil())

		Expect(store.Remove("jobs", w1)).Should(BeNil())
		_, err = store.Get("jobs", w1)
		Expect(errors.Is(err, storage.ErrNotFound)).Should(BeTrue())

		merged, err := store.Merged("jobs")
		Expect(err).Should(BeNil())
		Expect(merged.Count()).Should(Equal(int64(4)))

		Expect(store.Delete("jobs")).Should(BeNil())
		workers, err := store.Workers("jobs")
		Expect(err).Should(BeNil())
		Expect(workers).Should(BeEmpty())
		_, err = store.Get("jobs", w2)
		Expect(errors.Is(err, storage.ErrNotFound)).Should(BeTrue())
	})
}

var _ = Describe("Store", func() {
	Context("in memory with cache", func() {
		storeSpecs(func() storage.Backend { return storage.NewInMemoryBackend() }, true)
	})

	Context("in memory without cache", func() {
		storeSpecs(func() storage.Backend { return storage.NewInMemoryBackend() }, false)
	})

	Context("on badger", func() {
		storeSpecs(func() storage.Backend {
			db, err := storage.OpenInMemoryBadger()
			Expect(err).Should(BeNil())
			return storage.NewBadgerBackend(db)
		}, true)
	})

	It("should hash stream names stably", func() {
		Expect(StreamID("latency")).Should(Equal(StreamID("latency")))
		Expect(StreamID("latency")).ShouldNot(Equal(StreamID("throughput")))
	})

	It("should store regressions and welford shards", func() {
		regressions, err := NewRegressionStore(storage.NewInMemoryBackend(), DefaultOptions())
		Expect(err).Should(BeNil())
		defer regressions.Close()

		for w := 0; w < 4; w++ {
			rr := regression.NewRunningRegression()
			for i := 0; i < 5; i++ {
				x := float64(w*5 + i)
				rr.Push(x, 3*x+2)
			}
			Expect(regressions.Publish("fit", uuid.New(), rr)).Should(BeNil())
		}
		fit, err := regressions.Merged("fit")
		Expect(err).Should(BeNil())
		Expect(fit.Count()).Should(Equal(int64(20)))
		Expect(fit.Slope()).Should(BeNumerically("~", 3, 1e-9))
		Expect(fit.Intercept()).Should(BeNumerically("~", 2, 1e-8))

		welfords, err := NewWelfordStore(storage.NewInMemoryBackend(), DefaultOptions())
		Expect(err).Should(BeNil())
		defer welfords.Close()

		for w := 0; w < 3; w++ {
			welford := stats.NewWelford()
			for i := 1; i <= 10; i++ {
				welford.Push(float64(i))
			}
			Expect(welfords.Publish("w", uuid.New(), welford)).Should(BeNil())
		}
		merged, err := welfords.Merged("w")
		Expect(err).Should(BeNil())
		Expect(merged.Count()).Should(Equal(int64(30)))
		Expect(merged.Mean()).Should(BeNumerically("~", 5.5, 1e-12))
	})
})
