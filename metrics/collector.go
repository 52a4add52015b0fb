package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Source is any accumulator reporting a count, a mean and a standard
// deviation.
type Source interface {
	Count() int64
	Mean() float64
	StandardDeviation() float64
}

// Collector exports a Source as three gauges, <name>_count, <name>_mean and
// <name>_stddev, read at scrape time.
type Collector struct {
	source Source
	lock   sync.Locker

	count  *prometheus.Desc
	mean   *prometheus.Desc
	stddev *prometheus.Desc
}

// NewCollector wraps source. Accumulators are not safe for concurrent use, so
// pass the lock that guards source, or nil when nothing writes to it during a
// scrape.
func NewCollector(name, help string, labels prometheus.Labels, source Source, lock sync.Locker) *Collector {
	return &Collector{
		source: source,
		lock:   lock,
		count: prometheus.NewDesc(name+"_count",
			help+" (observations)", nil, labels),
		mean: prometheus.NewDesc(name+"_mean",
			help+" (mean)", nil, labels),
		stddev: prometheus.NewDesc(name+"_stddev",
			help+" (standard deviation)", nil, labels),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.count
	ch <- c.mean
	ch <- c.stddev
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.lock != nil {
		c.lock.Lock()
	}
	count := float64(c.source.Count())
	mean := c.source.Mean()
	stddev := c.source.StandardDeviation()
	if c.lock != nil {
		c.lock.Unlock()
	}

	ch <- prometheus.MustNewConstMetric(c.count, prometheus.GaugeValue, count)
	ch <- prometheus.MustNewConstMetric(c.mean, prometheus.GaugeValue, mean)
	ch <- prometheus.MustNewConstMetric(c.stddev, prometheus.GaugeValue, stddev)
}
