package shard

import (
	"runtime"

	"github.com/mason-leap-lab/go-utils/logger"
)

type Options struct {
	// CacheEnabled puts a ristretto cache of decoded shards in front of the
	// backend.
	CacheEnabled  bool
	CacheCounters int64
	CacheMaxCost  int64

	// Workers is the fan-out of MapReduce. Values below 1 mean one.
	Workers int

	LogLevel int
}

func DefaultOptions() Options {
	return Options{
		CacheEnabled:  true,
		CacheCounters: 1e4,
		CacheMaxCost:  1 << 20,
		Workers:       runtime.NumCPU(),
		LogLevel:      logger.LOG_LEVEL_WARN,
	}
}
