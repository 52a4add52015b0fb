package shard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
	"github.com/mason-leap-lab/go-utils/logger"

	"onlinestats/regression"
	"onlinestats/stats"
	"onlinestats/storage"
)

// Shard is a partial aggregate that can be published to a Store.
type Shard[T any] interface {
	Mergeable[T]
	Clone() T
	MarshalBinary() ([]byte, error)
}

// Store holds the latest shard each worker published for a stream. Publishing
// again under the same worker replaces the previous shard, so redelivered
// snapshots are not double counted.
type Store[T Shard[T]] struct {
	backend      storage.Backend
	decode       func([]byte) (T, error)
	zero         func() T
	cacheEnabled bool
	shardCache   *ristretto.Cache
	log          logger.Logger

	// Every write bumps the generation of its key, so cache entries of a
	// replaced shard can never be read back.
	generations map[string]uint64
	mu          sync.Mutex
}

func NewStore[T Shard[T]](
	backend storage.Backend,
	decode func([]byte) (T, error),
	zero func() T,
	opts Options) (*Store[T], error) {

	store := &Store[T]{
		backend:      backend,
		decode:       decode,
		zero:         zero,
		cacheEnabled: opts.CacheEnabled,
		generations:  make(map[string]uint64),
		log: &logger.ColorLogger{
			Prefix: "shard.Store ",
			Level:  opts.LogLevel,
		},
	}
	if opts.CacheEnabled {
		shardCache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: opts.CacheCounters,
			MaxCost:     opts.CacheMaxCost,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("create shard cache: %w", err)
		}
		store.shardCache = shardCache
	}
	return store, nil
}

func NewStatsStore(backend storage.Backend, opts Options) (*Store[*stats.RunningStats], error) {
	return NewStore(backend, stats.DecodeRunningStats, stats.NewRunningStats, opts)
}

func NewWelfordStore(backend storage.Backend, opts Options) (*Store[*stats.Welford], error) {
	return NewStore(backend, stats.DecodeWelford, stats.NewWelford, opts)
}

func NewRegressionStore(
	backend storage.Backend,
	opts Options) (*Store[*regression.RunningRegression], error) {
	return NewStore(backend, regression.DecodeRunningRegression, regression.NewRunningRegression, opts)
}

func StreamID(stream string) uint64 {
	return xxhash.Sum64String(stream)
}

func (store *Store[T]) cacheKey(streamID uint64, workerID uuid.UUID) []byte {
	key := storage.GetKey(streamID, workerID)
	store.mu.Lock()
	generation := store.generations[string(key)]
	store.mu.Unlock()
	return binary.BigEndian.AppendUint64(key, generation)
}

func (store *Store[T]) invalidate(streamID uint64, workerID uuid.UUID) {
	key := storage.GetKey(streamID, workerID)
	store.mu.Lock()
	store.generations[string(key)]++
	store.mu.Unlock()
}

// Publish records shard as the current partial of worker on stream.
func (store *Store[T]) Publish(stream string, workerID uuid.UUID, shard T) error {
	streamID := StreamID(stream)
	buf, err := shard.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode shard of %s/%s: %w", stream, workerID, err)
	}
	if err := store.backend.Put(streamID, workerID, buf); err != nil {
		return fmt.Errorf("publish shard of %s/%s: %w", stream, workerID, err)
	}
	store.invalidate(streamID, workerID)
	store.log.Debug("Published %d observations to %s from %s", shard.Count(), stream, workerID)
	return nil
}

// Get returns a copy of the shard worker last published on stream.
func (store *Store[T]) Get(stream string, workerID uuid.UUID) (T, error) {
	streamID := StreamID(stream)
	key := store.cacheKey(streamID, workerID)
	if store.cacheEnabled {
		cached, found := store.shardCache.Get(key)
		if found {
			return cached.(T).Clone(), nil
		}
	}

	var zero T
	buf, err := store.backend.Get(streamID, workerID)
	if err != nil {
		return zero, fmt.Errorf("get shard of %s/%s: %w", stream, workerID, err)
	}
	shard, err := store.decode(buf)
	if err != nil {
		store.log.Warn("Discarding undecodable shard of %s/%s: %v", stream, workerID, err)
		return zero, fmt.Errorf("decode shard of %s/%s: %w", stream, workerID, err)
	}
	if store.cacheEnabled {
		store.shardCache.Set(key, shard.Clone(), 1)
	}
	return shard, nil
}

// Workers lists the workers that published to stream, in key order.
func (store *Store[T]) Workers(stream string) ([]uuid.UUID, error) {
	workers := make([]uuid.UUID, 0)
	err := store.backend.IterateIndex(StreamID(stream), func(workerID uuid.UUID) error {
		workers = append(workers, workerID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list workers of %s: %w", stream, err)
	}
	return workers, nil
}

// Merged reduces every shard of stream. A stream nobody published to yields
// the zero accumulator.
func (store *Store[T]) Merged(stream string) (T, error) {
	var zero T
	workers, err := store.Workers(stream)
	if err != nil {
		return zero, err
	}

	shards := make([]T, 0, len(workers))
	for _, workerID := range workers {
		shard, err := store.Get(stream, workerID)
		if errors.Is(err, storage.ErrNotFound) {
			// removed between listing and reading
			continue
		} else if err != nil {
			return zero, err
		}
		shards = append(shards, shard)
	}
	return Reduce(store.zero, shards), nil
}

// Remove drops the shard of a single worker.
func (store *Store[T]) Remove(stream string, workerID uuid.UUID) error {
	streamID := StreamID(stream)
	store.invalidate(streamID, workerID)
	if err := store.backend.Delete(streamID, workerID); err != nil {
		return fmt.Errorf("remove shard of %s/%s: %w", stream, workerID, err)
	}
	return nil
}

// Delete drops every shard of stream.
func (store *Store[T]) Delete(stream string) error {
	workers, err := store.Workers(stream)
	if err != nil {
		return err
	}

	streamID := StreamID(stream)
	for _, workerID := range workers {
		store.invalidate(streamID, workerID)
	}
	if err := store.backend.DeleteStream(streamID); err != nil {
		return fmt.Errorf("delete stream %s: %w", stream, err)
	}
	store.log.Info("Deleted stream %s (%d shards)", stream, len(workers))
	return nil
}

func (store *Store[T]) Close() error {
	if store.cacheEnabled {
		store.shardCache.Close()
	}
	return store.backend.Close()
}
