package storage

import (
	"encoding/binary"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("storage: key not found")

const (
	streamIDLen = 8
	keyLen      = streamIDLen + len(uuid.UUID{})
)

func GetKeyPrefix(streamID uint64) []byte {
	buf := make([]byte, streamIDLen)
	binary.BigEndian.PutUint64(buf, streamID)
	return buf
}

func GetKey(streamID uint64, workerID uuid.UUID) []byte {
	buf := make([]byte, keyLen)

	// <8 bytes stream ID> <16 bytes worker ID>
	binary.BigEndian.PutUint64(buf[:streamIDLen], streamID)
	copy(buf[streamIDLen:], workerID[:])

	return buf
}

func GetStreamIDFromKey(buf []byte) uint64 {
	return binary.BigEndian.Uint64(buf[:streamIDLen])
}

func GetWorkerIDFromKey(buf []byte) uuid.UUID {
	var id uuid.UUID
	copy(id[:], buf[streamIDLen:keyLen])
	return id
}

// Backend stores one encoded partial summary per (stream, worker).
type Backend interface {
	Get(streamID uint64, workerID uuid.UUID) ([]byte, error)
	Put(streamID uint64, workerID uuid.UUID, buf []byte) error
	Delete(streamID uint64, workerID uuid.UUID) error
	DeleteStream(streamID uint64) error

	// IterateIndex visits every worker of a stream in key order and stops at
	// the first error.
	IterateIndex(streamID uint64, lambda func(uuid.UUID) error) error

	Close() error
}

type InMemoryBackend struct {
	summaryMap      map[string][]byte
	summaryMapMutex sync.Mutex
}

func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{
		summaryMap: make(map[string][]byte),
	}
}

func (backend *InMemoryBackend) Get(streamID uint64, workerID uuid.UUID) ([]byte, error) {
	backend.summaryMapMutex.Lock()
	defer backend.summaryMapMutex.Unlock()
	buf, ok := backend.summaryMap[string(GetKey(streamID, workerID))]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), buf...), nil
}

func (backend *InMemoryBackend) Put(streamID uint64, workerID uuid.UUID, buf []byte) error {
	backend.summaryMapMutex.Lock()
	defer backend.summaryMapMutex.Unlock()
	backend.summaryMap[string(GetKey(streamID, workerID))] = append([]byte(nil), buf...)
	return nil
}

func (backend *InMemoryBackend) Delete(streamID uint64, workerID uuid.UUID) error {
	backend.summaryMapMutex.Lock()
	defer backend.summaryMapMutex.Unlock()
	delete(backend.summaryMap, string(GetKey(streamID, workerID)))
	return nil
}

func (backend *InMemoryBackend) DeleteStream(streamID uint64) error {
	backend.summaryMapMutex.Lock()
	defer backend.summaryMapMutex.Unlock()
	for k := range backend.summaryMap {
		if GetStreamIDFromKey([]byte(k)) == streamID {
			delete(backend.summaryMap, k)
		}
	}
	return nil
}

func (backend *InMemoryBackend) IterateIndex(streamID uint64, lambda func(uuid.UUID) error) error {
	backend.summaryMapMutex.Lock()
	keys := make([]string, 0)
	for k := range backend.summaryMap {
		if GetStreamIDFromKey([]byte(k)) == streamID {
			keys = append(keys, k)
		}
	}
	backend.summaryMapMutex.Unlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := lambda(GetWorkerIDFromKey([]byte(k))); err != nil {
			return err
		}
	}
	return nil
}

func (backend *InMemoryBackend) Close() error {
	backend.summaryMapMutex.Lock()
	defer backend.summaryMapMutex.Unlock()
	backend.summaryMap = make(map[string][]byte)
	return nil
}
