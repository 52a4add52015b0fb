package storage

import (
	"errors"

	"github.com/dgraph-io/badger/v2"
	"github.com/google/uuid"
)

// OpenInMemoryBadger opens a badger instance that never touches disk.
func OpenInMemoryBadger() (*badger.DB, error) {
	option := badger.DefaultOptions("").WithInMemory(true)
	return badger.Open(option)
}

type BadgerBackend struct {
	db *badger.DB
}

func NewBadgerBackend(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db}
}

func (backend *BadgerBackend) Close() error {
	return backend.db.Close()
}

func (backend *BadgerBackend) txnGet(key []byte) ([]byte, error) {
	var summaryBytes []byte
	err := backend.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		summaryBytes, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return summaryBytes, err
}

func (backend *BadgerBackend) txnPut(key, buf []byte) error {
	err := backend.db.Update(func(txn *badger.Txn) error {
		err := txn.Set(key, buf)
		return err
	})
	return err
}

func (backend *BadgerBackend) txnDelete(key []byte) error {
	err := backend.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		return err
	})
	return err
}

func (backend *BadgerBackend) Get(streamID uint64, workerID uuid.UUID) ([]byte, error) {
	return backend.txnGet(GetKey(streamID, workerID))
}

func (backend *BadgerBackend) Put(streamID uint64, workerID uuid.UUID, buf []byte) error {
	return backend.txnPut(GetKey(streamID, workerID), buf)
}

func (backend *BadgerBackend) Delete(streamID uint64, workerID uuid.UUID) error {
	return backend.txnDelete(GetKey(streamID, workerID))
}

func deleteTxnFunc(txn *badger.Txn, delKeys [][]byte) error {
	for _, delKey := range delKeys {
		err := txn.Delete(delKey)
		if err != nil {
			return err
		}
	}
	return nil
}

func (backend *BadgerBackend) DeleteStream(streamID uint64) error {
	delKeys := make([][]byte, 0)
	err := backend.IterateIndex(streamID, func(workerID uuid.UUID) error {
		delKeys = append(delKeys, GetKey(streamID, workerID))
		return nil
	})
	if err != nil {
		return err
	}

	return backend.db.Update(func(txn *badger.Txn) error {
		return deleteTxnFunc(txn, delKeys)
	})
}

func (backend *BadgerBackend) IterateIndex(streamID uint64, lambda func(uuid.UUID) error) error {
	prefix := GetKeyPrefix(streamID)
	iterOpts := badger.IteratorOptions{Prefix: prefix}
	return backend.db.View(func(txn *badger.Txn) error {
		iter := txn.NewIterator(iterOpts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			if err := lambda(GetWorkerIDFromKey(iter.Item().Key())); err != nil {
				return err
			}
		}
		return nil
	})
}
