package cache

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
)

var _ fiber.Storage = (*BadgerStorage)(nil)

// BadgerStorage is an embedded fiber.Storage. An empty path keeps the data
// in memory only.
type BadgerStorage struct {
	db  *badger.DB
	ttl time.Duration
}

func NewBadgerStorage(path string, ttl time.Duration) (*BadgerStorage, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStorage{db: db, ttl: ttl}, nil
}

func (s *BadgerStorage) Get(key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}

	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}

	return val, err
}

// Set stores val under key. An exp of 0 applies the storage's default TTL.
func (s *BadgerStorage) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	if exp == 0 {
		exp = s.ttl
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), val)
		if exp > 0 {
			entry = entry.WithTTL(exp)
		}
		return txn.SetEntry(entry)
	})
}

func (s *BadgerStorage) Delete(key string) error {
	if len(key) == 0 {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (s *BadgerStorage) Reset() error {
	return s.db.DropAll()
}

func (s *BadgerStorage) Close() error {
	return s.db.Close()
}
