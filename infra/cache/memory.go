package cache

import (
	"errors"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gofiber/fiber/v2"
)

var ErrRejected = errors.New("cache entry rejected")

var _ fiber.Storage = (*MemoryStorage)(nil)

// MemoryStorage is an in-process fiber.Storage backed by ristretto. Entries
// are costed by their size in bytes.
type MemoryStorage struct {
	cache *ristretto.Cache[string, []byte]
	ttl   time.Duration
}

func NewMemoryStorage(maxCost int64, ttl time.Duration) (*MemoryStorage, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 10_000,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &MemoryStorage{cache: c, ttl: ttl}, nil
}

func (s *MemoryStorage) Get(key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}

	val, ok := s.cache.Get(key)
	if !ok {
		return nil, nil
	}

	return val, nil
}

// Set stores val under key. An exp of 0 applies the storage's default TTL.
func (s *MemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	if exp == 0 {
		exp = s.ttl
	}

	if !s.cache.SetWithTTL(key, val, int64(len(val)), exp) {
		return ErrRejected
	}
	s.cache.Wait()

	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	if len(key) == 0 {
		return nil
	}

	s.cache.Del(key)
	return nil
}

func (s *MemoryStorage) Reset() error {
	s.cache.Clear()
	return nil
}

func (s *MemoryStorage) Close() error {
	s.cache.Close()
	return nil
}
