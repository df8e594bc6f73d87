package cache

import (
	"comments/pkg/config"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storages(t *testing.T) map[string]fiber.Storage {
	t.Helper()

	memory, err := NewMemoryStorage(1<<20, time.Minute)
	require.NoError(t, err)

	badgerStorage, err := NewBadgerStorage("", time.Minute)
	require.NoError(t, err)

	t.Cleanup(func() {
		memory.Close()
		badgerStorage.Close()
	})

	return map[string]fiber.Storage{
		DriverMemory: memory,
		DriverBadger: badgerStorage,
	}
}

func TestStorage_SetGetDelete(t *testing.T) {
	for name, storage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			val, err := storage.Get("comments")
			require.NoError(t, err)
			assert.Nil(t, val, "missing key must read as nil")

			require.NoError(t, storage.Set("comments", []byte(`[{"id":1}]`), 0))

			val, err = storage.Get("comments")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[{"id":1}]`), val)

			require.NoError(t, storage.Delete("comments"))
			require.NoError(t, storage.Delete("comments"), "deleting an absent key is a no-op")

			val, err = storage.Get("comments")
			require.NoError(t, err)
			assert.Nil(t, val)
		})
	}
}

func TestStorage_IgnoresEmptyKeyAndValue(t *testing.T) {
	for name, storage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, storage.Set("", []byte("x"), 0))
			require.NoError(t, storage.Set("empty", nil, 0))

			val, err := storage.Get("empty")
			require.NoError(t, err)
			assert.Nil(t, val)
		})
	}
}

func TestStorage_Reset(t *testing.T) {
	for name, storage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, storage.Set("a", []byte("1"), 0))
			require.NoError(t, storage.Set("b", []byte("2"), 0))

			require.NoError(t, storage.Reset())

			val, err := storage.Get("a")
			require.NoError(t, err)
			assert.Nil(t, val)
		})
	}
}

func TestMemoryStorage_DefaultTTLExpires(t *testing.T) {
	storage, err := NewMemoryStorage(1<<20, 50*time.Millisecond)
	require.NoError(t, err)
	defer storage.Close()

	require.NoError(t, storage.Set("comments", []byte("[]"), 0))

	assert.Eventually(t, func() bool {
		val, err := storage.Get("comments")
		return err == nil && val == nil
	}, 3*time.Second, 20*time.Millisecond)
}

func TestNew_SelectsDriver(t *testing.T) {
	memory, err := New(&config.AppConfig{CacheDriver: DriverMemory, CacheMaxCost: 1 << 20, CacheTTL: time.Minute})
	require.NoError(t, err)
	defer memory.Close()
	assert.IsType(t, &MemoryStorage{}, memory)

	badgerStorage, err := New(&config.AppConfig{CacheDriver: DriverBadger, CacheTTL: time.Minute})
	require.NoError(t, err)
	defer badgerStorage.Close()
	assert.IsType(t, &BadgerStorage{}, badgerStorage)

	_, err = New(&config.AppConfig{CacheDriver: "memcached"})
	assert.EqualError(t, err, `unknown cache driver "memcached"`)
}

func TestShared(t *testing.T) {
	assert.True(t, Shared(DriverS3))
	assert.True(t, Shared(DriverRedis))
	assert.False(t, Shared(DriverMemory))
	assert.False(t, Shared(DriverBadger))
	assert.False(t, Shared(""))
}

func TestNewReplica_ProcessLocalDriversReadThrough(t *testing.T) {
	for _, driver := range []string{"", DriverMemory, DriverBadger} {
		t.Run(driver, func(t *testing.T) {
			storage, err := NewReplica(&config.AppConfig{CacheDriver: driver, CacheMaxCost: 1 << 20, CacheTTL: time.Minute})
			require.NoError(t, err)
			assert.IsType(t, NopStorage{}, storage)

			require.NoError(t, storage.Set("comments", []byte("[]"), 0))
			val, err := storage.Get("comments")
			require.NoError(t, err)
			assert.Nil(t, val)
		})
	}
}

func TestNewRedisStorage_UnreachableServerIsAnError(t *testing.T) {
	_, err := NewRedisStorage(&config.AppConfig{RedisURL: "redis://127.0.0.1:1/0"})
	assert.Error(t, err)
}
