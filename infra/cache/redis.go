package cache

import (
	"comments/pkg/config"
	"fmt"

	"github.com/gofiber/storage/redis/v3"
)

// NewRedisStorage connects to REDIS_URL. The driver pings on construction
// and panics when the server is unreachable; that is reported as an error.
func NewRedisStorage(cfg *config.AppConfig) (storage *redis.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			storage, err = nil, fmt.Errorf("connect redis cache: %v", r)
		}
	}()

	return redis.New(redis.Config{
		URL:      cfg.RedisURL,
		Reset:    false,
		PoolSize: 10,
	}), nil
}
