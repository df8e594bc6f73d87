package cache

import (
	"comments/pkg/config"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	DriverMemory = "memory"
	DriverBadger = "badger"
	DriverS3     = "s3"
	DriverRedis  = "redis"
)

// New opens the cache storage selected by CACHE_DRIVER.
func New(cfg *config.AppConfig) (fiber.Storage, error) {
	zap.L().Info("Opening cache storage",
		zap.String("driver", cfg.CacheDriver),
		zap.Duration("ttl", cfg.CacheTTL),
	)

	switch cfg.CacheDriver {
	case "", DriverMemory:
		return NewMemoryStorage(cfg.CacheMaxCost, cfg.CacheTTL)
	case DriverBadger:
		return NewBadgerStorage(cfg.CacheBadgerPath, cfg.CacheTTL)
	case DriverS3:
		return NewS3Storage(cfg), nil
	case DriverRedis:
		return NewRedisStorage(cfg)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.CacheDriver)
	}
}

// Shared reports whether every process opening the driver sees the same
// entries, and with them each other's invalidations.
func Shared(driver string) bool {
	return driver == DriverS3 || driver == DriverRedis
}

// NewReplica opens the cache for a process that serves reads but never
// takes writes. A process-local driver would never see the writer's
// invalidations, so such replicas read through to the store instead.
func NewReplica(cfg *config.AppConfig) (fiber.Storage, error) {
	if !Shared(cfg.CacheDriver) {
		zap.L().Warn("Cache driver is process-local, replica reads go to the store",
			zap.String("driver", cfg.CacheDriver),
		)
		return NopStorage{}, nil
	}

	return New(cfg)
}
