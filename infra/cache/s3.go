package cache

import (
	"comments/pkg/config"
	"time"

	"github.com/gofiber/storage/s3/v2"
)

// NewS3Storage returns a bucket-backed fiber.Storage shared by every
// instance. Object expiry is governed by the bucket's lifecycle rules.
func NewS3Storage(cfg *config.AppConfig) *s3.Storage {
	return s3.New(s3.Config{
		Endpoint: cfg.AWSEndpoint,
		Bucket:   cfg.AWSBucket,
		Region:   cfg.AWSDefaultRegion,
		Credentials: s3.Credentials{
			AccessKey:       cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
		MaxAttempts:    3,
		RequestTimeout: time.Second * 10,
		Reset:          false,
	})
}
