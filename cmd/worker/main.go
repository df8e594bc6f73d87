package main

import (
	"comments/infra/cache"
	"comments/infra/rabbitmq"
	"comments/internal/consumers"
	"comments/pkg/config"
	"comments/pkg/events"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Comments Worker Service starting...")

	// Load application config
	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("cacheDriver", appConfig.CacheDriver),
		zap.String("cacheListKey", appConfig.CacheListKey),
	)

	// Validate RabbitMQ URL
	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for worker service")
	}

	// A process-local cache would only invalidate the worker's own copy.
	if !cache.Shared(appConfig.CacheDriver) {
		zap.L().Warn("Worker invalidation only reaches other processes with a shared cache",
			zap.String("cacheDriver", appConfig.CacheDriver),
		)
	}

	storage, err := cache.New(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open cache storage", zap.Error(err))
	}
	defer storage.Close()

	invalidationHandler := consumers.NewCacheInvalidationHandler(storage, appConfig.CacheListKey)

	// Queue name: {service}.{purpose}.{events}.{version}
	commentConsumerConfig := rabbitmq.ConsumerConfig{
		Exchange:       events.CommentExchange,
		QueueName:      "comments.cache.all.v1",
		RoutingKeys:    []string{"comment.*.v1"},
		ServiceName:    appConfig.ServiceName + "-worker",
		PrefetchCount:  10,
		WorkerPoolSize: 4,
	}

	commentConsumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, commentConsumerConfig)
	if err != nil {
		zap.L().Fatal("Failed to create comment consumer", zap.Error(err))
	}
	defer commentConsumer.Close()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		zap.L().Info("Starting comment event consumer...")
		if err := commentConsumer.Consume(ctx, invalidationHandler.HandleEvent); err != nil {
			if !errors.Is(err, context.Canceled) {
				zap.L().Error("Comment consumer error", zap.Error(err))
			}
		}
	}()

	zap.L().Info("Worker service started successfully. Waiting for events...",
		zap.String("exchange", events.CommentExchange),
	)

	// Wait for shutdown signal
	select {
	case <-sigChan:
		zap.L().Info("Shutdown signal received, stopping worker service...")
	case <-done:
		zap.L().Warn("Consumer stopped, shutting down worker service...")
	}
	cancel()
	<-done

	zap.L().Info("Worker service stopped gracefully")
}
