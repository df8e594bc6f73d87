package main

import (
	"comments/app/comment"
	"comments/infra/cache"
	"comments/infra/grpc"
	"comments/infra/postgres"
	"comments/pkg/config"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Initialize logger
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Comments gRPC Service starting...")

	appConfig := config.Read()

	// The in-memory store lives inside the API process, so this binary
	// always reads from Postgres.
	if appConfig.StoreDriver == "memory" {
		zap.L().Fatal("gRPC service requires STORE_DRIVER=postgres")
	}

	grpcServer, err := grpc.NewServer(appConfig)
	if err != nil {
		zap.L().Error("failed to create grpc server", zap.Error(err))
		os.Exit(1)
	}

	// Initialize PostgreSQL repository
	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	defer pgRepository.Close()

	// Writes land in the API process; only a shared cache sees their
	// invalidations.
	storage, err := cache.NewReplica(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open cache storage", zap.Error(err))
	}
	defer storage.Close()

	// Reads only; no publisher needed.
	service := comment.NewService(pgRepository, storage, nil, comment.Config{
		ListKey: appConfig.CacheListKey,
	})

	grpc.RegisterCommentServiceServer(grpcServer.GetGRPCServer(), grpc.NewCommentService(service))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go monitorStore(ctx, grpcServer, pgRepository)

	zap.L().Info("starting gRPC server...", zap.String("port", appConfig.GRPCPort))
	go func() {
		if err := grpcServer.Start(); err != nil {
			zap.L().Error("failed to start grpc server", zap.Error(err))
			os.Exit(1)
		}
	}()

	gracefulShutdown(grpcServer)
}

// monitorStore keeps the health service in line with store reachability and
// logs connection pool stats.
func monitorStore(ctx context.Context, grpcServer *grpc.Server, pgRepository *postgres.PgRepository) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		err := pgRepository.PingContext(pingCtx)
		if err != nil {
			zap.L().Warn("Comment store ping failed", zap.Error(err))
		}
		grpcServer.SetServingStatus("", err == nil)
		grpcServer.SetServingStatus(grpc.CommentServiceName, err == nil)
	}

	check()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
			zap.L().Info("Connection pool stats", zap.Any("stats", pgRepository.GetPoolStats()))
		}
	}
}

func gracefulShutdown(grpcServer *grpc.Server) {
	// Create channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := grpcServer.GracefulStop(); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}
