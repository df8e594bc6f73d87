package main

import (
	"comments/app/comment"
	"comments/domain"
	"comments/infra/cache"
	"comments/infra/memory"
	"comments/infra/postgres"
	"comments/infra/rabbitmq"
	"comments/internal/middleware"
	"comments/pkg/config"
	"comments/pkg/events"
	"comments/pkg/httperror"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res], status int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
				return writeError(c, httperror.UnprocessableEntity(
					"request.invalid_body",
					"Invalid body",
					fiber.Map{"error": err.Error()},
				))
			}
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ReqHeaderParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_headers",
				"Invalid headers",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		if status == fiber.StatusNoContent {
			return c.SendStatus(status)
		}

		return c.Status(status).JSON(res)
	}
}

// healthReporter is implemented by every comment store.
type healthReporter interface {
	PingContext(ctx context.Context) error
	GetPoolStats() map[string]interface{}
}

type commentStore interface {
	comment.Repository
	healthReporter
	Close() error
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("storeDriver", appConfig.StoreDriver),
		zap.String("cacheDriver", appConfig.CacheDriver),
		zap.String("cacheListKey", appConfig.CacheListKey),
		zap.Duration("cacheTTL", appConfig.CacheTTL),
	)

	store, err := openStore(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open comment store", zap.Error(err))
	}

	storage, err := cache.New(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open cache storage", zap.Error(err))
	}

	publisher := openPublisher(appConfig)

	service := comment.NewService(store, storage, publisher, comment.Config{
		ListKey:          appConfig.CacheListKey,
		ParentGuardDepth: appConfig.ParentGuardDepth,
	})

	app := newApp(service, store, publisher)

	// Start server in a goroutine
	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app)

	if err := publisher.Close(); err != nil {
		zap.L().Error("Failed to close publisher", zap.Error(err))
	}
	if err := storage.Close(); err != nil {
		zap.L().Error("Failed to close cache storage", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		zap.L().Error("Failed to close comment store", zap.Error(err))
	}
}

func newApp(service *comment.Service, health healthReporter, publisher events.Publisher) *fiber.App {
	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.NewRequestContextMiddleware())

	app.Get("/healthz", healthzHandler(health, publisher))

	getCommentsHandler := comment.NewGetCommentsHandler(service)
	getCommentHandler := comment.NewGetCommentHandler(service)
	getRepliesHandler := comment.NewGetRepliesHandler(service)
	createCommentHandler := comment.NewCreateCommentHandler(service)
	updateCommentHandler := comment.NewUpdateCommentHandler(service)
	deleteCommentHandler := comment.NewDeleteCommentHandler(service)

	publicRoutes := app.Group("/api/v1")
	publicRoutes.Get("/comments", handle[comment.GetCommentsRequest, comment.GetCommentsResponse](getCommentsHandler, fiber.StatusOK))
	publicRoutes.Post("/comments", handle[comment.CreateCommentRequest, domain.Comment](createCommentHandler, fiber.StatusCreated))
	publicRoutes.Get("/comments/:id", handle[comment.GetCommentRequest, domain.Comment](getCommentHandler, fiber.StatusOK))
	publicRoutes.Put("/comments/:id", handle[comment.UpdateCommentRequest, domain.Comment](updateCommentHandler, fiber.StatusOK))
	publicRoutes.Delete("/comments/:id", handle[comment.DeleteCommentRequest, comment.DeleteCommentResponse](deleteCommentHandler, fiber.StatusNoContent))
	publicRoutes.Get("/comments/:id/replies", handle[comment.GetRepliesRequest, comment.GetCommentsResponse](getRepliesHandler, fiber.StatusOK))

	return app
}

// healthzHandler fails only on the store. Events are best-effort, so a
// broken broker connection is reported without failing the check.
func healthzHandler(health healthReporter, publisher events.Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := health.PingContext(ctx); err != nil {
			return writeError(c, httperror.ServiceUnavailable(
				"health.store_unavailable",
				"Comment store is unavailable",
				err,
			))
		}

		return c.JSON(fiber.Map{
			"status": "ok",
			"events": eventsStatus(publisher),
			"pool":   health.GetPoolStats(),
		})
	}
}

func eventsStatus(publisher events.Publisher) string {
	checker, ok := publisher.(interface{ IsHealthy() bool })
	if !ok {
		return "disabled"
	}
	if !checker.IsHealthy() {
		zap.L().Warn("Event publisher connection is down")
		return "down"
	}
	return "ok"
}

func openStore(cfg *config.AppConfig) (commentStore, error) {
	switch cfg.StoreDriver {
	case "memory":
		zap.L().Warn("Using in-memory comment store, data is lost on restart")
		return memory.NewRepository(), nil
	case "", "postgres":
		pgRepository := postgres.NewPgRepository(
			cfg.PostgresHost,
			cfg.PostgresDatabase,
			cfg.PostgresUsername,
			cfg.PostgresPassword,
			cfg.PostgresPort,
			cfg.PostgresSSLMode,
		)

		if cfg.MigrateOnStart {
			if err := postgres.Migrate(pgRepository.DB(), cfg.MigrationsDir, "up"); err != nil {
				pgRepository.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}

		return pgRepository, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// openPublisher falls back to dropping events when no broker is configured
// or reachable; publishing never gates writes.
func openPublisher(cfg *config.AppConfig) events.Publisher {
	if cfg.RabbitMQURL == "" {
		zap.L().Info("RABBITMQ_URL not set, comment events are disabled")
		return events.NopPublisher{}
	}

	publisher, err := rabbitmq.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.ServiceName)
	if err != nil {
		zap.L().Error("Failed to connect publisher, comment events are disabled", zap.Error(err))
		return events.NopPublisher{}
	}

	if err := publisher.DeclareExchange(events.CommentExchange); err != nil {
		zap.L().Error("Failed to declare comment exchange", zap.Error(err))
	}

	return publisher
}

func gracefulShutdown(app *fiber.App) {
	// Create channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	zap.L().Info("Shutting down server...")

	// Shutdown with 5 second timeout
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
