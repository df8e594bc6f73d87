package main

import (
	"comments/infra/postgres"
	"comments/pkg/config"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Usage: migrate [up|down|status|version|redo]
func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	appConfig := config.Read()

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	defer pgRepository.Close()

	zap.L().Info("Running migrations",
		zap.String("command", command),
		zap.String("dir", appConfig.MigrationsDir),
	)

	if err := postgres.Migrate(pgRepository.DB(), appConfig.MigrationsDir, command); err != nil {
		zap.L().Error("Migration failed", zap.Error(err))
		os.Exit(1)
	}

	zap.L().Info("Migrations finished", zap.String("command", command))
}
