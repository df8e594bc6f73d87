package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port             string `mapstructure:"PORT"`
	PostgresUsername string `mapstructure:"POSTGRES_USERNAME"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDatabase string `mapstructure:"POSTGRES_DATABASE"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	ServiceName      string `mapstructure:"SERVICE_NAME"`
	AWSEndpoint      string `mapstructure:"AWS_ENDPOINT"`
	AWSBucket        string `mapstructure:"AWS_BUCKET"`
	AWSDefaultRegion string `mapstructure:"AWS_DEFAULT_REGION"`
	AWSAccessKey     string `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretKey     string `mapstructure:"AWS_SECRET_KEY"`
	GRPCPort         string `mapstructure:"GRPC_PORT"`

	StoreDriver      string        `mapstructure:"STORE_DRIVER"`
	CacheDriver      string        `mapstructure:"CACHE_DRIVER"`
	CacheTTL         time.Duration `mapstructure:"CACHE_TTL"`
	CacheListKey     string        `mapstructure:"CACHE_LIST_KEY"`
	CacheMaxCost     int64         `mapstructure:"CACHE_MAX_COST"`
	CacheBadgerPath  string        `mapstructure:"CACHE_BADGER_PATH"`
	ParentGuardDepth int           `mapstructure:"COMMENTS_PARENT_GUARD_DEPTH"`
	MigrationsDir    string        `mapstructure:"MIGRATIONS_DIR"`
	MigrateOnStart   bool          `mapstructure:"MIGRATE_ON_START"`
	RedisURL         string        `mapstructure:"REDIS_URL"`
}

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	err := viper.Unmarshal(&appConfig)
	if err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	return &appConfig
}

func bindEnvVariables() {
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("POSTGRES_USERNAME")
	_ = viper.BindEnv("POSTGRES_PASSWORD")
	_ = viper.BindEnv("POSTGRES_DATABASE")
	_ = viper.BindEnv("POSTGRES_SSLMODE")
	_ = viper.BindEnv("POSTGRES_HOST")
	_ = viper.BindEnv("POSTGRES_PORT")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("SERVICE_NAME")
	_ = viper.BindEnv("AWS_ENDPOINT")
	_ = viper.BindEnv("AWS_BUCKET")
	_ = viper.BindEnv("AWS_DEFAULT_REGION")
	_ = viper.BindEnv("AWS_ACCESS_KEY")
	_ = viper.BindEnv("AWS_SECRET_KEY")
	_ = viper.BindEnv("GRPC_PORT")
	_ = viper.BindEnv("STORE_DRIVER")
	_ = viper.BindEnv("CACHE_DRIVER")
	_ = viper.BindEnv("CACHE_TTL")
	_ = viper.BindEnv("CACHE_LIST_KEY")
	_ = viper.BindEnv("CACHE_MAX_COST")
	_ = viper.BindEnv("CACHE_BADGER_PATH")
	_ = viper.BindEnv("COMMENTS_PARENT_GUARD_DEPTH")
	_ = viper.BindEnv("MIGRATIONS_DIR")
	_ = viper.BindEnv("MIGRATE_ON_START")
	_ = viper.BindEnv("REDIS_URL")
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("SERVICE_NAME", "comments")
	viper.SetDefault("GRPC_PORT", "9090")
	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("CACHE_DRIVER", "memory")
	viper.SetDefault("CACHE_TTL", "1h")
	viper.SetDefault("CACHE_LIST_KEY", "comments")
	viper.SetDefault("CACHE_MAX_COST", 64<<20)
	viper.SetDefault("COMMENTS_PARENT_GUARD_DEPTH", 0)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("MIGRATE_ON_START", false)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
}
