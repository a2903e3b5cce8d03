package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// ErrMissingSecret is returned when JWT_SECRET is absent. Token issuance and
// verification cannot work without it, so startup must halt.
var ErrMissingSecret = errors.New("config: JWT_SECRET is required")

type Config struct {
	Port            string `env:"PORT,             default=8080"`
	Env             string `env:"ENV,              default=development"`
	JWTSecret       string `env:"JWT_SECRET"`
	LogLevel        string `env:"LOG_LEVEL,        default=info"`
	ActivityWorkers int    `env:"ACTIVITY_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=task_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates the settings the process cannot run without.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return &cfg, nil
}
