package appconfig

import (
	"errors"
	"strings"

	"app/modules/db/postgres"
	"app/modules/db/redis"
	"app/modules/middleware/ratelimit"
	"app/modules/telemetry"

	"github.com/caarlos0/env/v11"
)

type HTTPConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`

	// Browser origins allowed to call the API. Defaults cover the usual
	// local frontend dev servers.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

type Config struct {
	Env      string `env:"ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Run embedded migrations on startup. Convenient for dev; production
	// deployments usually run them as a separate step.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"true"`

	// --- core infra ----
	HTTP     HTTPConfig              `envPrefix:"HTTP_"`
	Redis    redis.RedisConfig       `envPrefix:"REDIS_"`
	Postgres postgres.PostgresConfig `envPrefix:"POSTGRES_"`

	// --- middlewares ----
	RateLimit ratelimit.RestHTTPConfig `envPrefix:"RATE_LIMIT_"`

	// --- otel ----
	// since it has special naming conventions, we do not use prefix here
	Otel telemetry.Config
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(c *Config) error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("appconfig: LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}
