// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"app/modules/appconfig"
	"app/modules/clock"
	"app/modules/db/postgres"
	"app/modules/db/redis"
	"app/modules/db/redis/counter"
	"app/modules/middleware"
	"app/modules/middleware/problem"
	"app/modules/middleware/ratelimit"
	rl "app/modules/ratelimit"
	"app/modules/server"
	"app/modules/services"
	"app/modules/telemetry"

	persistence "app/core/profile/adapters/persistence/pg"

	"app/core/profile/adapters/rest"
)

// OpenAPI specs for request validation at runtime
//
//go:embed modules/oapi/*.yaml
var validationSpecFS embed.FS

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	// cancel the context when these signals occur
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	// manual dependency injections, imo there's no need to over-engineer with DI frameworks like Fx or Wire

	// --- application config ----
	appConfig, err := appconfig.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	slog.SetLogLoggerLevel(logLevel(appConfig.LogLevel))

	clk := clock.RealClock{}

	// --- infrastructure ---

	connectionPool, err := postgres.New(
		ctx,
		&appConfig.Postgres,
		postgres.PostgresOptions{
			// assuming writer connection does not pass through pgBouncer,
			// so we can apply server-side prepared statements
			ReaderOptions: []postgres.PgxConfigOption{
				postgres.WithPgBouncerSimpleProtocol(),
			},
		},
	)
	if err != nil {
		slog.ErrorContext(ctx, "database error", slog.Any("error", err))
		exitCode = 1
		return
	}
	defer func() {
		if err := connectionPool.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "database shutdown error", slog.Any("error", err))
		}
	}()

	if err = connectionPool.HealthCheck(); err != nil {
		slog.ErrorContext(ctx, "database health check failed", slog.Any("error", err))
		exitCode = 1
		return
	}

	if appConfig.MigrateOnStart {
		if err := connectionPool.MigrateUp(); err != nil {
			slog.ErrorContext(ctx, "database migration failed", slog.Any("error", err))
			exitCode = 1
			return
		}
	}

	// Initialize reader (uses runtime replica selection) and writer (uses prepared statements on primary)
	reader := persistence.NewPostgresProfileReader(connectionPool, "user_profiles")

	writer, err := persistence.NewPostgresProfileWriter(ctx, connectionPool, "user_profiles")
	if err != nil {
		slog.ErrorContext(ctx, "profile writer initialization error", slog.Any("error", err))
		exitCode = 1
		return
	}

	otelShutdown, err := telemetry.Init(ctx, appConfig.Otel)
	if err != nil {
		slog.ErrorContext(ctx, "telemetry not properly configured", slog.Any("error", err))
		exitCode = 1
		return
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "telemetry shutdown error", slog.Any("error", err))
		}
	}()

	// Redis is optional. Without it rate limiting degrades to per-process
	// token buckets, which is fine for single-instance deployments.
	limiterFactory := rl.LocalFactory()
	if appConfig.Redis.Enabled {
		redisClient, err := redis.NewRueidisClient(ctx, appConfig.Redis)
		if err != nil {
			slog.ErrorContext(ctx, "redis not properly setup", slog.Any("error", err))
			exitCode = 1
			return
		}
		defer redisClient.Close()

		redisCounter := counter.NewRedisCounterStore(redisClient, appConfig.Env)
		limiterFactory = rl.SlidingWindowFactory(clk, redisCounter, appConfig.Env)
	}

	keyStrategies := map[ratelimit.KeyStrategyId]ratelimit.KeyFunc{
		ratelimit.RemoteIpKeyStrategy: ratelimit.RemoteIpKeyFunc,
	}

	rtp, err := ratelimit.ParsePolicy(
		limiterFactory,
		&appConfig.RateLimit,
		func(r *http.Request) ratelimit.RouteInfo {
			id := ratelimit.Pattern(r.Pattern)
			// pattern is empty if request is not matched against a pattern
			if r.Pattern == "" {
				id = ratelimit.Pattern(r.URL.Path)
			}
			return ratelimit.RouteInfo{
				ID:     id,
				Method: r.Method,
				Path:   r.URL.Path,
			}
		},
		keyStrategies,
	)
	if err != nil {
		slog.ErrorContext(ctx, "ratelimit config not properly parsed", slog.Any("error", err))
		exitCode = 1
		return
	}

	// --- application layer ---

	profileApi := rest.NewProfileService(reader, writer)

	httpMetrics, err := telemetry.NewHTTPMetrics(appConfig.Otel.ServiceName)
	if err != nil {
		slog.WarnContext(ctx, "failed to initialize HTTP metrics, continuing without metrics", slog.Any("error", err))
		httpMetrics = nil
	}

	profileSvc := services.NewProfileAPIService(
		profileApi,
		validationSpecFS,
		"modules/oapi/openapi-profile.yaml",
	)

	srv, err := server.New(
		appConfig.HTTP.Host, appConfig.HTTP.Port,
		server.WithWriteTimeout(10*time.Second),
		server.WithServices(profileSvc),
		server.WithGlobalMiddlewares(
			middleware.Telemetry(httpMetrics),
			middleware.CORS(appConfig.HTTP.CORSOrigins),
			ratelimit.NewRateLimitMiddleware(rtp),
			middleware.Recovery(func(w http.ResponseWriter, _ *http.Request, _ any) {
				problem.Write(w, problem.Internal("internal server error"))
			}),
		),
	)
	if err != nil {
		slog.ErrorContext(ctx, "init server error", slog.Any("error", err))
		exitCode = 1
		return
	}

	if err := srv.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "running server error", slog.Any("error", err))
		exitCode = 1
		return
	}
}
