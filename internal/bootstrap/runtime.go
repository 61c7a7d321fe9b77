// Package bootstrap wires configuration, storage, cache and telemetry into a
// seed run.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"alxtravel/internal/cache"
	"alxtravel/internal/config"
	"alxtravel/internal/database"
	"alxtravel/internal/observability"
	"alxtravel/internal/repository"
	"alxtravel/internal/seed"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Version is stamped at build time with -ldflags "-X alxtravel/internal/bootstrap.Version=...".
var Version = "dev"

const serviceName = "alxtravel-seed"

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema runs AutoMigrate after connecting.
	ApplySchema bool
	// LogOutput receives diagnostic logs; stderr when nil.
	LogOutput io.Writer
}

// Runtime holds the connections a seed run needs.
type Runtime struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Cache   *cache.Coordinator
	Metrics *observability.SeedMetrics
	Logger  *slog.Logger

	shutdownTracing func(context.Context) error
}

// InitRuntime configures logging and tracing, then connects to the database
// and, when configured, Redis. An unreachable Redis is logged and skipped.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logOut := opts.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}
	logger := observability.NewLogger(logOut, level, cfg.LogFormat)
	observability.SetLogger(logger)

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing setup failed: %w", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{
		ApplySchema: opts.ApplySchema,
		Logger:      logger,
	})
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var client *redis.Client
	if cfg.RedisURL != "" {
		client, err = cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache coordination",
				slog.String("error", err.Error()))
			client = nil
		} else {
			logger.Info("Redis connected successfully")
		}
	}

	return &Runtime{
		Config:          cfg,
		DB:              db,
		Redis:           client,
		Cache:           cache.NewCoordinator(client, logger),
		Metrics:         observability.NewSeedMetrics(),
		Logger:          logger,
		shutdownTracing: shutdown,
	}, nil
}

// Runner builds a seed runner over the runtime's database, configured from
// the runtime's settings and printing progress to out.
func (rt *Runtime) Runner(out io.Writer) *seed.Runner {
	cfg := rt.Config
	store := repository.NewGormStore(rt.DB,
		repository.WithMetrics(rt.Metrics),
		repository.WithLogger(rt.Logger),
	)

	opts := []seed.Option{
		seed.WithOutput(out),
		seed.WithLogger(rt.Logger),
		seed.WithMetrics(rt.Metrics),
		seed.WithTracer(observability.Tracer()),
		seed.WithTransaction(cfg.SeedTransactional),
		seed.WithRandom(seed.NewRandom(cfg.SeedRandomSeed)),
	}
	if cfg.SeedSkipBcrypt {
		opts = append(opts, seed.WithPasswordHasher(seed.PlainPassword))
	}
	return seed.NewRunner(store, opts...)
}

// Seed performs one seed run while holding the seed lock, then drops cached
// listings and exports metrics.
func (rt *Runtime) Seed(ctx context.Context, out io.Writer) (seed.Summary, error) {
	owner := uuid.NewString()
	if err := rt.Cache.AcquireSeedLock(ctx, owner, rt.Config.SeedLockTTL()); err != nil {
		return seed.Summary{}, err
	}
	defer func() {
		if err := rt.Cache.ReleaseSeedLock(context.WithoutCancel(ctx), owner); err != nil {
			rt.Logger.Warn("Failed to release seed lock", slog.String("error", err.Error()))
		}
	}()

	summary, err := rt.Runner(out).Run(ctx)

	if werr := rt.Metrics.WriteTextfile(rt.Config.MetricsTextfile); werr != nil {
		rt.Logger.Warn("Failed to write metrics textfile",
			slog.String("path", rt.Config.MetricsTextfile),
			slog.String("error", werr.Error()))
	}
	if err != nil {
		return seed.Summary{}, err
	}

	if _, err := rt.Cache.InvalidateListings(ctx); err != nil {
		rt.Logger.Warn("Failed to invalidate listing cache", slog.String("error", err.Error()))
	}
	return summary, nil
}

// Close releases every connection and flushes pending spans.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	if rt.Redis != nil {
		errs = append(errs, rt.Redis.Close())
	}
	if rt.DB != nil {
		errs = append(errs, database.Close(rt.DB))
	}
	if rt.shutdownTracing != nil {
		errs = append(errs, rt.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}
