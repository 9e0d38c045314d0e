package app

import (
	"context"
	"errors"
	"log"
	"time"

	"course-match/internal/cache"
	"course-match/internal/config"
	"course-match/internal/database"
	dbpostgres "course-match/internal/database/postgres"
	"course-match/internal/delivery/http/handler"
	"course-match/internal/delivery/http/middleware"
	"course-match/internal/domain/course"
	"course-match/internal/domain/policy"
	"course-match/internal/domain/selection"
	"course-match/internal/embedding"
	rediscache "course-match/internal/infrastructure/cache"
	"course-match/internal/pkg/jwt"
	"course-match/internal/repository"
	"course-match/internal/telemetry"
	"course-match/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
)

// Container wires the whole subsystem at one composition root; the result
// cache is constructed here once and injected, never reached as an ambient
// global.
type Container struct {
	Config config.Config
	DB     database.DB
	Redis  *rediscache.Redis

	ResultCache *cache.Dynamic[course.AvailabilityResult]
	Registry    *prometheus.Registry

	Availability usecase.AvailabilityUsecase
	CacheAdmin   usecase.CacheAdminUsecase

	AvailabilityHandler *handler.AvailabilityHandler
	CacheAdminHandler   *handler.CacheAdminHandler
	Auth                *middleware.AuthMiddleware

	logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	rds := rediscache.NewRedis(cfg.Redis, logger)

	inner := embedding.NewHTTPEmbedder(cfg.Embedding.BaseURL, cfg.Embedding.Model, cfg.Embedding.Timeout, logger)
	if inner == nil {
		_ = db.Close()
		return nil, errors.New("EMBEDDING_BASE_URL is required")
	}
	embedder := embedding.NewCachedEmbedder(inner, rds, cfg.Redis.TTL, logger)

	table := policy.FromEnv()

	resultCache := cache.NewDynamic[course.AvailabilityResult](
		cfg.Cache.MaxSize,
		cfg.Cache.TTL,
		course.AvailabilityResult.Clone,
		logger,
	)

	registry := prometheus.NewRegistry()
	sink := telemetry.NewPrometheusSink(registry)

	var strategy selection.Strategy
	if cfg.Search.QuotaStrategy {
		strategy = selection.NewQuotaSelector(table)
	} else {
		strategy = selection.NewTopNSelector()
	}

	repo := repository.NewPostgresCourseRepository(db, table, logger)

	availability := usecase.NewAvailabilityUsecase(
		repo, embedder, resultCache, table, strategy, sink, logger,
		usecase.AvailabilityOptions{
			Platform:        cfg.App.Platform,
			PerSkillTimeout: cfg.Search.PerSkillTimeout,
			MinThreshold:    cfg.Search.MinThreshold,
			DetailedResults: cfg.Search.DetailedResults,
		},
	)
	cacheAdmin := usecase.NewCacheAdminUsecase(resultCache)

	var auth *middleware.AuthMiddleware
	if cfg.Auth.AdminJWTSecret != "" {
		auth = middleware.NewAuthMiddleware(jwt.NewHMACService(cfg.Auth.AdminJWTSecret))
	}

	return &Container{
		Config:              cfg,
		DB:                  db,
		Redis:               rds,
		ResultCache:         resultCache,
		Registry:            registry,
		Availability:        availability,
		CacheAdmin:          cacheAdmin,
		AvailabilityHandler: handler.NewAvailabilityHandler(availability),
		CacheAdminHandler:   handler.NewCacheAdminHandler(cacheAdmin),
		Auth:                auth,
		logger:              logger,
	}, nil
}

// RunSweeper blocks until ctx is cancelled, periodically evicting expired
// result-cache entries.
func (c *Container) RunSweeper(ctx context.Context) {
	cache.RunSweeper(ctx, c.ResultCache, c.Config.Cache.SweepInterval, c.logger)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
