package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/cache"
	"github.com/cliptube/backend/internal/config"
	"github.com/cliptube/backend/internal/db"
	"github.com/cliptube/backend/internal/handlers"
	"github.com/cliptube/backend/internal/middleware"
	"github.com/cliptube/backend/internal/repositories"
	"github.com/cliptube/backend/internal/storage"
)

// appDeps bundles the wired dependency graph plus the pieces the serve loop
// needs beyond the handlers: the token manager for auth middleware and the
// resources that want a graceful shutdown.
type appDeps struct {
	Handlers handlers.Dependencies
	Tokens   *auth.Manager

	cleaner    *storage.AssetCleaner
	statsCache *cache.RedisStatsCache
}

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. The object store and Redis are optional: without a bucket the
// upload endpoints report the store unavailable, and without Redis the
// dashboard reads aggregate directly from PostgreSQL.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) (appDeps, error) {
	users := repositories.NewPostgresUserRepository(pool)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, users)

	var stats handlers.StatsProvider = repositories.NewPostgresStatsRepository(pool)
	var statsCache *cache.RedisStatsCache
	if cfg.RedisURL != "" {
		cached, err := cache.NewRedisStatsCache(cfg.RedisURL, repositories.NewPostgresStatsRepository(pool), cfg.StatsCacheTTL)
		if err != nil {
			return appDeps{}, err
		}
		stats = cached
		statsCache = cached
	}

	var media handlers.MediaStore
	var cleaner *storage.AssetCleaner
	if cfg.ObjectStore.Bucket != "" {
		store, err := storage.NewS3Store(ctx, cfg.ObjectStore)
		if err != nil {
			return appDeps{}, err
		}
		media = store
		cleaner = storage.NewAssetCleaner(store, storage.CleanerConfig{
			Workers:   cfg.CleanerWorkers,
			QueueSize: cfg.CleanerQueue,
		}, logger)
	} else {
		logger.Warn("object store not configured, uploads disabled")
	}

	deps := handlers.Dependencies{
		Users:         users,
		Tokens:        tokens,
		Videos:        repositories.NewPostgresVideoRepository(pool),
		Comments:      repositories.NewPostgresCommentRepository(pool),
		Tweets:        repositories.NewPostgresTweetRepository(pool),
		Likes:         repositories.NewPostgresLikeRepository(pool),
		Playlists:     repositories.NewPostgresPlaylistRepository(pool),
		Subscriptions: repositories.NewPostgresSubscriptionRepository(pool),
		Stats:         stats,
		Media:         media,
		AuthLimiter:   middleware.NewIPRateLimiter(cfg.AuthRateRequests, cfg.AuthRateWindow, cfg.AuthRateRequests, 10*time.Minute),
	}
	if cleaner != nil {
		deps.Cleaner = cleaner
	}

	return appDeps{
		Handlers:   deps,
		Tokens:     tokens,
		cleaner:    cleaner,
		statsCache: statsCache,
	}, nil
}

// shutdown drains the asset cleaner and closes the stats cache connection.
func (d appDeps) shutdown(ctx context.Context, logger *slog.Logger) {
	if d.cleaner != nil {
		if err := d.cleaner.Shutdown(ctx); err != nil {
			logger.Error("shut down asset cleaner", "error", err)
		}
	}
	if d.statsCache != nil {
		if err := d.statsCache.Close(); err != nil {
			logger.Error("close stats cache", "error", err)
		}
	}
}
