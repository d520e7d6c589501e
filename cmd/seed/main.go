// Command seed upserts the built-in regions, trips and achievements and
// drops cached catalog reads.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SNMDESERT/peak-finder/internal/catalog"
	"github.com/SNMDESERT/peak-finder/internal/config"
	"github.com/SNMDESERT/peak-finder/internal/db"
	"github.com/SNMDESERT/peak-finder/internal/logging"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var seedFn = catalog.Seed

func main() {
	cfg := config.Load()
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log = zap.NewNop()
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Error("postgres connection failed", zap.Error(err))
		os.Exit(1)
	}
	defer pg.Close()
	rdb := db.ConnectRedis(cfg)

	if err := run(ctx, cfg, pg, rdb, log); err != nil {
		log.Error("seed failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, pool db.Pool, rdb *redis.Client, log *zap.Logger) error {
	counts, err := seedFn(ctx, pool)
	if err != nil {
		return err
	}
	log.Info("catalog seeded",
		zap.Int("regions", counts.Regions),
		zap.Int("trips", counts.Trips),
		zap.Int("achievements", counts.Achievements))

	cache := catalog.NewService(pool, rdb, cfg.CatalogCacheTTL, log)
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn("catalog cache not cleared", zap.Error(err))
	}
	return nil
}
