// Package bootstrap assembles the dataset pipeline and the pricing service from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/config"
	"github.com/kailas-cloud/rentprice/internal/dataset"
	"github.com/kailas-cloud/rentprice/internal/db"
	dbRedis "github.com/kailas-cloud/rentprice/internal/db/redis"
	"github.com/kailas-cloud/rentprice/internal/metrics"
	"github.com/kailas-cloud/rentprice/internal/repository/snapshot"
	"github.com/kailas-cloud/rentprice/internal/transport/httpsource"
	pricinguc "github.com/kailas-cloud/rentprice/internal/usecase/pricing"
)

// OpenCache connects to the snapshot cache. Returns nil when the cache is disabled.
// Redis and Valkey speak the same protocol and share the rueidis store.
func OpenCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}

	logger.Info("Connected to snapshot cache",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store, nil
}

// NewLoader builds the dataset loader: HTTP or file source, wrapped by the
// snapshot cache when store is non-nil.
func NewLoader(cfg config.Config, store db.KVStore, logger *zap.Logger) (*dataset.Loader, error) {
	ds := cfg.Dataset

	format, err := dataset.DetectFormat(ds.Format, ds.Source)
	if err != nil {
		return nil, err
	}

	var src dataset.Source = httpsource.New(&httpsource.Config{
		Source:   ds.Source,
		Timeout:  time.Duration(ds.FetchTimeoutSec) * time.Second,
		Retries:  ds.Retries,
		Backoff:  time.Duration(ds.RetryBackoffMs) * time.Millisecond,
		MaxBytes: int64(ds.MaxBytesMB) << 20,
		Logger:   logger,
	})
	if store != nil {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		src = snapshot.New(src, store, ttl, metrics.DatasetCacheTotal, logger)
	}

	return dataset.NewLoader(src, format, logger), nil
}

// NewPricing creates the pricing service with the configured split.
func NewPricing(cfg config.Config, loader pricinguc.TableLoader, logger *zap.Logger) *pricinguc.Service {
	return pricinguc.New(loader, *cfg.Dataset.Seed, cfg.Dataset.TestRatio, logger)
}
