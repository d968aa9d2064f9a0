// Package snapshot caches raw dataset bytes in a key-value store so restarts
// train on the same snapshot while the entry lives.
package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/db"
)

const keyPrefix = "rentprice:dataset:"

// source is the wrapped dataset fetcher.
type source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// store is the consumer interface for the snapshot cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSource serves the dataset from the cache and falls back to the inner source.
type CachedSource struct {
	inner      source
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner source,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSource {
	return &CachedSource{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Name returns the wrapped source name.
func (c *CachedSource) Name() string { return c.inner.Name() }

// Fetch returns cached bytes or calls the inner source and caches the result.
// Cache failures are logged and never fail the fetch.
func (c *CachedSource) Fetch(ctx context.Context) ([]byte, error) {
	key := Key(c.inner.Name())

	if data, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		c.logger.Info("Dataset served from snapshot cache", zap.String("key", key), zap.Int("bytes", len(data)))
		return data, nil
	}

	c.incCache("miss")

	data, err := c.inner.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}

	c.putToCache(ctx, key, data)
	return data, nil
}

// Key returns the cache key for a dataset location.
func Key(name string) string {
	h := sha256.Sum256([]byte(name))
	return keyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedSource) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSource) getFromCache(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get dataset snapshot", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (c *CachedSource) putToCache(ctx context.Context, key string, data []byte) {
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache dataset snapshot", zap.String("key", key), zap.Error(err))
	}
}
