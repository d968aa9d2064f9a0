package rentprice

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/rentprice/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	source       string
	format       string
	seed         *uint64
	testRatio    float64
	fetchTimeout time.Duration
	retries      int

	driver   string // "none", "valkey" or "redis"
	addrs    []string
	password string
	cacheTTL time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSource sets the dataset location: an http(s) URL, a file:// URL or a path.
// Defaults to the public StreetEasy Manhattan snapshot.
func WithSource(source string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = source
	})
}

// WithFormat forces the dataset format ("csv" or "parquet").
// By default it is detected from the source extension.
func WithFormat(format string) Option {
	return optionFunc(func(c *clientConfig) {
		c.format = format
	})
}

// WithSeed sets the train/test split seed. Default: 6.
func WithSeed(seed uint64) Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = &seed
	})
}

// WithTestRatio sets the held-out fraction. Default: 0.2.
func WithTestRatio(ratio float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.testRatio = ratio
	})
}

// WithFetchTimeout bounds each download attempt and sets how many times
// a failed download is retried.
func WithFetchTimeout(timeout time.Duration, retries int) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchTimeout = timeout
		c.retries = retries
	})
}

// WithValkey caches the raw dataset in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches the raw dataset in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheTTL sets how long a cached dataset stays valid. Default: 24h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for client calls.
// Pass nil to disable (default).
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers call counts and durations on the given registerer.
// Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// serviceConfig maps client options onto the service configuration.
func (c *clientConfig) serviceConfig() config.Config {
	cfg := config.Config{
		Dataset: config.DatasetConfig{
			Source:    c.source,
			Format:    c.format,
			Retries:   c.retries,
			Seed:      c.seed,
			TestRatio: c.testRatio,
		},
		Cache: config.CacheConfig{
			Driver:   c.driver,
			Addrs:    c.addrs,
			Password: c.password,
		},
	}
	if c.fetchTimeout > 0 {
		cfg.Dataset.FetchTimeoutSec = max(int(c.fetchTimeout/time.Second), 1)
	}
	if c.cacheTTL > 0 {
		cfg.Cache.TTLHours = max(int(c.cacheTTL/time.Hour), 1)
	}
	cfg.ApplyDefaults()
	return cfg
}
