package rentprice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/bootstrap"
	"github.com/kailas-cloud/rentprice/internal/db"
	"github.com/kailas-cloud/rentprice/internal/domain"
	healthuc "github.com/kailas-cloud/rentprice/internal/usecase/health"
)

const (
	opTrain   = "train"
	opPredict = "predict"
	opMetrics = "metrics"
)

type pricingUseCase interface {
	LoadAndTrain(ctx context.Context) error
	Predict(l domain.Listing) (float64, error)
	Metrics() (domain.Report, error)
	HealthCheck(ctx context.Context) error
}

// Client is a trained rent price model.
type Client struct {
	store     db.Store
	pricing   pricingUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New loads the dataset and fits the model. The context bounds the cache
// readiness check, the download and the fit.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	svcCfg := cfg.serviceConfig()
	if err := svcCfg.Validate(); err != nil {
		return nil, fmt.Errorf("rentprice: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	store, err := bootstrap.OpenCache(ctx, svcCfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("rentprice: %w", err)
	}

	loader, err := bootstrap.NewLoader(svcCfg, store, logger)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("rentprice: %w", err)
	}

	pricing := bootstrap.NewPricing(svcCfg, loader, logger)
	c := wireClient(store, pricing, obs)
	if err := c.train(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(store db.Store, pricing pricingUseCase, obs *observer) *Client {
	var cache healthuc.CachePinger
	if store != nil {
		cache = store
	}
	return &Client{
		store:     store,
		pricing:   pricing,
		healthSvc: healthuc.New(pricing, cache),
		obs:       obs,
	}
}

func (c *Client) train(ctx context.Context) (err error) {
	start := time.Now()
	var attrs []any
	defer func() { c.obs.observe(opTrain, start, err, attrs...) }()

	if err = c.pricing.LoadAndTrain(ctx); err != nil {
		return fmt.Errorf("rentprice: train: %w", err)
	}
	if rep, rerr := c.pricing.Metrics(); rerr == nil {
		attrs = []any{"n_train", rep.NTrain, "n_test", rep.NTest, "r2", rep.R2}
	}
	return nil
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	closeStore(c.store)
}

func closeStore(store db.Store) {
	if store != nil {
		store.Close()
	}
}

// Predict returns the estimated monthly rent in dollars, unrounded.
func (c *Client) Predict(_ context.Context, l Listing) (price float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPredict, start, err) }()

	price, err = c.pricing.Predict(l)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	return price, nil
}

// Metrics returns the fitted model summary.
func (c *Client) Metrics() (rep Report, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opMetrics, start, err) }()

	rep, err = c.pricing.Metrics()
	if err != nil {
		return Report{}, fmt.Errorf("metrics: %w", err)
	}
	return rep, nil
}
