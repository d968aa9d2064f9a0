// Package pricing trains the rent model once and answers predictions against it.
package pricing

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/dataset"
	"github.com/kailas-cloud/rentprice/internal/domain"
	"github.com/kailas-cloud/rentprice/internal/metrics"
	"github.com/kailas-cloud/rentprice/internal/regression"
)

// Service owns the fitted model state.
type Service struct {
	loader    TableLoader
	seed      uint64
	testRatio float64
	logger    *zap.Logger

	mu    sync.Mutex // serializes training
	state atomic.Pointer[domain.ModelState]
}

// New creates a pricing service. The model is not ready until LoadAndTrain succeeds.
func New(loader TableLoader, seed uint64, testRatio float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{loader: loader, seed: seed, testRatio: testRatio, logger: logger}
}

// LoadAndTrain loads the dataset, fits the model on the training split,
// evaluates it on the held-out split and publishes the result.
// A failed call leaves the service untrained.
func (s *Service) LoadAndTrain(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Load() != nil {
		return domain.ErrAlreadyTrained
	}

	start := time.Now()

	tbl, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	state, err := s.train(ctx, tbl)
	if err != nil {
		return err
	}

	s.state.Store(state)

	elapsed := time.Since(start)
	eval := state.Evaluation()
	metrics.TrainDuration.Observe(elapsed.Seconds())
	metrics.ModelQuality.WithLabelValues("r2").Set(eval.R2)
	metrics.ModelQuality.WithLabelValues("mae").Set(eval.MAE)
	metrics.ModelQuality.WithLabelValues("rmse").Set(eval.RMSE)
	metrics.ModelRows.WithLabelValues("train").Set(float64(eval.NTrain))
	metrics.ModelRows.WithLabelValues("test").Set(float64(eval.NTest))

	s.logger.Info("Model trained",
		zap.Int("n_train", eval.NTrain),
		zap.Int("n_test", eval.NTest),
		zap.Float64("r2", eval.R2),
		zap.Float64("r2_train", eval.TrainR2),
		zap.Float64("mae", eval.MAE),
		zap.Float64("rmse", eval.RMSE),
		zap.Float64("intercept", state.Intercept()),
		zap.Duration("duration", elapsed),
	)
	return nil
}

func (s *Service) train(ctx context.Context, tbl *dataset.Table) (*domain.ModelState, error) {
	split, err := regression.TrainTestSplit(tbl.Rows(), s.testRatio, s.seed)
	if err != nil {
		return nil, fmt.Errorf("split dataset: %w", err)
	}

	features := domain.FeatureColumns[:]
	xTrain, err := tbl.Matrix(features, split.Train)
	if err != nil {
		return nil, fmt.Errorf("training features: %w", err)
	}
	yTrain, err := tbl.Select(domain.TargetColumn, split.Train)
	if err != nil {
		return nil, fmt.Errorf("training target: %w", err)
	}
	xTest, err := tbl.Matrix(features, split.Test)
	if err != nil {
		return nil, fmt.Errorf("test features: %w", err)
	}
	yTest, err := tbl.Select(domain.TargetColumn, split.Test)
	if err != nil {
		return nil, fmt.Errorf("test target: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := regression.NewOLS()
	if err := model.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	trainR2, err := model.Score(xTrain, yTrain)
	if err != nil {
		return nil, fmt.Errorf("score training split: %w", err)
	}

	yPred, err := model.Predict(xTest)
	if err != nil {
		return nil, fmt.Errorf("predict test split: %w", err)
	}
	scores, err := regression.Evaluate(yTest, yPred)
	if err != nil {
		return nil, fmt.Errorf("evaluate model: %w", err)
	}

	var coef domain.FeatureVector
	copy(coef[:], model.Coef())

	return domain.NewModelState(coef, model.Intercept(), domain.Evaluation{
		R2:      scores.R2,
		MAE:     scores.MAE,
		RMSE:    scores.RMSE,
		TrainR2: trainR2,
		NTrain:  len(split.Train),
		NTest:   len(split.Test),
	}), nil
}

// Predict returns the estimated rent for a listing.
func (s *Service) Predict(l domain.Listing) (float64, error) {
	return s.PredictVector(l.Vector())
}

// PredictVector returns the estimated rent for an ordered feature vector.
func (s *Service) PredictVector(v domain.FeatureVector) (float64, error) {
	state := s.state.Load()
	if state == nil {
		metrics.PredictionsTotal.WithLabelValues("not_ready").Inc()
		return 0, domain.ErrModelNotReady
	}
	metrics.PredictionsTotal.WithLabelValues("success").Inc()
	return state.Predict(v), nil
}

// Metrics returns the fitted model report.
func (s *Service) Metrics() (domain.Report, error) {
	state := s.state.Load()
	if state == nil {
		return domain.Report{}, domain.ErrModelNotReady
	}
	return state.Report(), nil
}

// Ready reports whether a model has been published.
func (s *Service) Ready() bool {
	return s.state.Load() != nil
}

// HealthCheck returns ErrModelNotReady until the model is published.
func (s *Service) HealthCheck(_ context.Context) error {
	if !s.Ready() {
		return domain.ErrModelNotReady
	}
	return nil
}
