package dataset

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/domain"
)

// Source returns raw dataset bytes.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// Loader fetches and decodes the training table.
type Loader struct {
	source  Source
	format  Format
	columns []string
	logger  *zap.Logger
}

// NewLoader creates a loader that keeps the feature columns followed by the target.
func NewLoader(source Source, format Format, logger *zap.Logger) *Loader {
	columns := make([]string, 0, domain.FeatureCount+1)
	columns = append(columns, domain.FeatureColumns[:]...)
	columns = append(columns, domain.TargetColumn)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, format: format, columns: columns, logger: logger}
}

// Load returns the training table. Any fetch or decode failure wraps domain.ErrDataUnavailable.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	start := time.Now()

	data, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}

	tbl, err := Decode(data, l.format, l.columns)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrDataUnavailable, l.source.Name(), err)
	}

	l.logger.Info("Dataset loaded",
		zap.String("source", l.source.Name()),
		zap.String("format", string(l.format)),
		zap.Int("rows", tbl.Rows()),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return tbl, nil
}
