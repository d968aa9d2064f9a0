package pricing

import (
	"context"

	"github.com/kailas-cloud/rentprice/internal/dataset"
)

// TableLoader provides the training table.
type TableLoader interface {
	Load(ctx context.Context) (*dataset.Table, error)
}
