package rentprice

import "github.com/kailas-cloud/rentprice/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDataUnavailable = domain.ErrDataUnavailable
	ErrModelNotReady   = domain.ErrModelNotReady
	ErrAlreadyTrained  = domain.ErrAlreadyTrained
)
