package regression

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrEmptyData is returned for inputs without rows or columns.
	ErrEmptyData = errors.New("regression: empty data")
	// ErrSingularSystem is returned when the least-squares system cannot be factorized.
	ErrSingularSystem = errors.New("regression: singular system")
	// ErrZeroVariance is returned when R² is undefined because the target is constant.
	ErrZeroVariance = errors.New("regression: target has no variance")
)

// NotFittedError is returned when a model is used before Fit.
type NotFittedError struct {
	Method string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("regression: model is not fitted, call Fit before %s", e.Method)
}

func newNotFittedError(method string) error {
	return errors.WithStack(&NotFittedError{Method: method})
}

// DimensionError reports mismatched input shapes.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("regression: %s: dimension mismatch, expected %d, got %d", e.Op, e.Expected, e.Got)
}

func newDimensionError(op string, expected, got int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got})
}
