package regression

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scores holds held-out regression accuracy.
type Scores struct {
	R2   float64
	MAE  float64
	RMSE float64
}

// Evaluate computes R², MAE and RMSE between yTrue and yPred.
func Evaluate(yTrue, yPred []float64) (Scores, error) {
	r2, err := R2(yTrue, yPred)
	if err != nil {
		return Scores{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Scores{}, err
	}
	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		return Scores{}, err
	}
	return Scores{R2: r2, MAE: mae, RMSE: rmse}, nil
}

// R2 is the coefficient of determination, 1 − SS_res/SS_tot.
func R2(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("R2", yTrue, yPred); err != nil {
		return 0, err
	}
	if len(yTrue) < 2 || stat.Variance(yTrue, nil) == 0 {
		return 0, errors.WithStack(ErrZeroVariance)
	}
	return stat.RSquaredFrom(yPred, yTrue, nil), nil
}

// MAE is the mean absolute error.
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	return floats.Distance(yTrue, yPred, 1) / float64(len(yTrue)), nil
}

// RMSE is the root mean squared error.
func RMSE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("RMSE", yTrue, yPred); err != nil {
		return 0, err
	}
	return floats.Distance(yTrue, yPred, 2) / math.Sqrt(float64(len(yTrue))), nil
}

func checkPair(op string, yTrue, yPred []float64) error {
	if len(yTrue) == 0 {
		return errors.Wrap(ErrEmptyData, op)
	}
	if len(yPred) != len(yTrue) {
		return newDimensionError(op, len(yTrue), len(yPred))
	}
	return nil
}
