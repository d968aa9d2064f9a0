// Package regression implements ordinary least squares fitting, deterministic
// train/test splitting and held-out evaluation on top of gonum.
package regression

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

const machineEpsilon = 2.220446049250313e-16

// OLS is an ordinary least squares linear model with an intercept.
type OLS struct {
	coef      []float64
	intercept float64
	fitted    bool
}

// NewOLS creates an unfitted model.
func NewOLS() *OLS {
	return &OLS{}
}

// Fit minimizes the sum of squared residuals of y ≈ X·coef + intercept.
//
// X and y are centered first so the intercept is recovered as ȳ − x̄·coef.
// The centered system is solved through SVD; rank-deficient inputs (for example
// a constant feature column) get the minimum-norm solution instead of failing.
func (m *OLS) Fit(X mat.Matrix, y []float64) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(ErrEmptyData, "OLS.Fit")
	}
	if len(y) != r {
		return newDimensionError("OLS.Fit", r, len(y))
	}

	xMean := make([]float64, c)
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		xMean[j] = sum / float64(r)
	}
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(r)

	xc := mat.NewDense(r, c, nil)
	yc := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			xc.Set(i, j, X.At(i, j)-xMean[j])
		}
		yc.Set(i, 0, y[i]-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return errors.Wrap(ErrSingularSystem, "OLS.Fit: SVD factorization failed")
	}

	// Singular values below eps·max(r, c)·σmax count as zero.
	rank := svd.Rank(machineEpsilon * float64(max(r, c)))
	if rank == 0 {
		// All features constant: the best fit is the mean.
		m.coef = make([]float64, c)
		m.intercept = yMean
		m.fitted = true
		return nil
	}

	var beta mat.Dense
	svd.SolveTo(&beta, yc, rank)

	coef := make([]float64, c)
	intercept := yMean
	for j := 0; j < c; j++ {
		coef[j] = beta.At(j, 0)
		intercept -= xMean[j] * coef[j]
	}
	for _, v := range coef {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrap(ErrSingularSystem, "OLS.Fit: non-finite coefficient")
		}
	}

	m.coef = coef
	m.intercept = intercept
	m.fitted = true
	return nil
}

// Predict returns X·coef + intercept for each row.
func (m *OLS) Predict(X mat.Matrix) ([]float64, error) {
	if !m.fitted {
		return nil, newNotFittedError("Predict")
	}
	r, c := X.Dims()
	if c != len(m.coef) {
		return nil, newDimensionError("OLS.Predict", len(m.coef), c)
	}

	out := make([]float64, r)
	for i := 0; i < r; i++ {
		sum := m.intercept
		for j := 0; j < c; j++ {
			sum += X.At(i, j) * m.coef[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Score returns R² of the predictions for X against y.
func (m *OLS) Score(X mat.Matrix, y []float64) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return R2(y, pred)
}

// Coef returns a copy of the fitted coefficients, nil before Fit.
func (m *OLS) Coef() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.coef))
	copy(out, m.coef)
	return out
}

// Intercept returns the fitted constant term, 0 before Fit.
func (m *OLS) Intercept() float64 {
	return m.intercept
}

// Fitted reports whether Fit has completed successfully.
func (m *OLS) Fitted() bool {
	return m.fitted
}
