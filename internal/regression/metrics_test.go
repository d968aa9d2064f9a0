package regression

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		yTrue    []float64
		yPred    []float64
		wantR2   float64
		wantMAE  float64
		wantRMSE float64
	}{
		{
			name:     "perfect prediction",
			yTrue:    []float64{1, 2, 3, 4, 5},
			yPred:    []float64{1, 2, 3, 4, 5},
			wantR2:   1,
			wantMAE:  0,
			wantRMSE: 0,
		},
		{
			name:     "symmetric half errors",
			yTrue:    []float64{1, 2, 3, 4},
			yPred:    []float64{1.5, 2.5, 2.5, 3.5},
			wantR2:   0.8, // SS_res = 1, SS_tot = 5
			wantMAE:  0.5,
			wantRMSE: 0.5,
		},
		{
			name:     "larger errors",
			yTrue:    []float64{10, 20, 30},
			yPred:    []float64{12, 18, 33},
			wantR2:   1 - 17.0/200.0,
			wantMAE:  7.0 / 3.0,
			wantRMSE: math.Sqrt(17.0 / 3.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Evaluate(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantR2, s.R2, 1e-10)
			assert.InDelta(t, tt.wantMAE, s.MAE, 1e-10)
			assert.InDelta(t, tt.wantRMSE, s.RMSE, 1e-10)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		yTrue  []float64
		yPred  []float64
		target error
	}{
		{"empty", nil, nil, ErrEmptyData},
		{"constant target", []float64{3, 3, 3}, []float64{1, 2, 3}, ErrZeroVariance},
		{"single row", []float64{3}, []float64{3}, ErrZeroVariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.yTrue, tt.yPred)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestMetrics_LengthMismatch(t *testing.T) {
	for name, fn := range map[string]func(a, b []float64) (float64, error){
		"R2": R2, "MAE": MAE, "RMSE": RMSE,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fn([]float64{1, 2, 3}, []float64{1, 2})
			var dimErr *DimensionError
			require.True(t, errors.As(err, &dimErr))
			assert.Equal(t, name, dimErr.Op)
		})
	}
}
