package domain

// Evaluation holds accuracy of a fitted model. All scores except TrainR2
// are measured on the held-out split.
type Evaluation struct {
	R2      float64
	MAE     float64
	RMSE    float64
	TrainR2 float64
	NTrain  int
	NTest   int
}

// ModelState is the fitted model. Immutable once published.
type ModelState struct {
	coefficients FeatureVector
	intercept    float64
	eval         Evaluation
}

// NewModelState creates a fitted model state.
func NewModelState(coefficients FeatureVector, intercept float64, eval Evaluation) *ModelState {
	return &ModelState{coefficients: coefficients, intercept: intercept, eval: eval}
}

// Intercept returns the fitted constant term.
func (m *ModelState) Intercept() float64 { return m.intercept }

// Evaluation returns the held-out metrics.
func (m *ModelState) Evaluation() Evaluation { return m.eval }

// Predict returns dot(v, coefficients) + intercept.
func (m *ModelState) Predict(v FeatureVector) float64 {
	sum := m.intercept
	for i, c := range m.coefficients {
		sum += c * v[i]
	}
	return sum
}

// Report is the externally visible model summary.
type Report struct {
	Target       string             `json:"target"`
	R2           float64            `json:"r2"`
	MAE          float64            `json:"mae"`
	RMSE         float64            `json:"rmse"`
	NTrain       int                `json:"n_train"`
	NTest        int                `json:"n_test"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
}

// Report builds the summary with coefficients keyed by feature name.
func (m *ModelState) Report() Report {
	coeffs := make(map[string]float64, FeatureCount)
	for i, name := range FeatureColumns {
		coeffs[name] = m.coefficients[i]
	}
	return Report{
		Target:       TargetColumn,
		R2:           m.eval.R2,
		MAE:          m.eval.MAE,
		RMSE:         m.eval.RMSE,
		NTrain:       m.eval.NTrain,
		NTest:        m.eval.NTest,
		Intercept:    m.intercept,
		Coefficients: coeffs,
	}
}
