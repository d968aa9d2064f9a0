package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dataset and model Prometheus metrics.
var (
	DatasetFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentprice",
			Name:      "dataset_fetch_attempts_total",
			Help:      "Dataset fetch attempts by outcome",
		},
		[]string{"status"}, // "success" / "error"
	)

	DatasetFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rentprice",
			Name:      "dataset_fetch_duration_seconds",
			Help:      "Duration of a single dataset fetch attempt",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	DatasetCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentprice",
			Name:      "dataset_cache_total",
			Help:      "Dataset snapshot cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	TrainDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rentprice",
			Name:      "train_duration_seconds",
			Help:      "Duration of load-and-train",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	ModelQuality = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rentprice",
			Name:      "model_quality",
			Help:      "Held-out quality of the fitted model",
		},
		[]string{"metric"}, // "r2" / "mae" / "rmse"
	)

	ModelRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rentprice",
			Name:      "model_rows",
			Help:      "Rows per partition used to fit the model",
		},
		[]string{"partition"}, // "train" / "test"
	)

	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentprice",
			Name:      "predictions_total",
			Help:      "Prediction calls by outcome",
		},
		[]string{"status"}, // "success" / "not_ready"
	)
)

var modelMetricsRegistered bool

// RegisterModelMetrics registers dataset and model metrics. Must be called once from main.
func RegisterModelMetrics() {
	if modelMetricsRegistered {
		return
	}
	prometheus.MustRegister(DatasetFetchTotal)
	prometheus.MustRegister(DatasetFetchDuration)
	prometheus.MustRegister(DatasetCacheTotal)
	prometheus.MustRegister(TrainDuration)
	prometheus.MustRegister(ModelQuality)
	prometheus.MustRegister(ModelRows)
	prometheus.MustRegister(PredictionsTotal)
	modelMetricsRegistered = true
}
