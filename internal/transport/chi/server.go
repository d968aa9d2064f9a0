package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/domain"
	logpkg "github.com/kailas-cloud/rentprice/internal/logger"
	healthuc "github.com/kailas-cloud/rentprice/internal/usecase/health"
	pricinguc "github.com/kailas-cloud/rentprice/internal/usecase/pricing"
	"github.com/kailas-cloud/rentprice/internal/version"
)

const apiName = "Price Predictor API"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the prediction API.
type Server struct {
	pricing       *pricinguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(pricing *pricinguc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		pricing: pricing,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrModelNotReady, http.StatusServiceUnavailable, ErrorCodeModelNotReady),
		sentinelHandler(domain.ErrDataUnavailable, http.StatusServiceUnavailable, ErrorCodeDataUnavailable),
	}
	return s
}

// Routes registers API routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Post("/predict", s.Predict)
	r.Get("/metrics", s.ModelMetrics)
	r.Get("/health", s.HealthCheck)
	r.Get("/prometheus", s.Prometheus)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:      apiName,
		Version:   version.Version,
		Endpoints: []string{"/predict", "/metrics"},
		Message:   "Use POST /predict to retrieve a price in the format {\"price\": \"4002.23\"}",
	})
}

// Predict handles POST /predict.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	listing, err := decodeListing(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	price, err := s.pricing.Predict(listing)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PriceResponse{Price: formatPrice(price)})
}

// ModelMetrics handles GET /metrics.
func (s *Server) ModelMetrics(w http.ResponseWriter, r *http.Request) {
	report, err := s.pricing.Metrics()
	if err != nil {
		if errors.Is(err, domain.ErrModelNotReady) {
			writeJSON(w, http.StatusOK, NotTrainedResponse{Error: "Model not trained"})
			return
		}
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Prometheus handles GET /prometheus.
func (s *Server) Prometheus(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrModelNotReady,
		domain.ErrDataUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler answers 422 with per-field details.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Code:    ErrorCodeValidationFailed,
		Message: msg,
		Details: ve.Fields,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContextOr(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
