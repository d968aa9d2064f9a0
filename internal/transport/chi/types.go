package chi

import "github.com/kailas-cloud/rentprice/internal/domain"

// ErrorCode identifies an error class in API responses.
type ErrorCode string

// API error codes.
const (
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrorCodeModelNotReady    ErrorCode = "model_not_ready"
	ErrorCodeDataUnavailable  ErrorCode = "data_unavailable"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode           `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// PriceResponse carries the estimate formatted with two decimals.
type PriceResponse struct {
	Price string `json:"price"`
}

// NotTrainedResponse is returned by /metrics, with status 200, before training completes.
type NotTrainedResponse struct {
	Error string `json:"error"`
}

// RootResponse describes the API.
type RootResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
	Message   string   `json:"message"`
}

// HealthResponse reports component status.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
