package health

import "context"

// ModelChecker reports whether the price model is ready to serve.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks snapshot cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
