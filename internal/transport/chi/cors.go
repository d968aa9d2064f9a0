package chi

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-chi/cors"
)

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
	// AllowedOriginPattern is an optional regular expression matched against the full origin.
	AllowedOriginPattern string
}

// CORSMiddleware allows the configured origins with credentials for GET, POST and OPTIONS.
func CORSMiddleware(cfg CORSConfig) (func(http.Handler) http.Handler, error) {
	allowed, err := originMatcher(cfg)
	if err != nil {
		return nil, err
	}

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return allowed(origin)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}), nil
}

// originMatcher combines the exact list and the pattern. AllowOriginFunc
// replaces AllowedOrigins in go-chi/cors, so both are checked here.
func originMatcher(cfg CORSConfig) (func(string) bool, error) {
	exact := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		exact[o] = struct{}{}
	}

	var pattern *regexp.Regexp
	if cfg.AllowedOriginPattern != "" {
		p, err := regexp.Compile(cfg.AllowedOriginPattern)
		if err != nil {
			return nil, fmt.Errorf("compile allowed origin pattern: %w", err)
		}
		pattern = p
	}

	return func(origin string) bool {
		if _, ok := exact[origin]; ok {
			return true
		}
		return pattern != nil && pattern.MatchString(origin)
	}, nil
}
