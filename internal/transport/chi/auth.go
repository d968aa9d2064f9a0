package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// publicPaths bypass authentication. /metrics exposes the fitted
// coefficients and stays behind the key, unlike the Prometheus scrape path.
var publicPaths = map[string]struct{}{
	"/":           {},
	"/health":     {},
	"/prometheus": {},
}

const bearerPrefix = "Bearer "

// BearerAuthMiddleware checks "Authorization: Bearer <key>" against apiKeys.
// With no non-empty keys the middleware is a pass-through. CORS preflight
// requests are never challenged, so register it after the CORS middleware.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if reason := checkBearer(r.Header.Get("Authorization"), keys); reason != "" {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, reason)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// checkBearer returns an empty string for an accepted header, otherwise the rejection reason.
func checkBearer(header string, keys [][]byte) string {
	if header == "" {
		return "missing authorization header"
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "authorization header must use Bearer scheme"
	}
	matched := 0
	for _, k := range keys {
		matched |= subtle.ConstantTimeCompare([]byte(token), k)
	}
	if matched == 0 {
		return "invalid api key"
	}
	return ""
}
