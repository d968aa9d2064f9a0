package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func testCORS(t *testing.T) http.Handler {
	t.Helper()
	mw, err := CORSMiddleware(CORSConfig{
		AllowedOrigins:       []string{"https://docker-price-predict.lovable.app", "http://localhost:5173"},
		AllowedOriginPattern: `^https://.*\.sandbox\.lovable\.dev$`,
	})
	if err != nil {
		t.Fatalf("cors: %v", err)
	}
	return mw(okHandler())
}

func TestCORS_AllowedOrigins(t *testing.T) {
	h := testCORS(t)

	for _, origin := range []string{
		"https://docker-price-predict.lovable.app",
		"http://localhost:5173",
		"https://abc123.sandbox.lovable.dev",
	} {
		req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
		req.Header.Set("Origin", origin)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if got := rr.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("origin %s: allow-origin %q", origin, got)
		}
		if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("origin %s: allow-credentials %q", origin, got)
		}
	}
}

func TestCORS_RejectedOrigin(t *testing.T) {
	h := testCORS(t)

	for _, origin := range []string{
		"https://evil.example.com",
		"https://sandbox.lovable.dev.evil.com",
		"http://abc.sandbox.lovable.dev",
	} {
		req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
		req.Header.Set("Origin", origin)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("origin %s must be rejected, got allow-origin %q", origin, got)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := testCORS(t)

	req := httptest.NewRequest(http.MethodOptions, "/predict", http.NoBody)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("preflight: got %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow-origin %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Errorf("allow-methods %q", got)
	}
}

func TestCORS_InvalidPattern(t *testing.T) {
	if _, err := CORSMiddleware(CORSConfig{AllowedOriginPattern: "("}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
