// Package httpsource fetches raw dataset bytes from a URL or a local file.
package httpsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/metrics"
)

const defaultMaxBytes = 64 << 20

// Config holds the dataset source settings.
type Config struct {
	Source   string        // http(s) URL, file:// URL or plain path
	Timeout  time.Duration // per attempt
	Retries  int           // extra attempts after the first
	Backoff  time.Duration // multiplied by the attempt number
	MaxBytes int64
	Client   *http.Client
	Logger   *zap.Logger
}

// Source fetches the dataset. Remote sources are retried on network errors,
// 5xx and 429 responses; other 4xx responses fail immediately.
type Source struct {
	source   string
	timeout  time.Duration
	retries  int
	backoff  time.Duration
	maxBytes int64
	client   *http.Client
	logger   *zap.Logger
}

// New creates a dataset source.
func New(cfg *Config) *Source {
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		source:   cfg.Source,
		timeout:  cfg.Timeout,
		retries:  max(cfg.Retries, 0),
		backoff:  cfg.Backoff,
		maxBytes: maxBytes,
		client:   client,
		logger:   logger,
	}
}

// Name returns the configured location.
func (s *Source) Name() string { return s.source }

// Fetch returns the raw dataset bytes.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	if path, ok := localPath(s.source); ok {
		return s.readFile(path)
	}

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			wait := s.backoff * time.Duration(attempt)
			s.logger.Warn("Retrying dataset fetch",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", wait),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch %s: %w", s.source, ctx.Err())
			case <-time.After(wait):
			}
		}

		data, err := s.fetchOnce(ctx)
		if err == nil {
			return data, nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) || ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", s.source, lastErr)
}

func (s *Source) fetchOnce(ctx context.Context) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := s.get(ctx)
	metrics.DatasetFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatasetFetchTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.DatasetFetchTotal.WithLabelValues("success").Inc()
	return data, nil
}

func (s *Source) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.source, http.NoBody)
	if err != nil {
		return nil, &permanentError{err: fmt.Errorf("new request: %w", err)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, err
		}
		return nil, &permanentError{err: err}
	}

	return readLimited(resp.Body, s.maxBytes)
}

func (s *Source) readFile(path string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &permanentError{err: fmt.Errorf("dataset exceeds %d bytes", limit)}
	}
	return data, nil
}

// localPath reports whether source refers to the filesystem.
func localPath(source string) (string, bool) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" {
		return source, true
	}
	if u.Scheme == "file" {
		return u.Path, true
	}
	// Windows drive letters parse as a one-letter scheme.
	if len(u.Scheme) == 1 {
		return source, true
	}
	return "", false
}

// permanentError marks failures that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }
