package snapshot

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/db"
)

type mockSource struct {
	data  []byte
	err   error
	calls int
}

func (m *mockSource) Fetch(context.Context) ([]byte, error) {
	m.calls++
	return m.data, m.err
}

func (m *mockSource) Name() string { return "https://example.com/manhattan.csv" }

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedSource(t *testing.T, inner *mockSource) (*CachedSource, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cs := New(inner, ms, time.Hour, nil, zap.NewNop())
	return cs, ms
}
