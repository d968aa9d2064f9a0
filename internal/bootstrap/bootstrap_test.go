package bootstrap

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/config"
	"github.com/kailas-cloud/rentprice/internal/db"
	"github.com/kailas-cloud/rentprice/internal/domain"
	"github.com/kailas-cloud/rentprice/internal/repository/snapshot"
)

// memStore is an in-memory db.KVStore.
type memStore struct {
	data map[string][]byte
	ttl  time.Duration
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	m.ttl = ttl
	return nil
}

func writeListings(t *testing.T, rows int) string {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 2))

	var b strings.Builder
	b.WriteString("rental_id," + strings.Join(domain.FeatureColumns[:], ",") + ",rent,borough\n")
	for r := 0; r < rows; r++ {
		b.WriteString(strconv.Itoa(r))
		rent := 1800.0
		for c := 0; c < domain.FeatureCount; c++ {
			v := rng.IntN(2)
			if c < 6 {
				v = rng.IntN(30)
			}
			rent += float64(v) * float64(c+1) * 15
			b.WriteString("," + strconv.Itoa(v))
		}
		rent += rng.NormFloat64() * 40
		b.WriteString("," + strconv.FormatFloat(rent, 'f', 2, 64) + ",Manhattan\n")
	}

	path := filepath.Join(t.TempDir(), "manhattan.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func testConfig(source string) config.Config {
	cfg := config.Config{Dataset: config.DatasetConfig{Source: source}}
	cfg.ApplyDefaults()
	return cfg
}

func TestOpenCache_Disabled(t *testing.T) {
	store, err := OpenCache(context.Background(), config.CacheConfig{Driver: "none"}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewLoader_TrainsFromLocalFile(t *testing.T) {
	cfg := testConfig(writeListings(t, 100))

	loader, err := NewLoader(cfg, nil, zap.NewNop())
	require.NoError(t, err)

	svc := NewPricing(cfg, loader, zap.NewNop())
	require.NoError(t, svc.LoadAndTrain(context.Background()))

	report, err := svc.Metrics()
	require.NoError(t, err)
	assert.Equal(t, 80, report.NTrain)
	assert.Equal(t, 20, report.NTest)
}

func TestNewLoader_UsesSnapshotCache(t *testing.T) {
	path := writeListings(t, 40)
	cfg := testConfig(path)
	store := &memStore{data: map[string][]byte{}}

	loader, err := NewLoader(cfg, store, zap.NewNop())
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, store.data, snapshot.Key(path))
	assert.Equal(t, 24*time.Hour, store.ttl)

	// the snapshot keeps serving after the file disappears
	require.NoError(t, os.Remove(path))
	tbl, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, tbl.Rows())
}

func TestNewLoader_MissingFile(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing.csv"))

	loader, err := NewLoader(cfg, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestNewLoader_UnknownFormat(t *testing.T) {
	cfg := testConfig("/data/listings.csv")
	cfg.Dataset.Format = "xlsx"

	_, err := NewLoader(cfg, nil, zap.NewNop())
	assert.Error(t, err)
}
