package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8000}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_CacheDriver(t *testing.T) {
	tests := []struct {
		driver  string
		addrs   []string
		wantErr string
	}{
		{"none", nil, ""},
		{"redis", []string{"localhost:6379"}, ""},
		{"valkey", []string{"localhost:6379"}, ""},
		{"valkey", nil, `cache.addrs is required for driver "valkey"`},
		{"memcached", nil, `cache.driver must be "none", "redis" or "valkey", got "memcached"`},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := validConfig()
			cfg.Cache.Driver = tt.driver
			cfg.Cache.Addrs = tt.addrs

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("unexpected error message:\ngot:  %v\nwant: %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_TestRatio(t *testing.T) {
	for _, ratio := range []float64{-0.1, 1, 1.5} {
		cfg := validConfig()
		cfg.Dataset.TestRatio = ratio
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for test_ratio=%v", ratio)
		}
	}
}

func TestValidate_DatasetFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Dataset.Format = "xlsx"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown format")
	}

	cfg.Dataset.Format = "Parquet"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_OriginPattern(t *testing.T) {
	cfg := validConfig()
	cfg.CORS.AllowedOriginPattern = "(["
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid regexp")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8000 {
		t.Errorf("expected Port=8000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Dataset.Source != DefaultDatasetURL {
		t.Errorf("expected default dataset URL, got %q", cfg.Dataset.Source)
	}
	if cfg.Dataset.Seed == nil || *cfg.Dataset.Seed != 6 {
		t.Errorf("expected Seed=6, got %v", cfg.Dataset.Seed)
	}
	if cfg.Dataset.TestRatio != 0.2 {
		t.Errorf("expected TestRatio=0.2, got %v", cfg.Dataset.TestRatio)
	}
	if cfg.Dataset.MaxBytesMB != 64 {
		t.Errorf("expected MaxBytesMB=64, got %d", cfg.Dataset.MaxBytesMB)
	}
	if cfg.Training.RequireOnStartup == nil || !*cfg.Training.RequireOnStartup {
		t.Error("expected RequireOnStartup=true")
	}
	if cfg.Cache.Driver != "none" || cfg.Cache.Enabled() {
		t.Errorf("expected cache disabled, got driver %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTLHours != 24 {
		t.Errorf("expected TTLHours=24, got %d", cfg.Cache.TTLHours)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	seed := uint64(0)
	require := false
	cfg := Config{
		HTTP:     HTTPConfig{Port: 9000, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Dataset:  DatasetConfig{Source: "/data/listings.parquet", Seed: &seed, TestRatio: 0.3},
		Training: TrainingConfig{RequireOnStartup: &require},
		Cache:    CacheConfig{Driver: "redis", TTLHours: 1},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Dataset.Source != "/data/listings.parquet" {
		t.Errorf("unexpected source %q", cfg.Dataset.Source)
	}
	if *cfg.Dataset.Seed != 0 {
		t.Errorf("explicit seed 0 must be kept, got %d", *cfg.Dataset.Seed)
	}
	if cfg.Dataset.TestRatio != 0.3 {
		t.Errorf("expected TestRatio=0.3, got %v", cfg.Dataset.TestRatio)
	}
	if *cfg.Training.RequireOnStartup {
		t.Error("explicit require_on_startup=false must be kept")
	}
	if !cfg.Cache.Enabled() || cfg.Cache.TTLHours != 1 {
		t.Errorf("unexpected cache config %+v", cfg.Cache)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("RENTPRICE_PORT", "9100")
	t.Setenv("RENTPRICE_API_KEY", "")

	data := []byte(`
http:
  port: ${RENTPRICE_PORT}
dataset:
  source: ${RENTPRICE_DATASET:-/tmp/manhattan.csv}
  seed: 42
auth:
  api_keys: ["${RENTPRICE_API_KEY:-dev-key}"]
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9100 {
		t.Errorf("expected Port=9100, got %d", cfg.HTTP.Port)
	}
	if cfg.Dataset.Source != "/tmp/manhattan.csv" {
		t.Errorf("expected default source, got %q", cfg.Dataset.Source)
	}
	if *cfg.Dataset.Seed != 42 {
		t.Errorf("expected Seed=42, got %d", *cfg.Dataset.Seed)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "dev-key" {
		t.Errorf("unexpected api keys %v", cfg.Auth.APIKeys)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("cache:\n  driver: redis\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.HasPrefix(err.Error(), "invalid config:") {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_RepositoryConfigs(t *testing.T) {
	for _, env := range []string{"local", "dev", "prod"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("CACHE_ADDRS", "localhost:6379")
			if _, err := Load(env); err != nil {
				t.Fatalf("load %s: %v", env, err)
			}
		})
	}
}

func TestMustLoad(t *testing.T) {
	t.Setenv("PORT", "")
	cfg := MustLoad("local")
	if cfg.HTTP.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.HTTP.Port)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for a missing config file")
		}
	}()
	MustLoad("no-such-env")
}
