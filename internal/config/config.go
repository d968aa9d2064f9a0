package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDatasetURL is the StreetEasy Manhattan rentals snapshot.
const DefaultDatasetURL = "https://raw.githubusercontent.com/sonnynomnom/Codecademy-Machine-Learning-Fundamentals/master/StreetEasy/manhattan.csv"

// Defaults for the train/test split.
const (
	DefaultSeed      = 6
	DefaultTestRatio = 0.2
)

// Config holds the rentprice service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Training TrainingConfig `yaml:"training"`
	Cache    CacheConfig    `yaml:"cache"`
	CORS     CORSConfig     `yaml:"cors"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File       string `yaml:"file"`  // optional rotating log file, empty = stderr only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatasetConfig describes where the training table comes from and how it is split.
type DatasetConfig struct {
	Source          string  `yaml:"source"` // http(s) URL, file:// URL or path
	Format          string  `yaml:"format"` // csv, parquet (default: from extension)
	FetchTimeoutSec int     `yaml:"fetch_timeout_sec"`
	Retries         int     `yaml:"retries"`
	RetryBackoffMs  int     `yaml:"retry_backoff_ms"`
	MaxBytesMB      int     `yaml:"max_bytes_mb"`
	Seed            *uint64 `yaml:"seed"`
	TestRatio       float64 `yaml:"test_ratio"`
}

// TrainingConfig controls the startup barrier.
type TrainingConfig struct {
	// RequireOnStartup aborts startup when training fails (default: true).
	// When false, training runs in the background and requests get 503 until it succeeds.
	RequireOnStartup *bool `yaml:"require_on_startup"`
}

// CacheConfig holds dataset snapshot cache settings.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // none, redis, valkey (default: none)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLHours         int      `yaml:"ttl_hours"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a cache backend is configured.
func (c CacheConfig) Enabled() bool {
	return c.Driver != "" && c.Driver != "none"
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins       []string `yaml:"allowed_origins"`
	AllowedOriginPattern string   `yaml:"allowed_origin_pattern"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Dataset.Source == "" {
		c.Dataset.Source = DefaultDatasetURL
	}
	if c.Dataset.FetchTimeoutSec <= 0 {
		c.Dataset.FetchTimeoutSec = 30
	}
	if c.Dataset.Retries < 0 {
		c.Dataset.Retries = 0
	}
	if c.Dataset.RetryBackoffMs <= 0 {
		c.Dataset.RetryBackoffMs = 500
	}
	if c.Dataset.MaxBytesMB <= 0 {
		c.Dataset.MaxBytesMB = 64
	}
	if c.Dataset.Seed == nil {
		seed := uint64(DefaultSeed)
		c.Dataset.Seed = &seed
	}
	if c.Dataset.TestRatio == 0 {
		c.Dataset.TestRatio = DefaultTestRatio
	}
	if c.Training.RequireOnStartup == nil {
		require := true
		c.Training.RequireOnStartup = &require
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "none"
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 100
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 3
	}
	if c.Logging.MaxAgeDays <= 0 {
		c.Logging.MaxAgeDays = 28
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch strings.ToLower(c.Dataset.Format) {
	case "", "csv", "parquet":
		// ok
	default:
		return fmt.Errorf("dataset.format must be \"csv\" or \"parquet\", got %q", c.Dataset.Format)
	}
	if c.Dataset.TestRatio <= 0 || c.Dataset.TestRatio >= 1 {
		return fmt.Errorf("dataset.test_ratio must be in (0, 1), got %v", c.Dataset.TestRatio)
	}
	switch c.Cache.Driver {
	case "none":
		// ok
	case "redis", "valkey":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for driver %q", c.Cache.Driver)
		}
	default:
		return fmt.Errorf("cache.driver must be \"none\", \"redis\" or \"valkey\", got %q", c.Cache.Driver)
	}
	if c.CORS.AllowedOriginPattern != "" {
		if _, err := regexp.Compile(c.CORS.AllowedOriginPattern); err != nil {
			return fmt.Errorf("cors.allowed_origin_pattern: %w", err)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
