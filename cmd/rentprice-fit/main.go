// Command rentprice-fit trains the rent model once from the configured dataset
// and prints the evaluation report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rentprice/internal/bootstrap"
	"github.com/kailas-cloud/rentprice/internal/config"
	"github.com/kailas-cloud/rentprice/internal/db"
	logpkg "github.com/kailas-cloud/rentprice/internal/logger"
	"github.com/kailas-cloud/rentprice/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rentprice-fit:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	source := flag.String("source", "", "dataset URL or path (overrides config)")
	format := flag.String("format", "", "dataset format: csv or parquet (overrides config)")
	seed := flag.Int64("seed", -1, "split seed (overrides config)")
	useCache := flag.Bool("cache", false, "use the configured snapshot cache")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return nil
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *source != "" {
		cfg.Dataset.Source = *source
	}
	if *format != "" {
		cfg.Dataset.Format = *format
	}
	if *seed >= 0 {
		s := uint64(*seed)
		cfg.Dataset.Seed = &s
	}

	// Logs go to stderr; stdout carries only the report.
	logger, err := logpkg.NewLogger(env, logpkg.Options{Level: "warn"})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	var store db.KVStore
	if *useCache {
		s, err := bootstrap.OpenCache(ctx, cfg.Cache, logger)
		if err != nil {
			return err
		}
		if s != nil {
			defer s.Close()
			store = s
		}
	}

	loader, err := bootstrap.NewLoader(cfg, store, logger)
	if err != nil {
		return err
	}

	pricing := bootstrap.NewPricing(cfg, loader, logger)
	if err := pricing.LoadAndTrain(ctx); err != nil {
		logger.Error("Training failed", zap.Error(err))
		return err
	}

	report, err := pricing.Metrics()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
