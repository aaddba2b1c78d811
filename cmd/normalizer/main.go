// Package main provides the batch normalizer command-line tool that
// re-validates raw records and converts menu prices to the base currency.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"restokb/internal/config"
	"restokb/internal/logger"
	"restokb/internal/normalizer"
	"restokb/internal/rates"
	"restokb/internal/store"
)

func main() {
	configFile := flag.String("config", "configs/pipeline.yaml", "Path to YAML configuration file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if endpoint := os.Getenv("RATES_ENDPOINT"); endpoint != "" {
		cfg.Rates.Endpoint = endpoint
	}

	workerLog := logger.NewLogger(cfg.Logging.Level)
	provider := rates.NewProvider(cfg.Rates.Endpoint, cfg.GetTimeout(), cfg.Rates.Fallback, workerLog)

	processor := normalizer.NewProcessor(
		store.New(cfg.Pipeline.RawDir),
		store.New(cfg.Pipeline.ProcessedDir),
		provider,
		workerLog,
	)

	fmt.Printf("🚀 Normalizing raw records from %s...\n", cfg.Pipeline.RawDir)

	summary, err := processor.Run()
	if err != nil {
		log.Fatalf("❌ Batch failed: %v", err)
	}

	fmt.Printf("✅ Processing complete: %d/%d records processed, %d skipped\n",
		summary.Processed, summary.Total, summary.Skipped)

	if summary.Total > 0 && summary.Processed == 0 {
		os.Exit(1)
	}
}
