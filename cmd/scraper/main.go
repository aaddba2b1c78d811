// Package main provides the scraper command-line tool that pulls restaurant
// pages and persists raw records.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"restokb/internal/config"
	"restokb/internal/logger"
	"restokb/internal/pipeline"
	"restokb/internal/report"
	"restokb/internal/scraper"
	"restokb/internal/store"
)

func main() {
	configFile := flag.String("config", "configs/pipeline.yaml", "Path to YAML configuration file")
	flag.Parse()

	_ = godotenv.Load()

	fmt.Printf("⚙️  Loading configuration from: %s\n", *configFile)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if endpoint := os.Getenv("PAGE_ENDPOINT"); endpoint != "" {
		cfg.Pipeline.PageEndpoint = endpoint
	}

	fmt.Printf("✅ Configuration loaded: %s\n\n", cfg)

	workerLog := logger.NewLogger(cfg.Logging.Level)
	client := scraper.NewPageClient(cfg.Pipeline.PageEndpoint, cfg.GetTimeout(), workerLog)

	enabled := cfg.GetEnabledSources()
	fmt.Printf("🚀 Processing %d enabled sources...\n\n", len(enabled))

	scrapers := make([]scraper.Scraper, 0, len(enabled))
	for _, src := range enabled {
		scrapers = append(scrapers, scraper.NewZomatoScraper(src.URL, client, workerLog))
	}

	runner := pipeline.NewRunner(scrapers, store.New(cfg.Pipeline.RawDir), cfg.GetDelay(), workerLog)
	results := runner.Run()

	fmt.Println()
	fmt.Print(report.FormatTable(results))

	failed := 0

	for _, r := range results {
		if !r.Succeeded() {
			failed++
		}
	}

	fmt.Printf("\n✅ Done: %d scraped, %d failed, raw records in %s\n",
		len(results)-failed, failed, cfg.Pipeline.RawDir)

	if failed == len(results) && len(results) > 0 {
		os.Exit(1)
	}
}
