// Package main provides the chunker command-line tool that exports processed
// records as index-ready text chunks.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"restokb/internal/config"
	"restokb/internal/kb"
	"restokb/internal/logger"
	"restokb/internal/store"
)

func main() {
	configFile := flag.String("config", "configs/pipeline.yaml", "Path to YAML configuration file")
	output := flag.String("output", "", "Output JSONL file path (overrides config)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	outputPath := cfg.Chunker.Output
	if *output != "" {
		outputPath = *output
	}

	workerLog := logger.NewLogger(cfg.Logging.Level)
	chunker := kb.NewChunker(store.New(cfg.Pipeline.ProcessedDir), cfg.Chunker.BatchSize, workerLog)

	chunks, err := chunker.ChunkAll()
	if err != nil {
		log.Fatalf("❌ Chunking failed: %v", err)
	}

	if err := kb.WriteJSONL(outputPath, chunks); err != nil {
		log.Fatalf("❌ Failed to write chunks: %v", err)
	}

	fmt.Printf("✅ Wrote %d chunks to %s for collection %q\n",
		len(chunks), outputPath, cfg.Chunker.Collection)
}
