// Package config provides configuration management for the pipeline worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoSources           = errors.New("at least one source is required")
	ErrSourceMissingName   = errors.New("name is required")
	ErrSourceMissingURL    = errors.New("url is required")
	ErrNoEnabledSources    = errors.New("at least one source must be enabled")
	ErrInvalidDelay        = errors.New("pipeline.delay_sec must be non-negative")
	ErrInvalidTimeout      = errors.New("pipeline.timeout_sec must be at least 1")
	ErrMissingRawDir       = errors.New("pipeline.raw_dir is required")
	ErrMissingProcessedDir = errors.New("pipeline.processed_dir is required")
	ErrMissingEndpoint     = errors.New("rates.endpoint is required")
	ErrInvalidFallbackRate = errors.New("rates.fallback values must be positive")
	ErrInvalidBatchSize    = errors.New("chunker.batch_size must be at least 1")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete worker configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Rates    RatesConfig    `yaml:"rates"`
	Chunker  ChunkerConfig  `yaml:"chunker"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PipelineConfig contains scrape-pipeline settings.
type PipelineConfig struct {
	Sources      []SourceConfig `yaml:"sources"`
	PageEndpoint string         `yaml:"page_endpoint"`
	RawDir       string         `yaml:"raw_dir"`
	ProcessedDir string         `yaml:"processed_dir"`
	DelaySec     int            `yaml:"delay_sec"`
	TimeoutSec   int            `yaml:"timeout_sec"`
}

// SourceConfig represents one restaurant page to scrape.
type SourceConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// RatesConfig defines the exchange-rate source and its fallback snapshot.
type RatesConfig struct {
	Endpoint string             `yaml:"endpoint"`
	Fallback map[string]float64 `yaml:"fallback"`
}

// ChunkerConfig defines how processed records are split into index chunks.
type ChunkerConfig struct {
	BatchSize  int    `yaml:"batch_size"`
	Collection string `yaml:"collection"`
	Output     string `yaml:"output"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Defaults applied before validation.
const (
	DefaultPageEndpoint = "https://www.zomato.com/webroutes/getPage?page_url="
	DefaultRateEndpoint = "https://api.exchangerate-api.com/v4/latest/INR"
	DefaultCollection   = "restaurant_knowledge_base"
	DefaultChunkOutput  = "data/chunks.jsonl"
	DefaultDelaySec     = 10
	DefaultTimeoutSec   = 30
	DefaultBatchSize    = 10
)

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pipeline.PageEndpoint == "" {
		c.Pipeline.PageEndpoint = DefaultPageEndpoint
	}

	if c.Pipeline.DelaySec == 0 {
		c.Pipeline.DelaySec = DefaultDelaySec
	}

	if c.Pipeline.TimeoutSec == 0 {
		c.Pipeline.TimeoutSec = DefaultTimeoutSec
	}

	if c.Rates.Endpoint == "" {
		c.Rates.Endpoint = DefaultRateEndpoint
	}

	if c.Chunker.BatchSize == 0 {
		c.Chunker.BatchSize = DefaultBatchSize
	}

	if c.Chunker.Collection == "" {
		c.Chunker.Collection = DefaultCollection
	}

	if c.Chunker.Output == "" {
		c.Chunker.Output = DefaultChunkOutput
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Pipeline.Sources) == 0 {
		return ErrNoSources
	}

	enabledCount := 0

	for i, src := range c.Pipeline.Sources {
		if src.Name == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingName, i)
		}

		if src.URL == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingURL, i)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if c.Pipeline.DelaySec < 0 {
		return ErrInvalidDelay
	}

	if c.Pipeline.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Pipeline.RawDir == "" {
		return ErrMissingRawDir
	}

	if c.Pipeline.ProcessedDir == "" {
		return ErrMissingProcessedDir
	}

	if c.Rates.Endpoint == "" {
		return ErrMissingEndpoint
	}

	for code, rate := range c.Rates.Fallback {
		if rate <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidFallbackRate, code)
		}
	}

	if c.Chunker.BatchSize < 1 {
		return ErrInvalidBatchSize
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetEnabledSources returns only enabled sources, in config order.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Pipeline.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// GetDelay returns the mandatory inter-job delay.
func (c *Config) GetDelay() time.Duration {
	return time.Duration(c.Pipeline.DelaySec) * time.Second
}

// GetTimeout returns the per-request HTTP timeout.
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Pipeline.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, DelaySec: %d, RawDir: %s}",
		len(c.Pipeline.Sources),
		c.Pipeline.DelaySec,
		c.Pipeline.RawDir,
	)
}
