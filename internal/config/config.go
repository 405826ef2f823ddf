package config

import (
	"errors"
	"fmt"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// CutoffLayout is the date format of VACCINE_CUTOFF and the --cutoff flag.
const CutoffLayout = "2006-01-02"

// MaxBatchSize matches the upper bound sharedcfg.ParseBatchSize applies to BATCH_SIZE.
const MaxBatchSize = 1000

// Config holds all analysis settings, populated from environment variables.
type Config struct {
	DataPath    string
	OutputDir   string
	XLSXPath    string
	MetricsFile string
	Cutoff      time.Time
	BatchSize   int
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	cutoff, err := ParseCutoff(sharedcfg.EnvOrDefault("VACCINE_CUTOFF", "2021-05-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid VACCINE_CUTOFF: %w", err)
	}

	cfg := &Config{
		DataPath:    sharedcfg.EnvOrDefault("SURVEY_DATA_PATH", "./Data/cov19tracker_cleaned.csv"),
		OutputDir:   sharedcfg.EnvOrDefault("SURVEY_OUTPUT_DIR", "plots"),
		XLSXPath:    sharedcfg.EnvOrDefault("SURVEY_XLSX_PATH", ""),
		MetricsFile: sharedcfg.EnvOrDefault("METRICS_FILE", ""),
		Cutoff:      cutoff,
		BatchSize:   batchSize,
		LogLevel:    sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that flags may have overridden after Load.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("SURVEY_DATA_PATH is required")
	}
	if c.OutputDir == "" {
		return errors.New("SURVEY_OUTPUT_DIR is required")
	}
	if c.BatchSize < 1 || c.BatchSize > MaxBatchSize {
		return fmt.Errorf("BATCH_SIZE must be 1-%d, got %d", MaxBatchSize, c.BatchSize)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// ParseCutoff parses a YYYY-MM-DD date as midnight UTC.
func ParseCutoff(s string) (time.Time, error) {
	return time.Parse(CutoffLayout, s)
}
