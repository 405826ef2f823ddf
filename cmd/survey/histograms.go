package main

import (
	"fmt"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/covid-region-survey/internal/adapter/chart"
	"github.com/couchcryptid/covid-region-survey/internal/adapter/console"
	"github.com/couchcryptid/covid-region-survey/internal/adapter/csvfile"
	"github.com/couchcryptid/covid-region-survey/internal/adapter/xlsx"
	"github.com/couchcryptid/covid-region-survey/internal/config"
	"github.com/couchcryptid/covid-region-survey/internal/observability"
	"github.com/couchcryptid/covid-region-survey/internal/pipeline"
)

type histogramsFlags struct {
	data        string
	out         string
	cutoff      string
	xlsx        string
	metricsFile string
	batchSize   int
	logLevel    string
	logFormat   string
}

func newHistogramsCmd() *cobra.Command {
	var f histogramsFlags

	cmd := &cobra.Command{
		Use:   "histograms",
		Short: "Render pre/post cutoff histograms of household size and children",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistograms(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.data, "data", "", "survey CSV path (SURVEY_DATA_PATH)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "directory for histogram PNGs (SURVEY_OUTPUT_DIR)")
	cmd.Flags().StringVar(&f.cutoff, "cutoff", "", "vaccine cutoff date, YYYY-MM-DD (VACCINE_CUTOFF)")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "also write bin counts to this workbook (SURVEY_XLSX_PATH)")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile (METRICS_FILE)")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 0, "rows read per batch (BATCH_SIZE)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (LOG_LEVEL)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "json or text (LOG_FORMAT)")

	return cmd
}

// applyFlags overlays explicitly set flags on the env-derived config.
func applyFlags(cmd *cobra.Command, f histogramsFlags, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = f.data
	}
	if flags.Changed("out") {
		cfg.OutputDir = f.out
	}
	if flags.Changed("cutoff") {
		cutoff, err := config.ParseCutoff(f.cutoff)
		if err != nil {
			return fmt.Errorf("invalid --cutoff: %w", err)
		}
		cfg.Cutoff = cutoff
	}
	if flags.Changed("xlsx") {
		cfg.XLSXPath = f.xlsx
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize = f.batchSize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	return cfg.Validate()
}

func runHistograms(cmd *cobra.Command, f histogramsFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, f, cfg); err != nil {
		return err
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	reader, err := csvfile.Open(cfg.DataPath, logger)
	if err != nil {
		logger.Error("failed to open survey data", "path", cfg.DataPath, "error", err)
		return err
	}
	defer reader.Close()

	loaders := []pipeline.ReportLoader{
		// Logs own stdout; the summary goes to stderr so the two never interleave.
		console.NewSummary(cmd.ErrOrStderr()),
		chart.NewRenderer(cfg.OutputDir, logger),
	}
	if cfg.XLSXPath != "" {
		loaders = append(loaders, xlsx.NewExporter(cfg.XLSXPath, logger))
	}

	p := pipeline.New(reader, pipeline.NewTransformer(), loaders, logger, metrics, cfg.BatchSize, cfg.Cutoff)
	_, runErr := p.Run(cmd.Context())
	if runErr != nil {
		logger.Error("analysis failed", "error", runErr)
	}

	if cfg.MetricsFile != "" {
		if err := observability.WriteTextfile(cfg.MetricsFile, registry); err != nil {
			logger.Error("metrics textfile write failed", "path", cfg.MetricsFile, "error", err)
			if runErr == nil {
				return err
			}
		}
	}
	return runErr
}
