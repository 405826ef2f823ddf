package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/covid-region-survey/internal/domain"
	"github.com/couchcryptid/covid-region-survey/internal/observability"
)

// BatchExtractor reads up to batchSize raw rows from the source. It returns
// io.EOF once the source is exhausted, possibly alongside a final short batch.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawRecord, error)
}

// Transformer converts a raw row into a parsed record.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawRecord) (domain.Record, error)
}

// ReportLoader renders a finished report somewhere (files, stdout).
type ReportLoader interface {
	Name() string
	LoadReport(ctx context.Context, report domain.Report) error
}

// Pipeline runs the load, filter, split, and render steps once.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loaders     []ReportLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	batchSize   int
	cutoff      time.Time
}

// New creates a Pipeline. Loaders run in the given order.
func New(e BatchExtractor, t Transformer, loaders []ReportLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int, cutoff time.Time) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loaders:     loaders,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
		cutoff:      cutoff,
	}
}

// Run reads every row, drops non-answers, builds the pre/post histograms and
// hands the report to each loader. The first malformed row or failing loader
// aborts the run.
func (p *Pipeline) Run(ctx context.Context) (domain.Report, error) {
	start := domain.Now()
	p.logger.Info("pipeline started", "batch_size", p.batchSize, "cutoff", p.cutoff.Format(time.DateOnly))
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	records, read, dropped, err := p.extractAll(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.BuildReport(records, p.cutoff)
	report.RowsRead = read
	report.RowsDropped = dropped

	p.metrics.RowsPartitioned.WithLabelValues(domain.PartitionPre).Add(float64(report.Pre.Rows))
	p.metrics.RowsPartitioned.WithLabelValues(domain.PartitionPost).Add(float64(report.Post.Rows))
	p.logger.Info("rows partitioned",
		"read", read,
		"dropped", dropped,
		"pre", report.Pre.Rows,
		"post", report.Post.Rows,
	)

	for _, l := range p.loaders {
		if err := l.LoadReport(ctx, report); err != nil {
			p.metrics.LoadErrors.WithLabelValues(l.Name()).Inc()
			p.logger.Error("load report failed", "loader", l.Name(), "error", err)
			return report, fmt.Errorf("load %s: %w", l.Name(), err)
		}
		p.logger.Debug("report loaded", "loader", l.Name())
	}

	elapsed := domain.Now().Sub(start)
	p.metrics.RunDuration.Set(elapsed.Seconds())
	p.metrics.LastRunUnixTime.Set(float64(domain.Now().Unix()))
	p.logger.Info("pipeline finished", "duration", elapsed)
	return report, nil
}

// extractAll drains the extractor and returns the records that survived
// filtering along with read and dropped counts.
func (p *Pipeline) extractAll(ctx context.Context) ([]domain.Record, int, int, error) {
	var (
		records []domain.Record
		read    int
		dropped int
	)

	for {
		if err := ctx.Err(); err != nil {
			p.logger.Info("pipeline stopping", "reason", err)
			return nil, read, dropped, err
		}

		batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return nil, read, dropped, fmt.Errorf("extract batch: %w", err)
		}

		if len(batch) > 0 {
			read += len(batch)
			p.metrics.RowsRead.Add(float64(len(batch)))
			p.metrics.BatchSize.Observe(float64(len(batch)))
		}

		for _, raw := range batch {
			rec, err := p.transformer.Transform(ctx, raw)
			if errors.Is(err, domain.ErrSentinelRow) {
				dropped++
				p.metrics.RowsDropped.WithLabelValues(observability.DropReasonSentinel).Inc()
				p.logger.Debug("dropping row", "line", raw.Line, "reason", observability.DropReasonSentinel)
				continue
			}
			if err != nil {
				p.logger.Error("malformed row", "line", raw.Line, "error", err)
				return nil, read, dropped, fmt.Errorf("transform: %w", err)
			}
			records = append(records, rec)
		}

		if eof {
			return records, read, dropped, nil
		}
	}
}
