package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/covid-region-survey/internal/domain"
)

// SummarySheet is the first sheet of every exported workbook.
const SummarySheet = "Summary"

// Exporter writes report histograms to an Excel workbook: a summary sheet
// plus one sheet per field with a row per bin and a column per partition.
// It implements pipeline.ReportLoader.
type Exporter struct {
	path   string
	logger *slog.Logger
}

// NewExporter creates an Exporter writing to path.
func NewExporter(path string, logger *slog.Logger) *Exporter {
	return &Exporter{path: path, logger: logger}
}

// Name identifies the exporter in logs and metrics.
func (e *Exporter) Name() string { return "xlsx" }

// LoadReport writes the summary and per-field sheets and saves the workbook.
func (e *Exporter) LoadReport(ctx context.Context, report domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeSummary(f, report); err != nil {
		return err
	}

	fields := []struct {
		pre, post *domain.Histogram
	}{
		{report.Pre.Children, report.Post.Children},
		{report.Pre.Size, report.Post.Size},
	}
	for _, fl := range fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeHistogramSheet(f, fl.pre, fl.post); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return fmt.Errorf("create xlsx dir: %w", err)
	}
	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", e.path, err)
	}
	e.logger.Info("workbook written", "path", e.path)
	return nil
}

func writeSummary(f *excelize.File, report domain.Report) error {
	rows := [][]any{
		{"cutoff", report.Cutoff.Format(time.DateOnly)},
		{"generated_at", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"rows_read", report.RowsRead},
		{"rows_dropped", report.RowsDropped},
		{"rows_pre", report.Pre.Rows},
		{"rows_post", report.Post.Rows},
	}
	return setRows(f, SummarySheet, rows)
}

// writeHistogramSheet lays out one field as bin | pre | post, followed by the
// out-of-range and missing tallies.
func writeHistogramSheet(f *excelize.File, pre, post *domain.Histogram) error {
	sheet := pre.Field
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := make([][]any, 0, len(pre.Bins)+3)
	rows = append(rows, []any{"bin", domain.PartitionPre, domain.PartitionPost})
	for i := range pre.Bins {
		rows = append(rows, []any{i, pre.Bins[i], binAt(post, i)})
	}
	rows = append(rows,
		[]any{"out_of_range", pre.OutOfRange, post.OutOfRange},
		[]any{"missing", pre.Missing, post.Missing},
	)
	return setRows(f, sheet, rows)
}

func binAt(h *domain.Histogram, i int) int {
	if i < len(h.Bins) {
		return h.Bins[i]
	}
	return 0
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
