package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/covid-region-survey/internal/domain"
	"github.com/couchcryptid/covid-region-survey/internal/observability"
	"github.com/couchcryptid/covid-region-survey/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	rows  []domain.RawRecord
	pos   int
	err   error
	calls int
}

func (m *mockExtractor) ExtractBatch(_ context.Context, batchSize int) ([]domain.RawRecord, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	end := m.pos + batchSize
	if end >= len(m.rows) {
		batch := m.rows[m.pos:]
		m.pos = len(m.rows)
		return batch, io.EOF
	}
	batch := m.rows[m.pos:end]
	m.pos = end
	return batch, nil
}

type mockLoader struct {
	name    string
	err     error
	reports []domain.Report
}

func (m *mockLoader) Name() string { return m.name }

func (m *mockLoader) LoadReport(_ context.Context, report domain.Report) error {
	m.reports = append(m.reports, report)
	return m.err
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	fixed := time.Date(2024, 4, 27, 6, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	ext := &mockExtractor{rows: []domain.RawRecord{
		makeRow(2, "3", "1", "2021-03"),
		makeRow(3, "2", "Prefer not to say", "2021-03"),
		makeRow(4, "5", "3", "2021-05"),
		makeRow(5, "4", "Don't know", "2021-06"),
		makeRow(6, "1", "0", "2021-08"),
	}}
	ldr := &mockLoader{name: "mock"}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, pipeline.NewTransformer(), []pipeline.ReportLoader{ldr}, slog.Default(), metrics, 2, domain.VaccineCutoff)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, ext.calls)
	assert.Equal(t, 5, report.RowsRead)
	assert.Equal(t, 2, report.RowsDropped)
	assert.Equal(t, 1, report.Pre.Rows)
	assert.Equal(t, 2, report.Post.Rows)
	assert.Equal(t, fixed, report.GeneratedAt)

	wantPostChildren := []int{1, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	if diff := cmp.Diff(wantPostChildren, report.Post.Children.Bins); diff != "" {
		t.Errorf("post children mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, ldr.reports, 1)
	assert.Equal(t, report.RowsRead, ldr.reports[0].RowsRead)

	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.RowsRead))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues(observability.DropReasonSentinel)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RowsPartitioned.WithLabelValues(domain.PartitionPre)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RowsPartitioned.WithLabelValues(domain.PartitionPost)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.PipelineRunning))
	assert.Equal(t, float64(fixed.Unix()), testutil.ToFloat64(metrics.LastRunUnixTime))
}

func TestPipeline_Run_EmptySource(t *testing.T) {
	ldr := &mockLoader{name: "mock"}
	p := pipeline.New(&mockExtractor{}, pipeline.NewTransformer(), []pipeline.ReportLoader{ldr}, slog.Default(), observability.NewMetricsForTesting(), 50, domain.VaccineCutoff)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.RowsRead)
	assert.Zero(t, report.Pre.Rows)
	assert.Zero(t, report.Post.Rows)
	assert.Len(t, ldr.reports, 1)
}

func TestPipeline_Run_MalformedRowAborts(t *testing.T) {
	ext := &mockExtractor{rows: []domain.RawRecord{
		makeRow(2, "3", "1", "2021-03"),
		makeRow(3, "3", "1", "sometime"),
	}}
	ldr := &mockLoader{name: "mock"}
	p := pipeline.New(ext, pipeline.NewTransformer(), []pipeline.ReportLoader{ldr}, slog.Default(), observability.NewMetricsForTesting(), 10, domain.VaccineCutoff)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	assert.Contains(t, err.Error(), "line 3")
	assert.Empty(t, ldr.reports)
}

func TestPipeline_Run_ExtractError(t *testing.T) {
	ext := &mockExtractor{err: errors.New("disk gone")}
	p := pipeline.New(ext, pipeline.NewTransformer(), nil, slog.Default(), observability.NewMetricsForTesting(), 10, domain.VaccineCutoff)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract batch")
	assert.Contains(t, err.Error(), "disk gone")
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{rows: []domain.RawRecord{makeRow(2, "1", "0", "2021-01")}}
	ldr := &mockLoader{name: "mock"}
	p := pipeline.New(ext, pipeline.NewTransformer(), []pipeline.ReportLoader{ldr}, slog.Default(), observability.NewMetricsForTesting(), 10, domain.VaccineCutoff)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, ext.calls)
	assert.Empty(t, ldr.reports)
}

func TestPipeline_Run_LoaderErrorStopsLaterLoaders(t *testing.T) {
	first := &mockLoader{name: "chart", err: errors.New("no space left")}
	second := &mockLoader{name: "xlsx"}
	metrics := observability.NewMetricsForTesting()

	ext := &mockExtractor{rows: []domain.RawRecord{makeRow(2, "1", "0", "2021-01")}}
	p := pipeline.New(ext, pipeline.NewTransformer(), []pipeline.ReportLoader{first, second}, slog.Default(), metrics, 10, domain.VaccineCutoff)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load chart")
	assert.Len(t, first.reports, 1)
	assert.Empty(t, second.reports)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LoadErrors.WithLabelValues("chart")))
}

func TestSurveyTransformer_Transform(t *testing.T) {
	tfm := pipeline.NewTransformer()

	rec, err := tfm.Transform(context.Background(), makeRow(9, "4", "2", "2021-05"))
	require.NoError(t, err)
	assert.Equal(t, 9, rec.Line)
	require.NotNil(t, rec.HouseholdSize)
	assert.Equal(t, 4, *rec.HouseholdSize)

	_, err = tfm.Transform(context.Background(), makeRow(10, "4", "Don't know", "2021-05"))
	assert.ErrorIs(t, err, domain.ErrSentinelRow)
}

// --- helpers ---

func makeRow(line int, size, children, period string) domain.RawRecord {
	return domain.RawRecord{Line: line, Fields: map[string]string{
		domain.ColumnHouseholdSize:     size,
		domain.ColumnHouseholdChildren: children,
		domain.ColumnYearMonth:         period,
	}}
}
