package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/covid-region-survey/internal/domain"
)

const barWidth = 40

// Summary prints the report as text tables with proportional bars.
// It implements pipeline.ReportLoader.
type Summary struct {
	w io.Writer
}

// NewSummary creates a Summary writing to w.
func NewSummary(w io.Writer) *Summary {
	return &Summary{w: w}
}

// Name identifies the summary in logs and metrics.
func (s *Summary) Name() string { return "console" }

// LoadReport writes the row accounting and one bar table per histogram.
func (s *Summary) LoadReport(_ context.Context, report domain.Report) error {
	tw := tabwriter.NewWriter(s.w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "cutoff\t%s\n", report.Cutoff.Format(time.DateOnly))
	fmt.Fprintf(tw, "rows read\t%d\n", report.RowsRead)
	fmt.Fprintf(tw, "rows dropped\t%d\n", report.RowsDropped)
	fmt.Fprintf(tw, "rows pre\t%d\n", report.Pre.Rows)
	fmt.Fprintf(tw, "rows post\t%d\n", report.Post.Rows)

	for _, part := range report.Partitions() {
		for _, h := range []*domain.Histogram{part.Children, part.Size} {
			fmt.Fprintf(tw, "\n%s (%s)\n", h.Field, part.Name)
			writeBars(tw, h)
		}
	}
	return tw.Flush()
}

func writeBars(w io.Writer, h *domain.Histogram) {
	peak := h.Max()
	for i, c := range h.Bins {
		fmt.Fprintf(w, "%d\t%d\t%s\n", i, c, bar(c, peak))
	}
	if h.OutOfRange > 0 {
		fmt.Fprintf(w, "out of range\t%d\t\n", h.OutOfRange)
	}
	if h.Missing > 0 {
		fmt.Fprintf(w, "missing\t%d\t\n", h.Missing)
	}
}

// bar scales count against peak to at most barWidth characters. Non-zero
// counts always get at least one character.
func bar(count, peak int) string {
	if count <= 0 || peak <= 0 {
		return ""
	}
	n := count * barWidth / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
