package chart

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/covid-region-survey/internal/domain"
)

var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// Renderer writes one PNG bar chart per histogram in a report.
// It implements pipeline.ReportLoader.
type Renderer struct {
	dir    string
	width  vg.Length
	height vg.Length
	logger *slog.Logger
}

// NewRenderer creates a Renderer writing into dir, creating it if needed.
func NewRenderer(dir string, logger *slog.Logger) *Renderer {
	return &Renderer{
		dir:    dir,
		width:  8 * vg.Inch,
		height: 5 * vg.Inch,
		logger: logger,
	}
}

// Name identifies the renderer in logs and metrics.
func (r *Renderer) Name() string { return "chart" }

// LoadReport renders household_children and household_size for the pre and
// post partitions, e.g. plots/household_children_pre.png.
func (r *Renderer) LoadReport(ctx context.Context, report domain.Report) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create plot dir: %w", err)
	}

	for _, part := range report.Partitions() {
		for _, h := range []*domain.Histogram{part.Children, part.Size} {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(r.dir, FileName(h.Field, part.Name))
			title := fmt.Sprintf("%s, %s-vaccine (n=%d)", h.Field, part.Name, h.Total())
			if err := r.render(h, title, path); err != nil {
				return err
			}
			r.logger.Info("histogram written", "path", path, "field", h.Field, "partition", part.Name)
		}
	}
	return nil
}

// FileName returns the PNG name for a field and partition.
func FileName(field, partition string) string {
	return field + "_" + partition + ".png"
}

func (r *Renderer) render(h *domain.Histogram, title, path string) error {
	p, err := newHistogramPlot(h, title)
	if err != nil {
		return err
	}
	if err := p.Save(r.width, r.height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// newHistogramPlot draws one bar per integer bin, labelled with the bin value.
func newHistogramPlot(h *domain.Histogram, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = h.Field
	p.Y.Label.Text = "respondents"

	values := make(plotter.Values, len(h.Bins))
	labels := make([]string, len(h.Bins))
	for i, c := range h.Bins {
		values[i] = float64(c)
		labels[i] = strconv.Itoa(i)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("build bar chart for %s: %w", h.Field, err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(plotter.NewGrid(), bars)
	p.NominalX(labels...)

	p.Y.Min = 0
	p.Y.Max = float64(max(h.Max(), 1)) * 1.1
	return p, nil
}
