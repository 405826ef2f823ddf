package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/covid-region-survey/internal/domain"
)

// Reader streams survey rows from a CSV file.
// It implements pipeline.BatchExtractor.
type Reader struct {
	closer io.Closer
	csv    *csv.Reader
	header []string
	line   int
	logger *slog.Logger
}

// Open opens path and validates its header row.
func Open(path string, logger *slog.Logger) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open survey csv: %w", err)
	}
	r, err := NewReader(f, logger)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	logger.Info("survey csv opened", "path", path, "columns", len(r.header))
	return r, nil
}

// NewReader wraps src and reads its header row. Required columns must be present.
func NewReader(src io.Reader, logger *slog.Logger) (*Reader, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("survey csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read survey csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}

	return &Reader{csv: cr, header: header, line: 1, logger: logger}, nil
}

// ExtractBatch reads up to batchSize rows. It returns io.EOF with the final
// (possibly empty) batch once the file is exhausted.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawRecord, error) {
	batch := make([]domain.RawRecord, 0, batchSize)
	for len(batch) < batchSize {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		row, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return batch, io.EOF
		}
		r.line++
		if err != nil {
			return batch, fmt.Errorf("read survey csv line %d: %w", r.line, err)
		}

		fields := make(map[string]string, len(r.header))
		for i, h := range r.header {
			if i < len(row) {
				fields[h] = strings.TrimSpace(row[i])
			}
		}
		batch = append(batch, domain.RawRecord{Line: r.line, Fields: fields})
	}
	return batch, nil
}

// Close releases the underlying file, if Open created one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func checkColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range domain.RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("survey csv missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
