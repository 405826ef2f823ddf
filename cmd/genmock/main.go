// Command genmock writes a deterministic synthetic survey CSV with the same
// columns and non-answer conventions as the real tracker export. It is meant
// for local runs of cmd/survey and for fixtures.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/cov19tracker_mock.csv -rows 2000 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/covid-region-survey/internal/domain"
)

var (
	firstWave = time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)
	waves     = 21 // April 2020 through December 2021
)

// nonAnswers are written into household_children and household_size at the
// rates below so the generated file exercises the sentinel filtering.
var nonAnswers = []string{"Prefer not to say", "Don't know"}

const (
	childrenNonAnswerRate = 0.04
	sizeNonAnswerRate     = 0.02
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the synthetic survey CSV")
	rows := flag.Int("rows", 1000, "number of respondent rows to generate")
	seed := flag.Int64("seed", 42, "random seed; the same seed always yields the same file")
	flag.Parse()

	if *out == "" || *rows <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out, -rows > 0")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	if err := generate(f, *rows, *seed); err != nil {
		return err
	}
	log.Printf("wrote %d rows to %s", *rows, *out)
	return nil
}

// generate writes a header plus n rows. Household size is drawn first and
// children never exceed size-1, so every numeric row is plausible.
func generate(w io.Writer, n int, seed int64) error {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // fixture data, not security sensitive
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"respondent_id", domain.ColumnHouseholdSize, domain.ColumnHouseholdChildren, domain.ColumnYearMonth}); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		size := 1 + rng.Intn(8)
		children := rng.Intn(size)

		sizeField := strconv.Itoa(size)
		if rng.Float64() < sizeNonAnswerRate {
			sizeField = nonAnswers[rng.Intn(len(nonAnswers))]
		}
		childrenField := strconv.Itoa(children)
		if rng.Float64() < childrenNonAnswerRate {
			childrenField = nonAnswers[rng.Intn(len(nonAnswers))]
		}
		period := firstWave.AddDate(0, rng.Intn(waves), 0).Format("2006-01")

		if err := cw.Write([]string{strconv.Itoa(i + 1), sizeField, childrenField, period}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
