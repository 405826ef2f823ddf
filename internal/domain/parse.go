package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrSentinelRow marks a row dropped because household_children is a non-answer.
	ErrSentinelRow = errors.New("household_children is a non-answer")

	// ErrInvalidPeriod marks a year-month value that matches no known layout.
	ErrInvalidPeriod = errors.New("invalid year-month")
)

// sentinels are the survey's non-answer strings, matched exactly.
var sentinels = map[string]bool{
	"Prefer not to say": true,
	"Don't know":        true,
}

// periodLayouts are tried in order by parsePeriod.
var periodLayouts = []string{
	"2006-01",
	"2006-01-02",
	"2006/01",
	"01/2006",
	"1/2006",
	"Jan 2006",
	"January 2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// IsSentinel reports whether value is one of the survey's non-answer strings.
func IsSentinel(value string) bool {
	return sentinels[value]
}

// ParseRecord converts a raw CSV row into a Record. Rows whose
// household_children is a sentinel fail with ErrSentinelRow; an unparseable
// year-month fails with ErrInvalidPeriod.
func ParseRecord(raw RawRecord) (Record, error) {
	children := raw.Fields[ColumnHouseholdChildren]
	if IsSentinel(children) {
		return Record{}, fmt.Errorf("line %d: %w: %q", raw.Line, ErrSentinelRow, children)
	}

	period, err := parsePeriod(raw.Fields[ColumnYearMonth])
	if err != nil {
		return Record{}, fmt.Errorf("line %d: %w", raw.Line, err)
	}

	return Record{
		Line:              raw.Line,
		HouseholdSize:     parseCount(raw.Fields[ColumnHouseholdSize]),
		HouseholdChildren: parseCount(children),
		Period:            period,
	}, nil
}

// parsePeriod parses a year-month value and truncates it to the first of the month, UTC.
func parsePeriod(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidPeriod)
	}
	for _, layout := range periodLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		// Month of the wall clock as written, not of the UTC instant.
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, value)
}

// parseCount parses a household count. Returns nil for empty, non-numeric
// or non-integral values.
func parseCount(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}
