package domain

import "time"

// Column names read from the survey CSV header.
const (
	ColumnHouseholdSize     = "household_size"
	ColumnHouseholdChildren = "household_children"
	ColumnYearMonth         = "year-month"
)

// RequiredColumns lists the header fields every survey file must carry.
var RequiredColumns = []string{ColumnHouseholdSize, ColumnHouseholdChildren, ColumnYearMonth}

// RawRecord is one CSV row keyed by header name.
type RawRecord struct {
	Line   int // 1-based line in the source file, header included
	Fields map[string]string
}

// Record is a parsed survey row.
type Record struct {
	Line              int
	HouseholdSize     *int // nil when the answer was not numeric
	HouseholdChildren *int
	Period            time.Time
}
