// Package domain models the COVID-19 household survey extract used for the
// pre/post vaccine rollout comparison.
//
// # Data Source
//
// Rows come from the cleaned survey tracker export (cov19tracker_cleaned.csv),
// one respondent per row. Only three columns are used; everything else is
// carried through untouched in [RawRecord.Fields].
//
//	household_size      number of people in the household
//	household_children  number of children in the household
//	year-month          survey wave, e.g. "2021-05" or "2021-05-01"
//
// # Non-answers
//
// The survey encodes refusals as free text instead of leaving cells empty:
//
//	"Prefer not to say"
//	"Don't know"
//
// A row whose household_children holds either sentinel is dropped before any
// analysis ([ErrSentinelRow]). household_size is not filtered; a non-numeric
// size only leaves that field missing.
//
// Household counts are small integers. Some exports write them as floats
// ("3.0"), which are accepted when integral.
//
// # Periods
//
// year-month is parsed into the first day of its month in UTC. Several
// layouts are accepted (see [parsePeriod]); a value that matches none of
// them makes the row malformed and aborts the run.
//
// # Vaccine Cutoff
//
// Rows are split at [VaccineCutoff] (2021-05-01):
//
//	pre   period <  cutoff
//	post  period >= cutoff
//
// # Histograms
//
// Each partition gets two histograms with one bin per integer value:
//
//	household_children  bins 0–9
//	household_size      bins 0–19
//
// Values outside the bin range are counted separately and never binned.
package domain
