package domain

import "time"

// VaccineCutoff is the first day counted as post vaccine rollout.
var VaccineCutoff = time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC)

// Partition splits records by period: pre holds periods before cutoff, post
// holds the rest. Input order is preserved within each side.
func Partition(records []Record, cutoff time.Time) (pre, post []Record) {
	for _, r := range records {
		if r.Period.Before(cutoff) {
			pre = append(pre, r)
		} else {
			post = append(post, r)
		}
	}
	return pre, post
}
