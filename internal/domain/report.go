package domain

import "time"

// Partition names used in logs, metrics labels and output file names.
const (
	PartitionPre  = "pre"
	PartitionPost = "post"
)

// PartitionSummary holds the histograms for one side of the cutoff.
type PartitionSummary struct {
	Name     string
	Rows     int
	Children *Histogram
	Size     *Histogram
}

// Report is the result of one analysis run.
type Report struct {
	Cutoff      time.Time
	RowsRead    int
	RowsDropped int
	Pre         PartitionSummary
	Post        PartitionSummary
	GeneratedAt time.Time
}

// Partitions returns the pre and post summaries in that order.
func (r Report) Partitions() []PartitionSummary {
	return []PartitionSummary{r.Pre, r.Post}
}

// BuildReport partitions records at cutoff and fills both histograms for each side.
// Row accounting for read and dropped rows is left to the caller.
func BuildReport(records []Record, cutoff time.Time) Report {
	pre, post := Partition(records, cutoff)
	return Report{
		Cutoff:      cutoff,
		Pre:         summarize(PartitionPre, pre),
		Post:        summarize(PartitionPost, post),
		GeneratedAt: clock.Now(),
	}
}

func summarize(name string, records []Record) PartitionSummary {
	s := PartitionSummary{
		Name:     name,
		Rows:     len(records),
		Children: NewHistogram(ColumnHouseholdChildren, ChildrenBins),
		Size:     NewHistogram(ColumnHouseholdSize, SizeBins),
	}
	for _, r := range records {
		s.Children.Add(r.HouseholdChildren)
		s.Size.Add(r.HouseholdSize)
	}
	return s
}
