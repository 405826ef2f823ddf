package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordAt(year int, month time.Month, size, children *int) Record {
	return Record{
		HouseholdSize:     size,
		HouseholdChildren: children,
		Period:            time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPartition(t *testing.T) {
	records := []Record{
		recordAt(2021, time.April, intPtr(1), intPtr(0)),
		recordAt(2021, time.May, intPtr(2), intPtr(1)),
		recordAt(2020, time.December, intPtr(3), intPtr(2)),
		recordAt(2021, time.June, intPtr(4), intPtr(3)),
	}

	pre, post := Partition(records, VaccineCutoff)

	require.Len(t, pre, 2)
	require.Len(t, post, 2)
	assert.Equal(t, time.April, pre[0].Period.Month())
	assert.Equal(t, time.December, pre[1].Period.Month())
	assert.Equal(t, time.May, post[0].Period.Month(), "cutoff month belongs to post")
	assert.Equal(t, time.June, post[1].Period.Month())

	t.Run("disjoint and exhaustive", func(t *testing.T) {
		assert.Equal(t, len(records), len(pre)+len(post))
		for _, r := range pre {
			assert.True(t, r.Period.Before(VaccineCutoff))
		}
		for _, r := range post {
			assert.False(t, r.Period.Before(VaccineCutoff))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		pre, post := Partition(nil, VaccineCutoff)
		assert.Empty(t, pre)
		assert.Empty(t, post)
	})
}

func TestHistogram(t *testing.T) {
	h := NewHistogram(ColumnHouseholdChildren, ChildrenBins)
	for _, v := range []*int{intPtr(0), intPtr(0), intPtr(3), intPtr(9), intPtr(10), intPtr(-1), nil} {
		h.Add(v)
	}

	want := []int{2, 0, 0, 1, 0, 0, 0, 0, 0, 1}
	if diff := cmp.Diff(want, h.Bins); diff != "" {
		t.Errorf("bins mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, h.Total())
	assert.Equal(t, 2, h.OutOfRange)
	assert.Equal(t, 1, h.Missing)
	assert.Equal(t, 2, h.Max())

	assert.Len(t, NewHistogram(ColumnHouseholdSize, SizeBins).Bins, 20)
	assert.Empty(t, NewHistogram("x", -3).Bins)
}

func TestBuildReport(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	records := []Record{
		recordAt(2021, time.January, intPtr(4), intPtr(2)),
		recordAt(2021, time.March, intPtr(1), intPtr(0)),
		recordAt(2021, time.May, intPtr(19), intPtr(9)),
		recordAt(2021, time.July, nil, intPtr(12)),
	}

	report := BuildReport(records, VaccineCutoff)

	assert.Equal(t, VaccineCutoff, report.Cutoff)
	assert.Equal(t, fixed, report.GeneratedAt)

	assert.Equal(t, PartitionPre, report.Pre.Name)
	assert.Equal(t, 2, report.Pre.Rows)
	assert.Equal(t, 1, report.Pre.Children.Bins[2])
	assert.Equal(t, 1, report.Pre.Children.Bins[0])
	assert.Equal(t, 1, report.Pre.Size.Bins[4])
	assert.Equal(t, 1, report.Pre.Size.Bins[1])

	assert.Equal(t, PartitionPost, report.Post.Name)
	assert.Equal(t, 2, report.Post.Rows)
	assert.Equal(t, 1, report.Post.Children.Bins[9])
	assert.Equal(t, 1, report.Post.Children.OutOfRange)
	assert.Equal(t, 1, report.Post.Size.Bins[19])
	assert.Equal(t, 1, report.Post.Size.Missing)

	parts := report.Partitions()
	require.Len(t, parts, 2)
	assert.Equal(t, PartitionPre, parts[0].Name)
	assert.Equal(t, PartitionPost, parts[1].Name)
}
