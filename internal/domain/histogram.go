package domain

// Bin counts for the two analysed fields.
const (
	ChildrenBins = 10
	SizeBins     = 20
)

// Histogram counts integer values into unit-width bins [0, len(Bins)).
type Histogram struct {
	Field      string
	Bins       []int
	OutOfRange int
	Missing    int
}

// NewHistogram creates an empty histogram with one bin per value in [0, bins).
func NewHistogram(field string, bins int) *Histogram {
	if bins < 0 {
		bins = 0
	}
	return &Histogram{Field: field, Bins: make([]int, bins)}
}

// Add counts one value. nil counts as missing.
func (h *Histogram) Add(v *int) {
	switch {
	case v == nil:
		h.Missing++
	case *v < 0 || *v >= len(h.Bins):
		h.OutOfRange++
	default:
		h.Bins[*v]++
	}
}

// Total returns the number of binned values.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h.Bins {
		n += c
	}
	return n
}

// Max returns the largest bin count.
func (h *Histogram) Max() int {
	m := 0
	for _, c := range h.Bins {
		if c > m {
			m = c
		}
	}
	return m
}
