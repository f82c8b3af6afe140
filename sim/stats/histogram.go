package stats

import (
	"fmt"
	"sort"
)

// Histogram counts samples into buckets defined by a strictly increasing
// sequence of upper bounds. A sample lands in the first bucket whose upper
// bound is >= the sample; anything above the last bound lands in the
// overflow bucket. The underlying mean and variance track every sample,
// overflow included.
type Histogram struct {
	Variance
	bounds   []float64
	counts   []int64
	overflow int64
}

// NewHistogram creates a histogram from bucket upper bounds, which must be
// strictly increasing and non-empty.
func NewHistogram(bounds []float64) (*Histogram, error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("%w: histogram needs at least one bucket bound", ErrInvalidParameter)
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return nil, fmt.Errorf("%w: histogram bounds not strictly increasing at index %d (%v <= %v)",
				ErrInvalidParameter, i, bounds[i], bounds[i-1])
		}
	}
	h := &Histogram{
		bounds: append([]float64(nil), bounds...),
		counts: make([]int64, len(bounds)),
	}
	h.Variance.Reset()
	return h, nil
}

// Reset clears all bucket counts and the underlying moments. The bucket
// bounds are kept.
func (h *Histogram) Reset() {
	h.Variance.Reset()
	for i := range h.counts {
		h.counts[i] = 0
	}
	h.overflow = 0
}

// Add ingests one sample.
func (h *Histogram) Add(x float64) {
	h.Variance.Add(x)
	idx := sort.SearchFloat64s(h.bounds, x)
	if idx == len(h.bounds) {
		h.overflow++
		return
	}
	h.counts[idx]++
}

// NumBuckets returns the number of bounded buckets (overflow excluded).
func (h *Histogram) NumBuckets() int { return len(h.bounds) }

// Bound returns the upper bound of bucket i.
func (h *Histogram) Bound(i int) float64 { return h.bounds[i] }

// CountAt returns the sample count of bucket i.
func (h *Histogram) CountAt(i int) int64 { return h.counts[i] }

// Overflow returns the count of samples above the last bound.
func (h *Histogram) Overflow() int64 { return h.overflow }
