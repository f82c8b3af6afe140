package stats

import "sort"

// Bucket is a single histogram cell: the bound it represents and how many
// samples landed on it.
type Bucket struct {
	Bound float64
	Count int64
}

// PrecisionHistogram grows buckets on demand: every distinct sample
// magnitude gets its own bucket, kept sorted by bound. Growth is one bucket
// per new magnitude, so the histogram is exact at the cost of O(distinct
// values) memory.
type PrecisionHistogram struct {
	Variance
	buckets []Bucket
}

// NewPrecisionHistogram creates an empty precision histogram.
func NewPrecisionHistogram() *PrecisionHistogram {
	h := &PrecisionHistogram{}
	h.Variance.Reset()
	return h
}

// Reset discards all buckets and moments.
func (h *PrecisionHistogram) Reset() {
	h.Variance.Reset()
	h.buckets = nil
}

// Add ingests one sample, creating its bucket if this magnitude is new.
func (h *PrecisionHistogram) Add(x float64) {
	h.Variance.Add(x)
	idx := sort.Search(len(h.buckets), func(i int) bool {
		return h.buckets[i].Bound >= x
	})
	if idx < len(h.buckets) && h.buckets[idx].Bound == x {
		h.buckets[idx].Count++
		return
	}
	h.buckets = append(h.buckets, Bucket{})
	copy(h.buckets[idx+1:], h.buckets[idx:])
	h.buckets[idx] = Bucket{Bound: x, Count: 1}
}

// NumBuckets returns the number of distinct magnitudes tracked.
func (h *PrecisionHistogram) NumBuckets() int { return len(h.buckets) }

// BucketAt returns bucket i in ascending bound order.
func (h *PrecisionHistogram) BucketAt(i int) Bucket { return h.buckets[i] }

// CountFor returns the count for an exact magnitude and whether it has a
// bucket.
func (h *PrecisionHistogram) CountFor(x float64) (int64, bool) {
	idx := sort.Search(len(h.buckets), func(i int) bool {
		return h.buckets[i].Bound >= x
	})
	if idx < len(h.buckets) && h.buckets[idx].Bound == x {
		return h.buckets[idx].Count, true
	}
	return 0, false
}
