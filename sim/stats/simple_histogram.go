package stats

import "fmt"

// SimpleHistogram counts samples into fixed-width buckets starting at zero.
// Bucket i covers [i*width, (i+1)*width). Samples at or beyond cap*width
// land in the overflow bucket; negative samples are rejected and counted
// separately.
type SimpleHistogram struct {
	Variance
	width    float64
	counts   []int64
	overflow int64
	rejected int64
}

// NewSimpleHistogram creates a histogram of cap buckets of the given width.
func NewSimpleHistogram(width float64, cap int) (*SimpleHistogram, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: bucket width %v must be > 0", ErrInvalidParameter, width)
	}
	if cap < 1 {
		return nil, fmt.Errorf("%w: bucket cap %d must be >= 1", ErrInvalidParameter, cap)
	}
	h := &SimpleHistogram{
		width:  width,
		counts: make([]int64, cap),
	}
	h.Variance.Reset()
	return h, nil
}

// Reset clears all counts and moments, keeping width and cap.
func (h *SimpleHistogram) Reset() {
	h.Variance.Reset()
	for i := range h.counts {
		h.counts[i] = 0
	}
	h.overflow = 0
	h.rejected = 0
}

// Add ingests one sample. Negative samples are rejected.
func (h *SimpleHistogram) Add(x float64) {
	if x < 0 {
		h.rejected++
		return
	}
	h.Variance.Add(x)
	idx := int(x / h.width)
	if idx >= len(h.counts) {
		h.overflow++
		return
	}
	h.counts[idx]++
}

// Width returns the bucket width.
func (h *SimpleHistogram) Width() float64 { return h.width }

// NumBuckets returns the bucket cap.
func (h *SimpleHistogram) NumBuckets() int { return len(h.counts) }

// CountAt returns the sample count of bucket i.
func (h *SimpleHistogram) CountAt(i int) int64 { return h.counts[i] }

// Overflow returns the count of samples at or beyond cap*width.
func (h *SimpleHistogram) Overflow() int64 { return h.overflow }

// Rejected returns the count of negative samples that were dropped.
func (h *SimpleHistogram) Rejected() int64 { return h.rejected }
