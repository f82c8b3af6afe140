package stats

import "fmt"

// Quantile estimates the q-quantile of the ingested samples by delegating
// to a PrecisionHistogram and walking its sorted buckets on query. The
// answer is the bound of the bucket containing the q*N-th sample; no
// interpolation inside the bucket is applied.
type Quantile struct {
	hist *PrecisionHistogram
	q    float64
}

// NewQuantile creates a quantile estimator for 0 < q < 1.
func NewQuantile(q float64) (*Quantile, error) {
	if q <= 0 || q >= 1 {
		return nil, fmt.Errorf("%w: quantile %v outside (0, 1)", ErrInvalidParameter, q)
	}
	return &Quantile{hist: NewPrecisionHistogram(), q: q}, nil
}

// Add ingests one sample.
func (q *Quantile) Add(x float64) {
	q.hist.Add(x)
}

// Reset discards all samples.
func (q *Quantile) Reset() {
	q.hist.Reset()
}

// Count returns the number of samples ingested.
func (q *Quantile) Count() int64 {
	return q.hist.Count()
}

// Q returns the configured quantile.
func (q *Quantile) Q() float64 { return q.q }

// Value returns the current quantile estimate. ErrNotYetDefined before the
// first sample.
func (q *Quantile) Value() (float64, error) {
	n := q.hist.Count()
	if n == 0 {
		return 0, fmt.Errorf("%w: quantile of zero samples", ErrNotYetDefined)
	}
	target := float64(n) * q.q

	var seen int64
	var bound float64
	for i := 0; i < q.hist.NumBuckets(); i++ {
		b := q.hist.BucketAt(i)
		seen += b.Count
		bound = b.Bound
		if float64(seen) >= target {
			break
		}
	}
	return bound, nil
}
