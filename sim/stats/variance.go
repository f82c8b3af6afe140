package stats

import (
	"fmt"
	"math"
)

// Variance maintains a running mean and variance using Welford's algorithm
// (mean plus an M2 accumulator). The variance uses the n-1 denominator and
// is defined from two samples on.
type Variance struct {
	runningMean
	m2 float64
}

// runningMean names the embedded Mean so that the field does not shadow the
// promoted Mean() method.
type runningMean = Mean

// NewVariance creates an empty variance aggregator.
func NewVariance() *Variance {
	v := &Variance{}
	v.Reset()
	return v
}

// Reset discards all samples.
func (v *Variance) Reset() {
	v.runningMean.Reset()
	v.m2 = 0
}

// Add ingests one sample.
func (v *Variance) Add(x float64) {
	delta := x - v.mean
	v.runningMean.Add(x)
	v.m2 += delta * (x - v.mean)
}

// Variance returns the sample variance. ErrNotYetDefined below two samples.
func (v *Variance) Variance() (float64, error) {
	if v.n < 2 {
		return 0, fmt.Errorf("%w: variance needs >= 2 samples, have %d", ErrNotYetDefined, v.n)
	}
	return v.m2 / float64(v.n-1), nil
}

// StdDev returns the sample standard deviation.
func (v *Variance) StdDev() (float64, error) {
	variance, err := v.Variance()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}

// Confidence returns the half-width of the confidence interval around the
// mean at the given percentage level, using the large-sample normal
// approximation. Supported levels are 90, 95 and 99; anything else falls
// back to 95.
func (v *Variance) Confidence(percent float64) (float64, error) {
	sd, err := v.StdDev()
	if err != nil {
		return 0, err
	}
	t := 1.960
	switch percent {
	case 90:
		t = 1.645
	case 99:
		t = 2.576
	}
	return t * sd / math.Sqrt(float64(v.n)), nil
}
