package stats

// TimeVariance tracks a value over virtual time. Each Add closes the
// interval since the previous Add and feeds the area of that interval
// (value x duration) into the underlying moments as one sample. Mean,
// Variance and Count therefore describe the per-interval areas; they are not
// a time-weighted mean or variance of the values. Sum is the total area.
//
// The clock is injected so the package stays independent of the kernel;
// embedders pass the scheduler's Now.
type TimeVariance struct {
	Variance
	now     func() float64
	current float64
	since   float64
}

// NewTimeVariance creates a time-weighted variance reading virtual time
// from now.
func NewTimeVariance(now func() float64) *TimeVariance {
	tv := &TimeVariance{now: now}
	tv.Variance.Reset()
	tv.since = now()
	return tv
}

// Reset discards all samples and restarts tracking at the current time.
func (tv *TimeVariance) Reset() {
	tv.Variance.Reset()
	tv.current = 0
	tv.since = tv.now()
}

// Area returns the accumulated area for the value currently being tracked.
func (tv *TimeVariance) Area() float64 {
	return tv.current * (tv.now() - tv.since)
}

// Current returns the value currently being tracked.
func (tv *TimeVariance) Current() float64 { return tv.current }

// Add closes the interval for the previous value and starts tracking x.
func (tv *TimeVariance) Add(x float64) {
	tv.Variance.Add(tv.Area())
	tv.current = x
	tv.since = tv.now()
}

// Finalize folds the area of the last tracked value into the statistics.
// Call at the end of a run.
func (tv *TimeVariance) Finalize() {
	tv.Variance.Add(tv.Area())
	tv.since = tv.now()
}
