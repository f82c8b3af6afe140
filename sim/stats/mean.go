package stats

import "math"

// Mean maintains a running mean using Welford's update, together with the
// min, max and sum of the ingested samples.
type Mean struct {
	n    int64
	mean float64
	min  float64
	max  float64
	sum  float64
}

// NewMean creates an empty mean aggregator.
func NewMean() *Mean {
	m := &Mean{}
	m.Reset()
	return m
}

// Reset discards all samples.
func (m *Mean) Reset() {
	m.n = 0
	m.mean = 0
	m.sum = 0
	m.min = math.Inf(1)
	m.max = math.Inf(-1)
}

// Add ingests one sample.
func (m *Mean) Add(x float64) {
	m.n++
	m.mean += (x - m.mean) / float64(m.n)
	m.sum += x
	if x < m.min {
		m.min = x
	}
	if x > m.max {
		m.max = x
	}
}

// Count returns the number of samples ingested.
func (m *Mean) Count() int64 { return m.n }

// Mean returns the running mean, or 0 before any sample.
func (m *Mean) Mean() float64 { return m.mean }

// Min returns the smallest sample seen, or +Inf before any sample.
func (m *Mean) Min() float64 { return m.min }

// Max returns the largest sample seen, or -Inf before any sample.
func (m *Mean) Max() float64 { return m.max }

// Sum returns the sum of all samples.
func (m *Mean) Sum() float64 { return m.sum }
