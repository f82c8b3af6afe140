package rng

import (
	"fmt"
	"math"
)

// Sampler produces the next variate from a stream.
type Sampler interface {
	Sample() float64
}

// Option configures stream construction.
type Option func(*streamConfig)

type streamConfig struct {
	seeds        *[3]uint32
	streamSelect int
}

// WithSeeds gives the stream an explicit seed triple instead of the
// process-wide cache.
func WithSeeds(s1, s2, s3 uint32) Option {
	return func(c *streamConfig) {
		c.seeds = &[3]uint32{s1, s2, s3}
	}
}

// WithStreamSelect skips n*1000 draws at construction so that streams built
// from the same seeds produce non-overlapping sequences.
func WithStreamSelect(n int) Option {
	return func(c *streamConfig) {
		c.streamSelect = n
	}
}

// newStreamSource resolves options into a private, advanced Source.
func newStreamSource(opts []Option) (*Source, error) {
	var cfg streamConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var src *Source
	if cfg.seeds != nil {
		s, err := NewSource(cfg.seeds[0], cfg.seeds[1], cfg.seeds[2])
		if err != nil {
			return nil, err
		}
		src = s
	} else {
		src = NewCachedSource()
	}

	if cfg.streamSelect < 0 {
		return nil, fmt.Errorf("%w: stream select %d is negative", ErrInvalidParameter, cfg.streamSelect)
	}
	src.Skip(cfg.streamSelect * 1000)
	return src, nil
}

// Uniform draws variates uniformly from [lo, hi).
type Uniform struct {
	src    *Source
	lo, hi float64
}

// NewUniform creates a uniform stream over [lo, hi).
func NewUniform(lo, hi float64, opts ...Option) (*Uniform, error) {
	if hi < lo {
		return nil, fmt.Errorf("%w: uniform bounds [%v, %v) inverted", ErrInvalidParameter, lo, hi)
	}
	src, err := newStreamSource(opts)
	if err != nil {
		return nil, err
	}
	return &Uniform{src: src, lo: lo, hi: hi}, nil
}

func (u *Uniform) Sample() float64 {
	return u.lo + (u.hi-u.lo)*u.src.Float64()
}

// Exponential draws variates from an exponential distribution with the
// given mean.
type Exponential struct {
	src  *Source
	mean float64
}

// NewExponential creates an exponential stream.
func NewExponential(mean float64, opts ...Option) (*Exponential, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("%w: exponential mean %v must be > 0", ErrInvalidParameter, mean)
	}
	src, err := newStreamSource(opts)
	if err != nil {
		return nil, err
	}
	return &Exponential{src: src, mean: mean}, nil
}

func (e *Exponential) Sample() float64 {
	for {
		u := e.src.Float64()
		if u == 1 {
			continue
		}
		return -e.mean * math.Log(1-u)
	}
}

// Normal draws variates from a Gaussian distribution using the polar
// Box-Muller method. The paired sample is cached, so draws alternate between
// computing a pair and returning the cached half.
type Normal struct {
	src          *Source
	mean, stdDev float64
	cached       float64
	hasCached    bool
}

// NewNormal creates a normal stream.
func NewNormal(mean, stdDev float64, opts ...Option) (*Normal, error) {
	if stdDev < 0 {
		return nil, fmt.Errorf("%w: normal stddev %v must be >= 0", ErrInvalidParameter, stdDev)
	}
	src, err := newStreamSource(opts)
	if err != nil {
		return nil, err
	}
	return &Normal{src: src, mean: mean, stdDev: stdDev}, nil
}

func (n *Normal) Sample() float64 {
	if n.hasCached {
		n.hasCached = false
		return n.mean + n.cached*n.stdDev
	}

	var v1, v2, s float64
	for {
		v1 = 2*n.src.Float64() - 1
		v2 = 2*n.src.Float64() - 1
		s = v1*v1 + v2*v2
		if s > 0 && s < 1 {
			break
		}
	}
	s = math.Sqrt(-2 * math.Log(s) / s)
	n.cached = v2 * s
	n.hasCached = true
	return n.mean + v1*s*n.stdDev
}

// Erlang draws variates from an Erlang distribution, realized as the scaled
// product of k uniforms with k = ceil((mean/stddev)^2).
type Erlang struct {
	src  *Source
	mean float64
	k    int
}

// NewErlang creates an Erlang stream. The coefficient of variation must be
// at most one: stddev must be positive and no larger than mean.
func NewErlang(mean, stdDev float64, opts ...Option) (*Erlang, error) {
	if stdDev <= 0 {
		return nil, fmt.Errorf("%w: erlang stddev %v must be > 0", ErrInvalidParameter, stdDev)
	}
	if stdDev > mean {
		return nil, fmt.Errorf("%w: erlang stddev %v exceeds mean %v (CV > 1); use HyperExponential", ErrInvalidParameter, stdDev, mean)
	}
	src, err := newStreamSource(opts)
	if err != nil {
		return nil, err
	}
	ratio := mean / stdDev
	k := int(math.Ceil(ratio * ratio))
	if k < 1 {
		k = 1
	}
	return &Erlang{src: src, mean: mean, k: k}, nil
}

func (e *Erlang) Sample() float64 {
	for {
		z := 1.0
		for i := 0; i < e.k; i++ {
			z *= e.src.Float64()
		}
		if z == 0 {
			continue
		}
		return -(e.mean / float64(e.k)) * math.Log(z)
	}
}

// HyperExponential draws variates from a two-phase hyperexponential
// mixture. It covers coefficients of variation above one, the regime the
// Erlang stream rejects.
type HyperExponential struct {
	src  *Source
	mean float64
	p    float64
}

// NewHyperExponential creates a hyperexponential stream. Requires
// stddev > mean (CV > 1).
func NewHyperExponential(mean, stdDev float64, opts ...Option) (*HyperExponential, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("%w: hyperexponential mean %v must be > 0", ErrInvalidParameter, mean)
	}
	if stdDev <= mean {
		return nil, fmt.Errorf("%w: hyperexponential stddev %v must exceed mean %v (CV > 1)", ErrInvalidParameter, stdDev, mean)
	}
	src, err := newStreamSource(opts)
	if err != nil {
		return nil, err
	}
	cv := stdDev / mean
	p := 0.5 * (1 - math.Sqrt((cv*cv-1)/(cv*cv+1)))
	return &HyperExponential{src: src, mean: mean, p: p}, nil
}

func (h *HyperExponential) Sample() float64 {
	var z float64
	if h.src.Float64() > h.p {
		z = h.mean / (1 - h.p)
	} else {
		z = h.mean / h.p
	}
	for {
		u := h.src.Float64()
		if u == 0 {
			continue
		}
		return -0.5 * z * math.Log(u)
	}
}

// Triangular draws variates from a triangular distribution with lower limit
// a, upper limit b and mode c, via the piecewise inverse CDF.
type Triangular struct {
	src     *Source
	a, b, c float64
}

// NewTriangular creates a triangular stream. Requires a < b and a <= c <= b.
func NewTriangular(a, b, c float64, opts ...Option) (*Triangular, error) {
	if a >= b {
		return nil, fmt.Errorf("%w: triangular bounds a=%v b=%v require a < b", ErrInvalidParameter, a, b)
	}
	if c < a || c > b {
		return nil, fmt.Errorf("%w: triangular mode %v outside [%v, %v]", ErrInvalidParameter, c, a, b)
	}
	src, err := newStreamSource(opts)
	if err != nil {
		return nil, err
	}
	return &Triangular{src: src, a: a, b: b, c: c}, nil
}

func (t *Triangular) Sample() float64 {
	f := (t.c - t.a) / (t.b - t.a)
	u := t.src.Float64()
	if u < f {
		return t.a + math.Sqrt(u*(t.b-t.a)*(t.c-t.a))
	}
	return t.b - math.Sqrt((1-u)*(t.b-t.a)*(t.b-t.c))
}

// Draw is a Bernoulli stream: each sample is true with probability p.
type Draw struct {
	src *Source
	p   float64
}

// NewDraw creates a boolean draw stream.
func NewDraw(p float64, opts ...Option) (*Draw, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: draw probability %v outside [0, 1]", ErrInvalidParameter, p)
	}
	src, err := newStreamSource(opts)
	if err != nil {
		return nil, err
	}
	return &Draw{src: src, p: p}, nil
}

// Sample returns true with probability p.
func (d *Draw) Sample() bool {
	return d.src.Float64() < d.p
}
