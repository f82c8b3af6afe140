package stats

import (
	"fmt"
	"math"
)

// Pareto evaluates the density and distribution functions of a Pareto
// power law with shape gamma and scale k.
type Pareto struct {
	gamma float64
	k     float64

	kToGamma float64
}

// NewPareto creates a Pareto distribution. Both parameters must be
// positive.
func NewPareto(gamma, k float64) (*Pareto, error) {
	if gamma <= 0 || k <= 0 {
		return nil, fmt.Errorf("%w: pareto gamma %v and k %v must be > 0", ErrInvalidParameter, gamma, k)
	}
	return &Pareto{gamma: gamma, k: k, kToGamma: math.Pow(k, gamma)}, nil
}

// Gamma returns the shape parameter.
func (p *Pareto) Gamma() float64 { return p.gamma }

// K returns the scale parameter.
func (p *Pareto) K() float64 { return p.k }

// PDF evaluates the density at x. Zero below the scale parameter.
func (p *Pareto) PDF(x float64) float64 {
	if x < p.k {
		return 0
	}
	return p.gamma * p.kToGamma / math.Pow(x, p.gamma+1)
}

// CDF evaluates the distribution at x. Zero below the scale parameter.
func (p *Pareto) CDF(x float64) float64 {
	if x < p.k {
		return 0
	}
	return 1 - math.Pow(p.k/x, p.gamma)
}
