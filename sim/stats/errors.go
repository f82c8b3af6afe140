package stats

import "errors"

// Predefined errors
var (
	// ErrNotYetDefined indicates a query that needs more samples than the
	// aggregator has seen (variance below two samples, quantile of nothing).
	ErrNotYetDefined = errors.New("stats: not yet defined for this sample count")

	// ErrInvalidParameter indicates an aggregator constructed with
	// parameters outside their domain.
	ErrInvalidParameter = errors.New("stats: invalid parameter")
)
