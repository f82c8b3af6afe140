// Package stats provides online statistics aggregators for simulation
// output analysis: running mean and variance, the histogram family, a
// quantile estimator and a time-weighted variance.
//
// All aggregators ingest one sample at a time via Add and answer queries in
// O(1), except the histograms, which hold per-bucket state, and Quantile,
// whose Value walks its histogram's buckets. Queries that are
// undefined for the number of samples seen so far return ErrNotYetDefined
// instead of a fabricated value.
package stats
