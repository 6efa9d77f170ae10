// Package hist implements dense N-dimensional histograms with labeled,
// possibly non-uniform axes and optional per-bin uncertainty.
//
// An Axis is a strictly increasing sequence of bin edges along one
// real-valued dimension. A Histogram pairs an ordered tuple of axes with a
// dense array of bin values and an optional same-shaped array of
// uncertainties. Histograms are filled from sample coordinates, combined
// with arithmetic that propagates uncertainty in quadrature, and
// restructured by cutting, rebinning, slicing and projecting.
//
// Bins follow the half-open convention low <= x < high. Samples falling
// outside every axis are dropped during fills rather than reported.
//
// The package is a pure in-memory computation layer: no I/O, no
// goroutines, no internal locking. Concurrent mutation of a single
// Histogram requires external synchronisation.
package hist
