// Package histplot renders histograms. The gonum/plot constructors return a
// *plot.Plot so callers can restyle before saving; BarHTML writes a
// self-contained interactive chart for quick browser inspection.
package histplot
