package hist

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns, per axis, the data-weighted mean of the bin centers: the
// sample mean of the filled points at bin-center resolution.
func (h *Histogram) Mean() []float64 {
	means := make([]float64, len(h.axes))
	for d, a := range h.axes {
		weights := h.axisWeights(d)
		means[d] = stat.Mean(a.BinCenters(), weights)
	}
	return means
}

// StD returns, per axis, the data-weighted population standard deviation of
// the bin centers.
func (h *Histogram) StD() []float64 {
	stds := make([]float64, len(h.axes))
	for d, a := range h.axes {
		centers := a.BinCenters()
		weights := h.axisWeights(d)
		mean := stat.Mean(centers, weights)
		var wsum, sq float64
		for i, c := range centers {
			dev := c - mean
			sq += weights[i] * dev * dev
			wsum += weights[i]
		}
		if wsum == 0 {
			stds[d] = math.NaN()
			continue
		}
		stds[d] = math.Sqrt(sq / wsum)
	}
	return stds
}

// axisWeights sums the data onto a single axis, giving the per-bin weights
// used by the moment calculations.
func (h *Histogram) axisWeights(axis int) []float64 {
	arr := h.data
	// Collapse every other axis, highest first so indices stay valid.
	for d := len(h.axes) - 1; d >= 0; d-- {
		if d == axis {
			continue
		}
		arr = arr.sumAxis(d, false)
	}
	return arr.flat()
}

// BinVolumes returns the N-dimensional volume of every cell (the product of
// the per-axis bin widths), flat row-major.
func (h *Histogram) BinVolumes() []float64 {
	vols := make([]float64, h.data.size())
	for i := range vols {
		vols[i] = 1
	}
	// Multiply in each axis's widths with the same stride decomposition
	// used everywhere else.
	for d, a := range h.axes {
		widths := a.BinWidths()
		outer, n, inner := h.data.axisDims(d)
		for o := 0; o < outer; o++ {
			for j := 0; j < n; j++ {
				base := (o*n + j) * inner
				for i := 0; i < inner; i++ {
					vols[base+i] *= widths[j]
				}
			}
		}
	}
	return vols
}

// Integral returns the sum of data times bin volume over the whole grid.
func (h *Histogram) Integral() float64 {
	vols := h.BinVolumes()
	total := 0.0
	for i, v := range h.data.data {
		total += v * vols[i]
	}
	return total
}

// Min returns the smallest bin value.
func (h *Histogram) Min() float64 { return floats.Min(h.data.data) }

// Max returns the largest bin value.
func (h *Histogram) Max() float64 { return floats.Max(h.data.data) }
