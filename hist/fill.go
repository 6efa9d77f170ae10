package hist

import (
	"fmt"
	"math"
)

// Fill accumulates unit-weight samples, one coordinate slice per axis. All
// slices must have the same length; sample k is the point
// (cols[0][k], cols[1][k], ...). Samples falling outside any axis are
// silently dropped, per the usual overflow/underflow convention.
func (h *Histogram) Fill(cols ...[]float64) error {
	return h.fill(nil, cols)
}

// FillWeighted accumulates samples with per-sample weights. When
// uncertainty is tracked, each weight accumulates into its cell's
// uncertainty in quadrature.
func (h *Histogram) FillWeighted(weights []float64, cols ...[]float64) error {
	if weights == nil {
		return fmt.Errorf("%w: nil weights", ErrShape)
	}
	return h.fill(weights, cols)
}

func (h *Histogram) fill(weights []float64, cols [][]float64) error {
	if len(cols) != len(h.axes) {
		return fmt.Errorf("%w: %d coordinate slices for %d axes", ErrDimension, len(cols), len(h.axes))
	}
	n := len(cols[0])
	for d, col := range cols {
		if len(col) != n {
			return fmt.Errorf("%w: coordinate slice %d has length %d, want %d", ErrShape, d, len(col), n)
		}
	}
	if weights != nil && len(weights) != n {
		return fmt.Errorf("%w: %d weights for %d samples", ErrShape, len(weights), n)
	}

	pt := make([]float64, len(cols))
	for k := 0; k < n; k++ {
		for d := range cols {
			pt[d] = cols[d][k]
		}
		w := 1.0
		if weights != nil {
			w = weights[k]
		}
		if err := h.FillOne(pt, w); err != nil {
			return err
		}
	}
	return nil
}

// FillOne accumulates a single sample point with the given weight.
// Out-of-range points are dropped, not reported. A fractional weight
// promotes the histogram to Float64.
func (h *Histogram) FillOne(pt []float64, w float64) error {
	ix, ok, err := h.binIndex(pt)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if w != math.Trunc(w) {
		h.dtype = Float64
	}
	h.data.addAt(ix, w)
	if h.uncert != nil {
		// Weighted fills accumulate variance; uncertainty is its root.
		u := h.uncert.at(ix)
		h.uncert.setAt(ix, math.Sqrt(u*u+w*w))
	}
	return nil
}
