package hist

import (
	"fmt"
	"sort"
)

// checkAxis validates an axis index against the histogram's dimensionality.
func (h *Histogram) checkAxis(axis int) error {
	if axis < 0 || axis >= len(h.axes) {
		return fmt.Errorf("%w: %d of %d", ErrAxisIndex, axis, len(h.axes))
	}
	return nil
}

// Cut restricts one axis to [low, high], slicing the data and uncertainty
// arrays to the retained bins. Every other axis is untouched. Pass math.NaN
// for low or high to leave that side open; snap follows Axis.Cut.
func (h *Histogram) Cut(axis int, low, high float64, snap ...Snap) (*Histogram, error) {
	if err := h.checkAxis(axis); err != nil {
		return nil, err
	}
	cutAxis, mask, err := h.axes[axis].Cut(low, high, snap...)
	if err != nil {
		return nil, err
	}

	axes := h.cloneAxes()
	axes[axis] = cutAxis
	data := h.data.compressAxis(axis, mask)
	var uncert *ndarray
	if h.uncert != nil {
		uncert = h.uncert.compressAxis(axis, mask)
	}
	return h.withStructure(axes, data, uncert), nil
}

// Rebin merges every n consecutive bins along one axis, summing their
// contents and combining uncertainties in quadrature. snap and clip follow
// Axis.MergeBins; any remainder bins dropped from the edges are dropped
// from the data identically, keeping shapes consistent.
func (h *Histogram) Rebin(n, axis int, snap Snap, clip bool) (*Histogram, error) {
	if err := h.checkAxis(axis); err != nil {
		return nil, err
	}
	src := h.axes[axis]
	idx, err := src.mergeIndices(n, snap, clip)
	if err != nil {
		return nil, err
	}
	srcEdges := src.Edges()
	edges := make([]float64, len(idx))
	for i, j := range idx {
		edges[i] = srcEdges[j]
	}
	merged, err := NewAxisEdges(edges)
	if err != nil {
		return nil, err
	}
	merged.SetLabel(src.Label())

	axes := h.cloneAxes()
	axes[axis] = merged
	data := h.data.groupAxis(axis, idx, false)
	var uncert *ndarray
	if h.uncert != nil {
		uncert = h.uncert.groupAxis(axis, idx, true)
	}
	return h.withStructure(axes, data, uncert), nil
}

// Slices decomposes the histogram along one axis into a fully materialized
// list of reduced-dimension sub-histograms, one per bin of that axis. A 2D
// histogram becomes a strip of 1D profiles for downstream analysis or
// plotting.
func (h *Histogram) Slices(axis int) ([]*Histogram, error) {
	if err := h.checkAxis(axis); err != nil {
		return nil, err
	}
	if len(h.axes) < 2 {
		return nil, fmt.Errorf("%w: slicing needs at least two axes", ErrDimension)
	}

	out := make([]*Histogram, h.axes[axis].NBins())
	for j := range out {
		axes := make([]*Axis, 0, len(h.axes)-1)
		for d, a := range h.axes {
			if d != axis {
				axes = append(axes, a.Clone())
			}
		}
		data := h.data.sliceAxis(axis, j)
		var uncert *ndarray
		if h.uncert != nil {
			uncert = h.uncert.sliceAxis(axis, j)
		}
		out[j] = h.withStructure(axes, data, uncert)
	}
	return out, nil
}

// SumOver sums out the named axes, combining uncertainties in quadrature
// across the collapsed dimensions. At least one axis must remain; for the
// grand total use Sum.
func (h *Histogram) SumOver(axes ...int) (*Histogram, error) {
	if len(axes) == 0 {
		return h.Clone(), nil
	}
	if len(axes) >= len(h.axes) {
		return nil, fmt.Errorf("%w: summing over %d of %d axes leaves nothing", ErrDimension, len(axes), len(h.axes))
	}
	drop := make([]int, len(axes))
	copy(drop, axes)
	sort.Sort(sort.Reverse(sort.IntSlice(drop)))
	for i, ax := range drop {
		if err := h.checkAxis(ax); err != nil {
			return nil, err
		}
		if i > 0 && drop[i-1] == ax {
			return nil, fmt.Errorf("%w: axis %d repeated", ErrAxisIndex, ax)
		}
	}

	keptAxes := h.cloneAxes()
	data := h.data
	uncert := h.uncert
	// Collapse from the highest axis down so lower indices stay valid.
	for _, ax := range drop {
		data = data.sumAxis(ax, false)
		if uncert != nil {
			uncert = uncert.sumAxis(ax, true)
		}
		keptAxes = append(keptAxes[:ax], keptAxes[ax+1:]...)
	}
	return h.withStructure(keptAxes, data, uncert), nil
}

// Projection reduces the histogram to a single kept axis by summing over
// all the others.
func (h *Histogram) Projection(axis int) (*Histogram, error) {
	if err := h.checkAxis(axis); err != nil {
		return nil, err
	}
	drop := make([]int, 0, len(h.axes)-1)
	for d := range h.axes {
		if d != axis {
			drop = append(drop, d)
		}
	}
	if len(drop) == 0 {
		return h.Clone(), nil
	}
	return h.SumOver(drop...)
}

// Sum returns the total of all bin values.
func (h *Histogram) Sum() float64 {
	total := 0.0
	for _, v := range h.data.data {
		total += v
	}
	return total
}

// Occupancy builds a 1D histogram of the histogram's own cell values: each
// bin counts how many cells of the original data fall into that value
// range. Cell values outside [low, high) are dropped like any other
// overflow.
func (h *Histogram) Occupancy(bins int, low, high float64) (*Histogram, error) {
	occ, err := NewUniform(bins, low, high)
	if err != nil {
		return nil, err
	}
	pt := make([]float64, 1)
	for _, v := range h.data.data {
		pt[0] = v
		if err := occ.FillOne(pt, 1); err != nil {
			return nil, err
		}
	}
	return occ, nil
}

func (h *Histogram) cloneAxes() []*Axis {
	axes := make([]*Axis, len(h.axes))
	for i, a := range h.axes {
		axes[i] = a.Clone()
	}
	return axes
}
