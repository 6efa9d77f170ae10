package hist

import (
	"fmt"
	"math"
)

// Cut returns a new axis truncated to [low, high], along with a boolean mask
// over the original bins (true = retained) for slicing data arrays to match.
// Pass math.NaN for low or high to leave that side at the existing extreme.
//
// snap takes zero, one or two values: none means SnapNearest on both sides,
// one applies to both sides, two configure the low and high side
// independently. Valid values are SnapNearest, SnapExpand, SnapLow, SnapHigh
// and SnapClip. SnapExpand and SnapClip both resolve the low side to its low
// edge and the high side to its high edge, never shrinking past the
// requested bound; SnapClip then overwrites the boundary edge with the exact
// requested value, which can break uniform bin widths.
func (a *Axis) Cut(low, high float64, snap ...Snap) (*Axis, []bool, error) {
	snapLow, snapHigh, err := cutSnaps(snap)
	if err != nil {
		return nil, nil, err
	}

	lowi := 0
	if !math.IsNaN(low) {
		lowi, err = a.EdgeIndex(low, cutEdgeSnap(snapLow, SnapLow))
		if err != nil {
			return nil, nil, err
		}
	}
	highi := len(a.edges) - 1
	if !math.IsNaN(high) {
		highi, err = a.EdgeIndex(high, cutEdgeSnap(snapHigh, SnapHigh))
		if err != nil {
			return nil, nil, err
		}
	}

	if highi <= lowi {
		return nil, nil, fmt.Errorf("%w: cut [%v, %v] leaves no bins", ErrInvalidRange, low, high)
	}

	edges := make([]float64, highi-lowi+1)
	copy(edges, a.edges[lowi:highi+1])
	if !math.IsNaN(low) && snapLow == SnapClip {
		edges[0] = low
	}
	if !math.IsNaN(high) && snapHigh == SnapClip {
		edges[len(edges)-1] = high
	}

	cut, err := NewAxisEdges(edges)
	if err != nil {
		return nil, nil, err
	}
	cut.label = a.label

	mask := make([]bool, a.NBins())
	for i := lowi; i < highi; i++ {
		mask[i] = true
	}
	return cut, mask, nil
}

// cutSnaps resolves the variadic snap argument of Cut into per-side values.
func cutSnaps(snap []Snap) (low, high Snap, err error) {
	switch len(snap) {
	case 0:
		low, high = SnapNearest, SnapNearest
	case 1:
		low, high = snap[0], snap[0]
	case 2:
		low, high = snap[0], snap[1]
	default:
		return "", "", fmt.Errorf("%w: at most two snap values, got %d", ErrUnknownSnap, len(snap))
	}
	for _, s := range []Snap{low, high} {
		switch s {
		case SnapNearest, SnapExpand, SnapLow, SnapHigh, SnapClip:
		default:
			return "", "", fmt.Errorf("%w: %q", ErrUnknownSnap, s)
		}
	}
	return low, high, nil
}

// cutEdgeSnap maps a Cut snap to the EdgeIndex snap for one side. Expand and
// clip resolve to the side's own extreme so the cut never shrinks past the
// requested bound.
func cutEdgeSnap(s, side Snap) Snap {
	if s == SnapExpand || s == SnapClip {
		return side
	}
	return s
}

// MergeBins groups every n consecutive bins into one, returning a new axis.
//
// When n does not evenly divide NBins, snap picks which end the merge window
// sticks to: SnapLow drops the remainder from the high end, SnapHigh from
// the low end. With clip true (the usual choice) the leftover partial group
// is discarded entirely, keeping merged bins uniform where the source was
// uniform; with clip false the true original extreme is kept as a final
// boundary edge, producing one irregular group.
func (a *Axis) MergeBins(n int, snap Snap, clip bool) (*Axis, error) {
	idx, err := a.mergeIndices(n, snap, clip)
	if err != nil {
		return nil, err
	}
	edges := make([]float64, len(idx))
	for i, j := range idx {
		edges[i] = a.edges[j]
	}
	merged, err := NewAxisEdges(edges)
	if err != nil {
		return nil, err
	}
	merged.label = a.label
	return merged, nil
}

// mergeIndices returns the original edge indices that survive a MergeBins
// call. Histogram.Rebin reuses the same indices to regroup data, keeping
// edges and data consistent by construction.
func (a *Axis) mergeIndices(n int, snap Snap, clip bool) ([]int, error) {
	if snap != SnapLow && snap != SnapHigh {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSnap, snap)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: merge group of %d", ErrInvalidBinCount, n)
	}

	nbins := a.NBins()
	d, m := nbins/n, nbins%n

	var idx []int
	switch {
	case m == 0:
		for i := 0; i <= d; i++ {
			idx = append(idx, i*n)
		}
	case clip && snap == SnapLow:
		for i := 0; i <= d; i++ {
			idx = append(idx, i*n)
		}
	case clip && snap == SnapHigh:
		for i := 0; i <= d; i++ {
			idx = append(idx, m+i*n)
		}
	case snap == SnapLow:
		for i := 0; i <= d; i++ {
			idx = append(idx, i*n)
		}
		idx = append(idx, nbins)
	default: // snap == SnapHigh, not clipped
		idx = append(idx, 0)
		for i := 0; i <= d; i++ {
			idx = append(idx, m+i*n)
		}
	}

	if len(idx) < 2 {
		return nil, fmt.Errorf("%w: merging %d bins by %d leaves no bins", ErrInvalidBinCount, nbins, n)
	}
	return idx, nil
}
