package hist

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
)

// Default tolerances for floating-point comparisons of edges and widths,
// matching the conventional allclose parameters.
const (
	DefaultRTol = 1e-5
	DefaultATol = 1e-8
)

// Snap selects which edge a point resolves to when cutting or merging an
// axis. EdgeIndex accepts SnapNearest, SnapLow and SnapHigh; Cut additionally
// accepts SnapExpand and SnapClip; MergeBins accepts SnapLow and SnapHigh.
type Snap string

const (
	SnapNearest Snap = "nearest"
	SnapLow     Snap = "low"
	SnapHigh    Snap = "high"
	SnapExpand  Snap = "expand"
	SnapClip    Snap = "clip"
)

// Axis is a single dimension of a histogram: a strictly increasing sequence
// of bin edges covering a continuous range of the real line, plus an
// optional label. Bins do not have to be uniform but there are no gaps.
//
// The zero value is not usable; construct with NewAxis or NewAxisEdges.
type Axis struct {
	edges []float64
	label string
}

// NewAxis builds an axis of bins uniform bins spanning [min, max].
func NewAxis(bins int, min, max float64) (*Axis, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBinCount, bins)
	}
	if !(min < max) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, min, max)
	}
	edges := make([]float64, bins+1)
	width := (max - min) / float64(bins)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	// Last edge lands exactly on max regardless of rounding.
	edges[bins] = max
	return &Axis{edges: edges}, nil
}

// NewAxisEdges builds an axis from an explicit edge sequence. The slice is
// copied defensively.
func NewAxisEdges(edges []float64) (*Axis, error) {
	if err := validateEdges(edges); err != nil {
		return nil, err
	}
	e := make([]float64, len(edges))
	copy(e, edges)
	return &Axis{edges: e}, nil
}

func validateEdges(edges []float64) error {
	if len(edges) < 2 {
		return fmt.Errorf("%w: got %d edges", ErrInvalidEdges, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i-1] < edges[i]) {
			return fmt.Errorf("%w: edge[%d]=%v, edge[%d]=%v",
				ErrInvalidEdges, i-1, edges[i-1], i, edges[i])
		}
	}
	return nil
}

// Edges returns a copy of the bin edges from low to high.
func (a *Axis) Edges() []float64 {
	e := make([]float64, len(a.edges))
	copy(e, a.edges)
	return e
}

// SetEdges replaces the edge sequence wholesale, re-validating strict
// monotonicity. The slice is copied.
func (a *Axis) SetEdges(edges []float64) error {
	if err := validateEdges(edges); err != nil {
		return err
	}
	e := make([]float64, len(edges))
	copy(e, edges)
	a.edges = e
	return nil
}

// Label returns the axis label, including units if applicable.
// Example: "distance (meters)".
func (a *Axis) Label() string { return a.label }

// SetLabel sets the axis label. Labels are purely descriptive: they are
// ignored by Equal and by all numeric operations.
func (a *Axis) SetLabel(label string) { a.label = label }

// NBins returns the number of bins, one less than the number of edges.
func (a *Axis) NBins() int { return len(a.edges) - 1 }

// Min returns the lowest edge.
func (a *Axis) Min() float64 { return a.edges[0] }

// Max returns the highest edge.
func (a *Axis) Max() float64 { return a.edges[len(a.edges)-1] }

// Limits returns the lowest and highest edges.
func (a *Axis) Limits() (min, max float64) { return a.Min(), a.Max() }

// Overflow returns a value guaranteed to be outside the range of this axis.
func (a *Axis) Overflow() float64 { return a.Max() + 1 }

// BinWidths returns the widths of all bins.
func (a *Axis) BinWidths() []float64 {
	w := make([]float64, a.NBins())
	for i := range w {
		w[i] = a.edges[i+1] - a.edges[i]
	}
	return w
}

// BinCenters returns the midpoints of all bins.
func (a *Axis) BinCenters() []float64 {
	c := make([]float64, a.NBins())
	for i := range c {
		c[i] = 0.5 * (a.edges[i] + a.edges[i+1])
	}
	return c
}

// BinWidth returns the width of bin b. When called without an argument it
// returns the width of bin 1 (the second bin), a historical default kept
// for compatibility.
func (a *Axis) BinWidth(b ...int) float64 {
	i := 1
	if len(b) > 0 {
		i = b[0]
	}
	return a.edges[i+1] - a.edges[i]
}

// Clone returns a deep copy of this axis, label included.
func (a *Axis) Clone() *Axis {
	c := &Axis{edges: make([]float64, len(a.edges)), label: a.label}
	copy(c.edges, a.edges)
	return c
}

// String formats the edge array. The label is not included.
func (a *Axis) String() string { return fmt.Sprint(a.edges) }

// Equal reports whether both axes have numerically close edges, within
// DefaultATol/DefaultRTol per edge. Labels are ignored.
func (a *Axis) Equal(that *Axis) bool {
	if that == nil || len(a.edges) != len(that.edges) {
		return false
	}
	for i := range a.edges {
		if !scalar.EqualWithinAbsOrRel(a.edges[i], that.edges[i], DefaultATol, DefaultRTol) {
			return false
		}
	}
	return true
}

// InAxis reports whether x lies within the axis: min <= x < max,
// consistent with Bin's half-open convention.
func (a *Axis) InAxis(x float64) bool {
	return a.edges[0] <= x && x < a.edges[len(a.edges)-1]
}

// Bin returns the index i such that edges[i] <= x < edges[i+1]. Below the
// first edge it returns a negative index; at or above the last edge it
// returns NBins.
func (a *Axis) Bin(x float64) int {
	// Insertion point on the right side of the edge array, minus one.
	return sort.Search(len(a.edges), func(i int) bool { return a.edges[i] > x }) - 1
}

// EdgeIndex maps x to the index of an edge (not a bin), clamped to
// [0, NBins]. SnapLow and SnapHigh pick the lower or upper bounding edge of
// the bin containing x; SnapNearest picks whichever is numerically closer,
// preferring the low edge on an exact tie. For both edges at once use
// EdgeIndexBoth.
func (a *Axis) EdgeIndex(x float64, snap Snap) (int, error) {
	low, high := a.EdgeIndexBoth(x)
	switch snap {
	case SnapNearest:
		dlow := math.Abs(x - a.edges[low])
		dhigh := math.Abs(a.edges[high] - x)
		if dhigh < dlow {
			return high, nil
		}
		return low, nil
	case SnapLow:
		return low, nil
	case SnapHigh:
		return high, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSnap, snap)
}

// EdgeIndexBoth returns the indices of the two edges bounding the bin that
// contains x, each clamped independently to [0, NBins].
func (a *Axis) EdgeIndexBoth(x float64) (low, high int) {
	bin := a.Bin(x)
	maxEdge := len(a.edges) - 1
	low = bin
	if low < 0 {
		low = 0
	}
	high = bin + 1
	if high > maxEdge {
		high = maxEdge
	}
	return low, high
}

// IsUniform reports whether all bin widths lie within atol + rtol*|median|
// of the median width. The median, not the mean, resists skew from a single
// outlier bin.
func (a *Axis) IsUniform(rtol, atol float64) bool {
	widths := a.BinWidths()
	med := median(widths)
	for _, w := range widths {
		if math.Abs(w-med) > atol+rtol*math.Abs(med) {
			return false
		}
	}
	return true
}

// median returns the median of v, averaging the two middle values for an
// even count. v is not modified.
func median(v []float64) float64 {
	s := make([]float64, len(v))
	copy(s, v)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return 0.5 * (s[n/2-1] + s[n/2])
}
