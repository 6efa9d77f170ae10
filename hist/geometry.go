package hist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Extent is a plot bounding box: [xmin, xmax, ymin, ymax].
type Extent [4]float64

// AsLine returns step-function coordinates for rendering a 1D histogram:
// two (x, y) points per bin, plus the data extent. An optional range of one
// or two values restricts the line to [low, high] first, snapping to the
// nearest edges; one value sets only the low side.
//
// The output is pure derived geometry from edges and data; the histogram is
// not mutated.
func (h *Histogram) AsLine(rng ...float64) (xs, ys []float64, ext Extent, err error) {
	src, err := h.lineSource(rng)
	if err != nil {
		return nil, nil, Extent{}, err
	}

	edges := src.axes[0].Edges()
	data := src.data.data
	xs = make([]float64, 0, 2*len(data))
	ys = make([]float64, 0, 2*len(data))
	for i, d := range data {
		xs = append(xs, edges[i], edges[i+1])
		ys = append(ys, d, d)
	}
	ext = Extent{edges[0], edges[len(edges)-1], floats.Min(data), floats.Max(data)}
	return xs, ys, ext, nil
}

// AsPolygon returns the closed step region of a 1D histogram: the AsLine
// coordinates with both ends dropped to the ymin baseline, suitable for a
// filled rendering. The optional range behaves as in AsLine.
func (h *Histogram) AsPolygon(ymin float64, rng ...float64) (xs, ys []float64, ext Extent, err error) {
	lx, ly, ext, err := h.AsLine(rng...)
	if err != nil {
		return nil, nil, Extent{}, err
	}
	xs = make([]float64, 0, len(lx)+2)
	ys = make([]float64, 0, len(ly)+2)
	xs = append(xs, lx[0])
	ys = append(ys, ymin)
	xs = append(xs, lx...)
	ys = append(ys, ly...)
	xs = append(xs, lx[len(lx)-1])
	ys = append(ys, ymin)
	ext[2] = math.Min(ext[2], ymin)
	return xs, ys, ext, nil
}

// lineSource resolves the optional range argument of AsLine/AsPolygon into
// the histogram to trace: the receiver itself, or a nearest-snapped cut.
func (h *Histogram) lineSource(rng []float64) (*Histogram, error) {
	if len(h.axes) != 1 {
		return nil, fmt.Errorf("%w: line geometry needs a 1D histogram", ErrDimension)
	}
	switch len(rng) {
	case 0:
		return h, nil
	case 1:
		return h.Cut(0, rng[0], math.NaN(), SnapNearest)
	case 2:
		return h.Cut(0, rng[0], rng[1], SnapNearest)
	}
	return nil, fmt.Errorf("%w: range takes at most two values, got %d", ErrInvalidRange, len(rng))
}
