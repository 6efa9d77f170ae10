package histplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/banshee-data/gridhist/hist"
)

// histGrid adapts a 2D histogram to plotter.GridXYZ: the first axis maps to
// plot columns, the second to rows, with cells placed at bin centers.
type histGrid struct {
	h      *hist.Histogram
	xc, yc []float64
}

func newHistGrid(h *hist.Histogram) histGrid {
	return histGrid{
		h:  h,
		xc: h.Axis(0).BinCenters(),
		yc: h.Axis(1).BinCenters(),
	}
}

func (g histGrid) Dims() (c, r int)   { return len(g.xc), len(g.yc) }
func (g histGrid) X(c int) float64    { return g.xc[c] }
func (g histGrid) Y(r int) float64    { return g.yc[r] }
func (g histGrid) Z(c, r int) float64 { return g.h.DataAt(c, r) }

// HeatMap renders a 2D histogram as a heat map over the bin grid.
func HeatMap(h *hist.Histogram) (*plot.Plot, error) {
	if h.Dim() != 2 {
		return nil, fmt.Errorf("%w: heat map needs a 2D histogram", hist.ErrDimension)
	}

	p := plot.New()
	p.Title.Text = h.Title()
	p.X.Label.Text = h.Axis(0).Label()
	p.Y.Label.Text = h.Axis(1).Label()

	hm := plotter.NewHeatMap(newHistGrid(h), palette.Heat(12, 1))
	p.Add(hm)
	return p, nil
}
