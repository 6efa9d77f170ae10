package histplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/gridhist/hist"
)

// Line renders a 1D histogram as a step line. An optional range of one or
// two values restricts the plotted interval, as in Histogram.AsLine.
func Line(h *hist.Histogram, rng ...float64) (*plot.Plot, error) {
	xs, ys, ext, err := h.AsLine(rng...)
	if err != nil {
		return nil, err
	}

	p := newPlot(h)
	line, err := plotter.NewLine(toXYs(xs, ys))
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(1)
	p.Add(line)
	applyExtent(p, ext)
	return p, nil
}

// Filled renders a 1D histogram as a step region filled down to the ymin
// baseline.
func Filled(h *hist.Histogram, ymin float64, rng ...float64) (*plot.Plot, error) {
	xs, ys, ext, err := h.AsPolygon(ymin, rng...)
	if err != nil {
		return nil, err
	}

	p := newPlot(h)
	poly, err := plotter.NewPolygon(toXYs(xs, ys))
	if err != nil {
		return nil, err
	}
	poly.Color = color.RGBA{R: 70, G: 130, B: 180, A: 160}
	p.Add(poly)
	applyExtent(p, ext)
	return p, nil
}

// valuesWithErrors adapts bin centers, values and uncertainties to the
// plotter XYer and YErrorer interfaces.
type valuesWithErrors struct {
	xs, ys, errs []float64
}

func (v valuesWithErrors) Len() int                    { return len(v.xs) }
func (v valuesWithErrors) XY(i int) (x, y float64)     { return v.xs[i], v.ys[i] }
func (v valuesWithErrors) YError(i int) (l, h float64) { return v.errs[i], v.errs[i] }

// ErrorBars renders a 1D histogram as points at the bin centers with
// vertical uncertainty bars. Untracked histograms get Poisson bars.
func ErrorBars(h *hist.Histogram) (*plot.Plot, error) {
	if h.Dim() != 1 {
		return nil, fmt.Errorf("%w: error bars need a 1D histogram", hist.ErrDimension)
	}

	data := valuesWithErrors{
		xs:   h.Axis(0).BinCenters(),
		ys:   h.Data(),
		errs: h.Uncert(),
	}
	p := newPlot(h)
	scatter, err := plotter.NewScatter(data)
	if err != nil {
		return nil, err
	}
	bars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return nil, err
	}
	p.Add(scatter, bars)
	return p, nil
}

// Save writes a plot as a PNG at a standard size.
func Save(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func newPlot(h *hist.Histogram) *plot.Plot {
	p := plot.New()
	p.Title.Text = h.Title()
	p.X.Label.Text = h.Axis(0).Label()
	p.Y.Label.Text = h.Label()
	return p
}

func applyExtent(p *plot.Plot, ext hist.Extent) {
	p.X.Min, p.X.Max = ext[0], ext[1]
	p.Y.Min, p.Y.Max = ext[2], ext[3]
}

func toXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}
