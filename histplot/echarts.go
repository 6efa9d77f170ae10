package histplot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/gridhist/hist"
)

// BarHTML writes a 1D histogram as a self-contained interactive bar chart.
// Bars sit at the bin centers; the page is suitable for serving directly
// from a debugging endpoint.
func BarHTML(h *hist.Histogram, w io.Writer) error {
	if h.Dim() != 1 {
		return fmt.Errorf("%w: bar chart needs a 1D histogram", hist.ErrDimension)
	}

	centers := h.Axis(0).BinCenters()
	values := h.Data()
	labels := make([]string, len(centers))
	data := make([]opts.BarData, len(values))
	for i, c := range centers {
		labels[i] = strconv.FormatFloat(c, 'g', 4, 64)
		data[i] = opts.BarData{Value: values[i]}
	}

	title := h.Title()
	if title == "" {
		title = "Histogram"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("bins=%d total=%g", h.Size(), h.Sum())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: h.Axis(0).Label()}),
		charts.WithYAxisOpts(opts.YAxis{Name: h.Label()}),
	)
	bar.SetXAxis(labels).AddSeries(seriesName(h), data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func seriesName(h *hist.Histogram) string {
	if h.Label() != "" {
		return h.Label()
	}
	return "counts"
}
