package histplot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/gridhist/hist"
)

// Strip decomposes a 2D histogram along one axis and writes one PNG per
// slice into outputDir (created if missing). Files are named
// <prefix>_<index>.png; the slice's bin interval goes into each title.
// Returns the number of plots written.
func Strip(h *hist.Histogram, axis int, outputDir, prefix string) (int, error) {
	if h.Dim() != 2 {
		return 0, fmt.Errorf("%w: strip plots need a 2D histogram", hist.ErrDimension)
	}
	slices, err := h.Slices(axis)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	edges := h.Axis(axis).Edges()
	label := h.Axis(axis).Label()
	count := 0
	for j, s := range slices {
		s.SetTitle(fmt.Sprintf("%s [%g, %g)", label, edges[j], edges[j+1]))
		p, err := Line(s)
		if err != nil {
			return count, fmt.Errorf("slice %d: %w", j, err)
		}
		file := filepath.Join(outputDir, fmt.Sprintf("%s_%03d.png", prefix, j))
		if err := Save(p, file); err != nil {
			return count, fmt.Errorf("slice %d: %w", j, err)
		}
		count++
	}
	return count, nil
}
