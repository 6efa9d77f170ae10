package histio

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"

	"github.com/banshee-data/gridhist/hist"
)

// AxisRecord is the serialized form of a single axis.
type AxisRecord struct {
	Edges []float64
	Label string
}

// Snapshot is the flat, self-contained form of a histogram: everything
// needed to rebuild it, with no live pointers. Uncert is nil when the
// histogram does not track uncertainty.
type Snapshot struct {
	Axes   []AxisRecord
	Data   []float64
	Uncert []float64
	DType  hist.DType
	Label  string
	Title  string
}

// FromHistogram captures a histogram into a Snapshot. The snapshot owns its
// slices; later changes to the histogram do not leak into it.
func FromHistogram(h *hist.Histogram) *Snapshot {
	s := &Snapshot{
		Axes:  make([]AxisRecord, h.Dim()),
		Data:  h.Data(),
		DType: h.DType(),
		Label: h.Label(),
		Title: h.Title(),
	}
	for i := range s.Axes {
		a := h.Axis(i)
		s.Axes[i] = AxisRecord{Edges: a.Edges(), Label: a.Label()}
	}
	if h.HasUncert() {
		s.Uncert = h.Uncert()
	}
	return s
}

// Histogram rebuilds the live histogram the snapshot was taken from.
func (s *Snapshot) Histogram() (*hist.Histogram, error) {
	axes := make([]*hist.Axis, len(s.Axes))
	for i, rec := range s.Axes {
		a, err := hist.NewAxisEdges(rec.Edges)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", i, err)
		}
		a.SetLabel(rec.Label)
		axes[i] = a
	}
	opts := []hist.Option{
		hist.WithData(s.Data),
		hist.WithDType(s.DType),
		hist.WithLabel(s.Label),
		hist.WithTitle(s.Title),
	}
	if s.Uncert != nil {
		opts = append(opts, hist.WithUncert(s.Uncert))
	}
	return hist.New(axes, opts...)
}

// Encode compresses a histogram into a gob+gzip blob.
func Encode(h *hist.Histogram) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(FromHistogram(h)); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decompresses and rebuilds a histogram from an Encode blob.
func Decode(blob []byte) (*hist.Histogram, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("empty histogram blob")
	}
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	var s Snapshot
	dec := gob.NewDecoder(gz)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode histogram snapshot: %w", err)
	}
	return s.Histogram()
}
