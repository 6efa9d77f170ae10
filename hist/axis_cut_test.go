package hist

import (
	"errors"
	"math"
	"testing"
)

func edgesEqual(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("edges = %v, want %v", got, want)
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("edges = %v, want %v", got, want)
		}
	}
}

func maskCount(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}

func TestAxisCut(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
		snap      []Snap
		wantEdges []float64
		wantKept  int
	}{
		{"below range to interior", -3, 3, nil, []float64{0, 1, 2, 3}, 3},
		{"interior", 1, 3, nil, []float64{1, 2, 3}, 2},
		{"from low edge", 0, 3, nil, []float64{0, 1, 2, 3}, 3},
		{"to beyond range", 3, 20, nil, []float64{3, 4, 5, 6, 7, 8, 9, 10}, 7},
		{"nearest snaps inward", 2.9, 7.1, nil, []float64{3, 4, 5, 6, 7}, 4},
		{"expand keeps covering bins", 2.9, 7.1, []Snap{SnapExpand}, []float64{2, 3, 4, 5, 6, 7, 8}, 6},
		{"low snap both sides", 2.9, 7.1, []Snap{SnapLow}, []float64{2, 3, 4, 5, 6, 7}, 5},
		{"high snap both sides", 2.9, 7.1, []Snap{SnapHigh}, []float64{3, 4, 5, 6, 7, 8}, 5},
		{"per-side snaps", 2.9, 7.1, []Snap{SnapLow, SnapHigh}, []float64{2, 3, 4, 5, 6, 7, 8}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := NewAxis(10, 0, 10)
			cut, mask, err := a.Cut(tt.low, tt.high, tt.snap...)
			if err != nil {
				t.Fatalf("Cut(%v, %v) failed: %v", tt.low, tt.high, err)
			}
			edgesEqual(t, cut.Edges(), tt.wantEdges)
			if len(mask) != a.NBins() {
				t.Fatalf("mask length %d, want %d (original bins)", len(mask), a.NBins())
			}
			if got := maskCount(mask); got != tt.wantKept {
				t.Errorf("mask keeps %d bins, want %d", got, tt.wantKept)
			}
			if got := cut.NBins(); got != tt.wantKept {
				t.Errorf("cut axis has %d bins, want %d", got, tt.wantKept)
			}
		})
	}
}

func TestAxisCutOpenSidesIsIdentity(t *testing.T) {
	a, _ := NewAxisEdges([]float64{0, 1, 2.5, 7, 10})
	a.SetLabel("energy (keV)")

	cut, mask, err := a.Cut(math.NaN(), math.NaN())
	if err != nil {
		t.Fatal(err)
	}
	edgesEqual(t, cut.Edges(), a.Edges())
	if maskCount(mask) != a.NBins() {
		t.Error("open-sided cut should retain every bin")
	}
	if cut.Label() != "energy (keV)" {
		t.Error("cut should carry the label over")
	}
}

func TestAxisCutClip(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	// Clip first resolves to the covering bins, then overwrites the
	// boundary edges with the exact requested values.
	cut, mask, err := a.Cut(2.5, 7.5, SnapClip)
	if err != nil {
		t.Fatal(err)
	}
	edgesEqual(t, cut.Edges(), []float64{2.5, 3, 4, 5, 6, 7, 7.5})
	if maskCount(mask) != 6 {
		t.Errorf("clip cut keeps %d bins, want 6", maskCount(mask))
	}
	if cut.IsUniform(DefaultRTol, DefaultATol) {
		t.Error("clipped axis should no longer be uniform")
	}

	// Clipping only one side leaves the other at a whole bin edge.
	cut, _, err = a.Cut(2.5, math.NaN(), SnapClip)
	if err != nil {
		t.Fatal(err)
	}
	edgesEqual(t, cut.Edges(), []float64{2.5, 3, 4, 5, 6, 7, 8, 9, 10})
}

func TestAxisCutErrors(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	if _, _, err := a.Cut(1, 3, Snap("bogus")); !errors.Is(err, ErrUnknownSnap) {
		t.Errorf("bogus snap: got %v, want ErrUnknownSnap", err)
	}
	if _, _, err := a.Cut(1, 3, SnapLow, SnapHigh, SnapLow); !errors.Is(err, ErrUnknownSnap) {
		t.Errorf("three snaps: got %v, want ErrUnknownSnap", err)
	}
	if _, _, err := a.Cut(20, 30); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("empty cut: got %v, want ErrInvalidRange", err)
	}
}

func TestAxisMergeBins(t *testing.T) {
	tests := []struct {
		name string
		bins int
		n    int
		snap Snap
		clip bool
		want []float64
	}{
		{"even split", 10, 2, SnapLow, true, []float64{0, 2, 4, 6, 8, 10}},
		{"even split snap high", 10, 5, SnapHigh, true, []float64{0, 5, 10}},
		{"remainder clip low", 10, 3, SnapLow, true, []float64{0, 3, 6, 9}},
		{"remainder clip high", 10, 3, SnapHigh, true, []float64{1, 4, 7, 10}},
		{"remainder keep low", 10, 3, SnapLow, false, []float64{0, 3, 6, 9, 10}},
		{"remainder keep high", 10, 3, SnapHigh, false, []float64{0, 1, 4, 7, 10}},
		{"merge all", 10, 10, SnapLow, true, []float64{0, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := NewAxis(tt.bins, 0, float64(tt.bins))
			merged, err := a.MergeBins(tt.n, tt.snap, tt.clip)
			if err != nil {
				t.Fatalf("MergeBins(%d, %q, %v) failed: %v", tt.n, tt.snap, tt.clip, err)
			}
			edgesEqual(t, merged.Edges(), tt.want)
		})
	}
}

func TestAxisMergeBinsUniformity(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	// Clipping the remainder keeps the merged bins uniform.
	clipped, err := a.MergeBins(3, SnapLow, true)
	if err != nil {
		t.Fatal(err)
	}
	if !clipped.IsUniform(DefaultRTol, DefaultATol) {
		t.Error("clipped merge of a uniform axis should stay uniform")
	}

	// Keeping the remainder produces one irregular group.
	kept, err := a.MergeBins(3, SnapLow, false)
	if err != nil {
		t.Fatal(err)
	}
	if kept.IsUniform(DefaultRTol, DefaultATol) {
		t.Error("unclipped merge with remainder should not be uniform")
	}
}

func TestAxisMergeBinsErrors(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	if _, err := a.MergeBins(2, SnapNearest, true); !errors.Is(err, ErrUnknownSnap) {
		t.Errorf("nearest is not a merge snap: got %v, want ErrUnknownSnap", err)
	}
	if _, err := a.MergeBins(0, SnapLow, true); !errors.Is(err, ErrInvalidBinCount) {
		t.Errorf("zero group size: got %v, want ErrInvalidBinCount", err)
	}
	if _, err := a.MergeBins(11, SnapLow, true); !errors.Is(err, ErrInvalidBinCount) {
		t.Errorf("group larger than axis with clip: got %v, want ErrInvalidBinCount", err)
	}
}
